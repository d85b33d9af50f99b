// Command tagger runs the offline pipeline that feeds the chat agent:
// it scrapes repository READMEs from GitHub into a documentation CSV,
// classifies every project through a forced model function call and
// aggregates the portfolio metadata.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cquispe/portfolio-agent/internal/adapter/github"
	"github.com/cquispe/portfolio-agent/internal/adapter/openai"
	"github.com/cquispe/portfolio-agent/internal/config"
	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
	"github.com/cquispe/portfolio-agent/internal/logger"
	"github.com/cquispe/portfolio-agent/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile = flag.String("config", "", "path to the YAML config file")
		scrapeUser = flag.String("scrape", "", "GitHub user whose repositories to scrape before classifying")
		noClassify = flag.Bool("no-classify", false, "skip classification and metadata generation")
	)
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closeLog := logger.New(cfg.Logging)
	defer closeLog.Close()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *scrapeUser != "" {
		gh := github.NewClient(cfg.GitHub.Token, cfg.GitHub.APIBase)
		scraper := pipeline.NewScraper(gh, log)

		rows, err := scraper.ScrapeUser(ctx, *scrapeUser)
		if err != nil {
			return fmt.Errorf("scrape: %w", err)
		}
		if err := pipeline.WriteDocumentationCSV(cfg.Tagger.ReposCSV, rows); err != nil {
			return err
		}
		log.Info("documentation scraped", "repos", len(rows), "output", cfg.Tagger.ReposCSV)
	}

	if *noClassify {
		return nil
	}

	// Resume from a previous tagged file when one exists, so an interrupted
	// classification run only pays for the rows it has not tagged yet.
	input := cfg.Tagger.ReposCSV
	if _, err := os.Stat(cfg.Catalog.ProjectsCSV); err == nil {
		input = cfg.Catalog.ProjectsCSV
		log.Info("resuming from previous run", "input", input)
	}

	rows, err := pipeline.ReadDocumentationCSV(input)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows in %s; run with -scrape first", input)
	}

	llmClient := openai.NewClient(cfg.Tagger.APIKey, cfg.Tagger.BaseURL, 60*time.Second)
	classifier := pipeline.NewClassifier(llmClient, cfg.Tagger.Model, cfg.Tagger.MaxConcurrent, cfg.Tagger.MaxDocChars, log)

	tagged, classifyErr := classifier.ClassifyAll(ctx, rows)

	// Persist whatever was tagged even when the run was interrupted.
	if err := pipeline.WriteTaggedCSV(cfg.Catalog.ProjectsCSV, tagged); err != nil {
		return err
	}
	log.Info("tagged projects written", "rows", len(tagged), "output", cfg.Catalog.ProjectsCSV)

	if classifyErr != nil {
		return fmt.Errorf("classify: %w", classifyErr)
	}

	projects := make([]catalog.Project, 0, len(tagged))
	for _, row := range tagged {
		projects = append(projects, catalog.Project{
			URL:               row.URL,
			RawClassification: row.Classification,
		})
	}
	meta := pipeline.BuildMetadata(projects, time.Now())
	if err := pipeline.WriteMetadataJSON(cfg.Catalog.MetadataJSON, meta); err != nil {
		return err
	}
	log.Info("metadata generated",
		"total_projects", meta.TotalProjects,
		"output", cfg.Catalog.MetadataJSON,
	)
	return nil
}
