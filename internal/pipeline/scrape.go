package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cquispe/portfolio-agent/internal/adapter/github"
)

// Maximum plain-text characters kept per README.
const maxReadmeChars = 2500

const noDocumentation = "Sin documentación disponible"

// Scraper collects repository documentation rows from GitHub.
type Scraper struct {
	gh  *github.Client
	log *slog.Logger
}

// NewScraper builds a scraper over the given GitHub client.
func NewScraper(gh *github.Client, log *slog.Logger) *Scraper {
	return &Scraper{gh: gh, log: log}
}

// ScrapeUser lists a user's repositories and fetches each README, cleaned to
// plain text. Repositories without a README still produce a row so the
// portfolio total stays honest.
func (s *Scraper) ScrapeUser(ctx context.Context, user string) ([]TaggedRow, error) {
	repos, err := s.gh.ListRepos(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", user, err)
	}

	rows := make([]TaggedRow, 0, len(repos))
	for _, repo := range repos {
		s.log.Info("scraping repository", "repo", repo.FullName)

		row := TaggedRow{
			RepoName: repo.FullName,
			Private:  yesNo(repo.Private),
			URL:      repo.HTMLURL,
		}
		if !repo.UpdatedAt.IsZero() {
			row.UpdatedAt = repo.UpdatedAt.Format("2006-01-02 15:04:05")
		}

		readme, err := s.gh.Readme(ctx, repo.FullName)
		switch {
		case err == nil:
			row.HasReadme = "Sí"
			row.SourceFile = "README.md"
			row.Documentation = CleanMarkdown(readme, maxReadmeChars)
		case errors.Is(err, github.ErrNoReadme):
			s.log.Warn("repository has no readme", "repo", repo.FullName)
			row.HasReadme = "No"
			row.SourceFile = "N/A"
			row.Documentation = noDocumentation
		default:
			return nil, err
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}
