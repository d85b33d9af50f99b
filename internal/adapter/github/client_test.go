package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListRepos_Pages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing auth header, got %q", got)
		}
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			repos := make([]Repo, 100)
			for i := range repos {
				repos[i] = Repo{FullName: fmt.Sprintf("cq/repo-%d", i)}
			}
			_ = json.NewEncoder(w).Encode(repos)
		default:
			_ = json.NewEncoder(w).Encode([]Repo{{FullName: "cq/last"}})
		}
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL)
	repos, err := c.ListRepos(context.Background(), "cq")
	if err != nil {
		t.Fatalf("ListRepos: %v", err)
	}
	if len(repos) != 101 {
		t.Fatalf("expected 101 repos across pages, got %d", len(repos))
	}
	if repos[100].FullName != "cq/last" {
		t.Errorf("unexpected tail repo %q", repos[100].FullName)
	}
}

func TestReadme_RawAccept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github.raw+json" {
			t.Errorf("unexpected Accept %q", got)
		}
		_, _ = w.Write([]byte("# Proyecto\n\nDetector de fraude."))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL)
	readme, err := c.Readme(context.Background(), "cq/fraude")
	if err != nil {
		t.Fatalf("Readme: %v", err)
	}
	if readme != "# Proyecto\n\nDetector de fraude." {
		t.Errorf("unexpected readme %q", readme)
	}
}

func TestReadme_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("", srv.URL)
	if _, err := c.Readme(context.Background(), "cq/empty"); !errors.Is(err, ErrNoReadme) {
		t.Fatalf("expected ErrNoReadme, got %v", err)
	}
}
