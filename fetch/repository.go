package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/poiesic/didact/core"
)

// maxRepoDocFiles bounds how many docs/ markdown files are fetched.
const maxRepoDocFiles = 20

// RepositoryFetcher ingests a GitHub repository: its README plus any
// markdown files under docs/. The locator is a repository URL or an
// "owner/repo" slug.
type RepositoryFetcher struct {
	client *github.Client
	logger *slog.Logger
}

// NewRepositoryFetcher creates a fetcher for GitHub repository sources.
// An empty token uses anonymous API access with its lower rate limits.
func NewRepositoryFetcher(token string) *RepositoryFetcher {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}

	return &RepositoryFetcher{
		client: client,
		logger: slog.Default().With("component", "repository-fetcher"),
	}
}

// Fetch retrieves the repository's README and docs/ markdown.
func (f *RepositoryFetcher) Fetch(ctx context.Context, src core.Source) (Result, error) {
	owner, repo, err := parseRepoLocator(src.Locator)
	if err != nil {
		return Result{}, err
	}

	var texts []string

	readme, _, err := f.client.Repositories.GetReadme(ctx, owner, repo, nil)
	if err == nil {
		content, cerr := readme.GetContent()
		if cerr == nil && strings.TrimSpace(content) != "" {
			texts = append(texts, content)
		}
	} else {
		f.logger.Warn("no readme", "owner", owner, "repo", repo, "err", err)
	}

	docs, err := f.fetchDocsMarkdown(ctx, owner, repo)
	if err != nil {
		f.logger.Debug("no docs directory", "owner", owner, "repo", repo, "err", err)
	}
	texts = append(texts, docs...)

	body := strings.TrimSpace(strings.Join(texts, "\n\n"))
	if body == "" {
		return Result{}, fmt.Errorf("%w: %s/%s", ErrEmptyDocument, owner, repo)
	}

	return Result{
		Title: owner + "/" + repo,
		Text:  body,
		URL:   "https://github.com/" + owner + "/" + repo,
	}, nil
}

// fetchDocsMarkdown lists the docs/ directory and returns the content of
// its markdown files.
func (f *RepositoryFetcher) fetchDocsMarkdown(ctx context.Context, owner, repo string) ([]string, error) {
	_, entries, _, err := f.client.Repositories.GetContents(ctx, owner, repo, "docs", nil)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, entry := range entries {
		if len(texts) >= maxRepoDocFiles {
			break
		}
		if entry.GetType() != "file" || !strings.HasSuffix(entry.GetName(), ".md") {
			continue
		}

		file, _, _, err := f.client.Repositories.GetContents(ctx, owner, repo, entry.GetPath(), nil)
		if err != nil || file == nil {
			continue
		}
		content, err := file.GetContent()
		if err != nil || strings.TrimSpace(content) == "" {
			continue
		}
		texts = append(texts, content)
	}
	return texts, nil
}

// parseRepoLocator accepts "owner/repo" or a github.com URL.
func parseRepoLocator(locator string) (owner, repo string, err error) {
	s := locator
	if strings.Contains(s, "://") {
		u, perr := url.Parse(s)
		if perr != nil {
			return "", "", fmt.Errorf("parsing repository url %s: %w", locator, perr)
		}
		s = strings.Trim(u.Path, "/")
	}
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository locator %q, want owner/repo", locator)
	}
	return parts[0], parts[1], nil
}
