package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/poiesic/didact/core"
)

const (
	defaultHTTPTimeout = 30 * time.Second

	// maxCrawlPages bounds a crawl regardless of depth.
	maxCrawlPages = 25
)

// WebsiteFetcher crawls a website starting at the locator URL, following
// same-host links breadth-first to the source's Depth, and extracts the
// visible text of each page.
type WebsiteFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewWebsiteFetcher creates a fetcher for website sources.
func NewWebsiteFetcher() *WebsiteFetcher {
	return &WebsiteFetcher{
		client: &http.Client{Timeout: defaultHTTPTimeout},
		logger: slog.Default().With("component", "website-fetcher"),
	}
}

// Fetch crawls the site and returns the concatenated page text.
func (f *WebsiteFetcher) Fetch(ctx context.Context, src core.Source) (Result, error) {
	root, err := url.Parse(src.Locator)
	if err != nil {
		return Result{}, fmt.Errorf("parsing url %s: %w", src.Locator, err)
	}
	if root.Scheme != "http" && root.Scheme != "https" {
		return Result{}, fmt.Errorf("unsupported url scheme %q", root.Scheme)
	}

	type queued struct {
		url   *url.URL
		depth int
	}

	visited := map[string]struct{}{root.String(): {}}
	queue := []queued{{url: root, depth: 0}}

	var title string
	var texts []string

	for len(queue) > 0 && len(visited) <= maxCrawlPages {
		page := queue[0]
		queue = queue[1:]

		pageTitle, text, links, err := f.fetchPage(ctx, page.url)
		if err != nil {
			// A failing subpage doesn't fail the crawl; the root must work.
			if len(texts) == 0 {
				return Result{}, err
			}
			f.logger.Warn("skipping page", "url", page.url.String(), "err", err)
			continue
		}

		if title == "" {
			title = pageTitle
		}
		if text != "" {
			texts = append(texts, text)
		}

		if page.depth >= src.Depth {
			continue
		}
		for _, link := range links {
			if link.Host != root.Host {
				continue
			}
			key := link.String()
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, queued{url: link, depth: page.depth + 1})
		}
	}

	body := strings.TrimSpace(strings.Join(texts, "\n\n"))
	if body == "" {
		return Result{}, ErrEmptyDocument
	}
	if title == "" {
		title = root.Host
	}

	return Result{Title: title, Text: body, URL: root.String()}, nil
}

// fetchPage retrieves one page and returns its title, visible text, and
// resolved links.
func (f *WebsiteFetcher) fetchPage(ctx context.Context, pageURL *url.URL) (title, text string, links []*url.URL, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", "", nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", "", nil, err
	}

	title, text, hrefs := extractPage(doc)
	for _, href := range hrefs {
		link, err := pageURL.Parse(href)
		if err != nil {
			continue
		}
		link.Fragment = ""
		links = append(links, link)
	}
	return title, text, links, nil
}

// extractPage walks the parsed HTML collecting the page title, the
// visible text (script and style contents excluded), and raw hrefs.
func extractPage(doc *html.Node) (title, text string, hrefs []string) {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				for _, attr := range n.Attr {
					if attr.Key == "href" && attr.Val != "" {
						hrefs = append(hrefs, attr.Val)
					}
				}
			}
		case html.TextNode:
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				b.WriteString(trimmed)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.TrimSpace(b.String()), hrefs
}
