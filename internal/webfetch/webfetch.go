// Package webfetch supplies the demo crawler's process_page collaborator:
// an HTTP client that fetches a page, parses its HTML, collects same-host
// links, and returns the ones that answer a HEAD probe as the page's
// successors. Adapted from the teacher's internal/adaptors.WebClient and
// the link-collection walk in internal/service/web_page_analyzer.go.
package webfetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"crawlkit/internal/corerr"
	"crawlkit/internal/crawler"
	"crawlkit/internal/metrics"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Client implements crawler.PageFetcher over real HTTP and HTML parsing.
type Client struct {
	http *http.Client
	log  *logrus.Logger

	probes *ants.Pool
}

// New builds a Client. requestTimeout bounds each individual HTTP
// request; probeConcurrency bounds the number of concurrent HEAD
// requests used to validate a page's discovered links, mirroring the
// role the teacher's nested worker_pool.WorkerPool played in
// checkLinksAccessibilityTask.
func New(requestTimeout time.Duration, probeConcurrency int, log *logrus.Logger) (*Client, error) {
	transport := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))

	probes, err := ants.NewPool(probeConcurrency)
	if err != nil {
		return nil, corerr.Wrap(err, "failed to create link-probe pool")
	}

	return &Client{
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		log:    log,
		probes: probes,
	}, nil
}

// Close releases the probe pool's goroutines.
func (c *Client) Close() { c.probes.Release() }

// FetchSuccessors fetches page, parses its HTML body, collects same-host
// links, and returns the subset that answer a HEAD probe without a
// client/server error. If ctx is cancelled mid-fetch, it returns
// corerr.Cancelled rather than the underlying transport error, so a
// crawl task aborted by pool shutdown is classified as a cancelled
// outcome, not a failed one.
func (c *Client) FetchSuccessors(ctx context.Context, page crawler.PageRef) ([]crawler.PageRef, error) {
	baseURL, err := url.Parse(string(page))
	if err != nil {
		return nil, corerr.Wrap(err, "failed to parse page url")
	}

	body, status, err := c.do(ctx, string(page), http.MethodGet)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			metrics.PagesFetchedTotal.WithLabelValues("cancelled").Inc()
			return nil, corerr.Cancelled
		}
		metrics.PagesFetchedTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if status != http.StatusOK {
		metrics.PagesFetchedTotal.WithLabelValues("non_200").Inc()
		return nil, corerr.New(fmt.Sprintf("page fetch returned status %d", status))
	}
	metrics.PagesFetchedTotal.WithLabelValues("ok").Inc()

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, corerr.Wrap(err, "failed to parse html")
	}

	links := collectSameHostLinks(doc, baseURL)
	return c.probeAccessible(ctx, links), nil
}

func (c *Client) do(ctx context.Context, target, method string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, 0, corerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", "crawlkit/1.0 (+https://example.invalid/bot)")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, corerr.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, corerr.Wrap(err, "failed to read response body")
	}
	return bodyBytes, resp.StatusCode, nil
}

// probeAccessible fans a HEAD request out over c.probes for every
// candidate link and returns the ones that respond without error and
// without a >=400 status.
func (c *Client) probeAccessible(ctx context.Context, links []string) []crawler.PageRef {
	type result struct {
		link string
		ok   bool
	}
	results := make(chan result, len(links))

	for _, link := range links {
		link := link
		err := c.probes.Submit(func() {
			_, status, err := c.do(ctx, link, http.MethodHead)
			results <- result{link: link, ok: err == nil && status < 400}
		})
		if err != nil {
			results <- result{link: link, ok: false}
		}
	}

	var accessible []crawler.PageRef
	for range links {
		r := <-results
		if r.ok {
			accessible = append(accessible, crawler.PageRef(r.link))
		}
	}
	return accessible
}

func collectSameHostLinks(doc *html.Node, base *url.URL) []string {
	var links []string
	seen := make(map[string]struct{})

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			if href != "" {
				if abs, err := base.Parse(href); err == nil {
					if (abs.Scheme == "http" || abs.Scheme == "https") && canonicalHost(abs) == canonicalHost(base) {
						s := abs.String()
						if _, dup := seen[s]; !dup {
							seen[s] = struct{}{}
							links = append(links, s)
						}
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}
	}
	traverse(doc)
	return links
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func canonicalHost(u *url.URL) string {
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		return host
	}
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		return host
	}
	return host + ":" + port
}
