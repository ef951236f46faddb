package resources

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the default HTTP request timeout for link checks.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; InterviewAgent/1.0)"

// DefaultConcurrency caps how many links are checked in parallel.
const DefaultConcurrency = 5

// LinkStatus describes the outcome of checking one knowledge base link.
type LinkStatus struct {
	Topic      string
	URL        string
	StatusCode int
	Title      string
	Err        string
}

// OK reports whether the link resolved with a success status.
func (s LinkStatus) OK() bool {
	return s.Err == "" && s.StatusCode >= 200 && s.StatusCode < 400
}

// CheckOptions configures the link checker.
type CheckOptions struct {
	Timeout     time.Duration
	UserAgent   string
	Concurrency int
}

// DefaultCheckOptions returns sensible defaults for checking.
func DefaultCheckOptions() *CheckOptions {
	return &CheckOptions{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Concurrency: DefaultConcurrency,
	}
}

// CheckAll verifies every link in TopicLinks and returns one status per
// topic, sorted by topic. Individual link failures are recorded in the
// status rather than aborting the run.
func CheckAll(ctx context.Context, opts *CheckOptions) []LinkStatus {
	if opts == nil {
		opts = DefaultCheckOptions()
	}

	topics := make([]string, 0, len(TopicLinks))
	for topic := range TopicLinks {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	client := &http.Client{Timeout: opts.Timeout}
	statuses := make([]LinkStatus, len(topics))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, topic := range topics {
		g.Go(func() error {
			statuses[i] = checkOne(ctx, client, opts.UserAgent, topic, TopicLinks[topic])
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

func checkOne(ctx context.Context, client *http.Client, userAgent, topic, urlStr string) LinkStatus {
	status := LinkStatus{Topic: topic, URL: urlStr}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		status.Err = fmt.Sprintf("failed to create request: %v", err)
		return status
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		status.Err = fmt.Sprintf("HTTP request failed: %v", err)
		return status
	}
	defer func() { _ = resp.Body.Close() }()

	status.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		return status
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		// The page loaded, we just could not read a title.
		return status
	}
	status.Title = strings.TrimSpace(doc.Find("title").First().Text())

	return status
}
