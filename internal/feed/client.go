package feed

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const maxFeedBytes = 8 << 20

// FetchError covers every way a feed request can fail: transport errors,
// non-2xx statuses and bodies that are not UTF-8 text.
type FetchError struct {
	URL         string
	StatusCode  int
	ContentType string
	Err         error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299):
		return fmt.Sprintf("fetch feed: status %d: %v", e.StatusCode, e.Err)
	case e.ContentType != "":
		return fmt.Sprintf("fetch feed: content type %q: %v", e.ContentType, e.Err)
	default:
		return fmt.Sprintf("fetch feed: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	feedURL string
	http    *http.Client
	nowFn   func() time.Time
}

func NewClient(feedURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		feedURL: strings.TrimSpace(feedURL),
		http:    httpClient,
		nowFn:   time.Now,
	}
}

// Fetch downloads the raw feed text. A v=<unix millis> query parameter is
// added so intermediaries do not serve a stale copy.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	target, err := c.requestURL()
	if err != nil {
		return "", &FetchError{URL: c.feedURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &FetchError{URL: target, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "text/plain, text/*;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{URL: target, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isTextContentType(contentType) {
		return "", &FetchError{
			URL:         target,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Err:         fmt.Errorf("response is not text"),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxFeedBytes {
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("feed exceeds %d bytes", maxFeedBytes)}
	}
	if !utf8.Valid(body) {
		return "", &FetchError{
			URL:         target,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Err:         fmt.Errorf("response is not valid UTF-8"),
		}
	}
	return string(body), nil
}

func (c *Client) requestURL() (string, error) {
	parsed, err := url.Parse(c.feedURL)
	if err != nil {
		return "", fmt.Errorf("parse feed URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported feed URL scheme: %q", parsed.Scheme)
	}
	q := parsed.Query()
	q.Set("v", strconv.FormatInt(c.nowFn().UnixMilli(), 10))
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

// isTextContentType accepts a missing header, any text/* type and
// application/octet-stream, which some raw file hosts send for .txt.
func isTextContentType(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/octet-stream"
}
