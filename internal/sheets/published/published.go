package published

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	ports "horas/internal/sheets"
)

// Client downloads the timesheet from a spreadsheet "publish to web" TSV URL.
type Client struct {
	url  string
	http *http.Client
	now  func() time.Time
}

// Ensure interface conformance
var _ ports.TimesheetReader = (*Client)(nil)

func New(tsvURL string) (*Client, error) {
	return NewWithHTTPClient(tsvURL, newHTTPClientWithPooling())
}

// NewWithHTTPClient uses the given client instead of the pooled default.
func NewWithHTTPClient(tsvURL string, hc *http.Client) (*Client, error) {
	tsvURL = strings.TrimSpace(tsvURL)
	if tsvURL == "" {
		return nil, errors.New("missing TIMESHEET_TSV_URL")
	}
	u, err := url.Parse(tsvURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid TIMESHEET_TSV_URL %q", tsvURL)
	}
	return &Client{url: tsvURL, http: hc, now: time.Now}, nil
}

// ReadRows fetches and parses the TSV export. A t=<unix-millis> parameter is
// added to every request so intermediaries never serve a stale copy.
func (c *Client) ReadRows(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tsv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch tsv: unexpected status %s", resp.Status)
	}
	rows, err := ports.ParseTSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse tsv: %w", err)
	}
	return rows, nil
}

func (c *Client) Source() string {
	u, err := url.Parse(c.url)
	if err != nil {
		return "published"
	}
	return "published:" + u.Host + u.Path
}

func (c *Client) requestURL() string {
	u, err := url.Parse(c.url)
	if err != nil {
		return c.url
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// newHTTPClientWithPooling creates an HTTP client with connection pooling,
// proper timeouts and keep-alive settings. The overall deadline comes from
// the request context.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second, // TCP connection timeout
		KeepAlive: 30 * time.Second, // Keep-alive probe interval
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true, // Prefer HTTP/2
	}

	return &http.Client{Transport: transport}
}
