package chanscan

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ScanResult is a snapshot of a channel's public page. It supports the
// manual verification review and never decides verification by itself.
type ScanResult struct {
	HTTPStatus int
	PageTitle  *string
	Reachable  bool
}

type Scanner struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewScanner(timeoutMS, maxRetries int, log *zap.Logger) *Scanner {
	return &Scanner{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// Fetch loads the channel page and extracts its title. Non-2xx responses
// and transport errors are retried with a linear backoff; the last status
// seen is reported either way.
func (s *Scanner) Fetch(ctx context.Context, url string) (*ScanResult, error) {
	var lastErr error
	result := &ScanResult{}

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		result.HTTPStatus = resp.StatusCode
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		result.Reachable = true
		if title := ExtractTitle(doc); title != "" {
			result.PageTitle = &title
		}
		return result, nil
	}

	// Unreachable after retries: still a valid snapshot for the reviewer.
	if result.HTTPStatus != 0 {
		return result, nil
	}
	return nil, lastErr
}

// ExtractTitle prefers the og:title meta over the document title.
func ExtractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
