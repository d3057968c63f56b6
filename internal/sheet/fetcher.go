package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNetwork indicates the sheet could not be fetched.
var ErrNetwork = errors.New("sheet fetch failed")

// Fetcher retrieves the raw CSV text of the published sheet.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// HTTPFetcher downloads the published CSV export over HTTP(S).
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher builds a fetcher for the given export URL. The timeout
// bounds the whole request; the original had none and a hung request just
// blocked the loading state.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	return string(body), nil
}
