package receipt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pondo-ph/pondo/internal/textenc"
)

// Extractor turns a receipt image into raw text. Implementations may fail or
// return an empty string; both are treated as "no text extracted" upstream.
type Extractor interface {
	Extract(ctx context.Context, image io.Reader) (string, error)
}

// OCRClient posts receipt images to an OCR sidecar service and returns the
// recognized text.
type OCRClient struct {
	url      string
	apiToken string
	client   *http.Client
}

func NewOCRClient(url, apiToken string) *OCRClient {
	return &OCRClient{
		url:      url,
		apiToken: apiToken,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OCRClient) Extract(ctx context.Context, image io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, image)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d from OCR service", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	// OCR engines are sloppy about response encodings.
	return strings.TrimSpace(textenc.UTF8String(body)), nil
}
