package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a live snapshot for one symbol, prices in USD.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
}

// Client fetches quotes and FX rates from the market-data provider.
type Client struct {
	baseURL string
	fxURL   string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, fxURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		fxURL:   fxURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type quoteResponse struct {
	Current       decimal.Decimal `json:"c"`
	Change        decimal.Decimal `json:"d"`
	ChangePercent decimal.Decimal `json:"dp"`
}

func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	var out quoteResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}

	if out.Current.IsZero() {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	return &Quote{
		Symbol:        symbol,
		Price:         out.Current,
		Change:        out.Change,
		ChangePercent: out.ChangePercent,
	}, nil
}

type fxResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FxRate returns the conversion rate from one currency to another,
// e.g. FxRate(ctx, "USD", "PHP").
func (c *Client) FxRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		c.fxURL, url.QueryEscape(from), url.QueryEscape(to))

	var out fxResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return decimal.Zero, fmt.Errorf("fetching fx rate %s/%s: %w", from, to, err)
	}

	rate, ok := out.Rates[to]
	if !ok || rate.IsZero() {
		return decimal.Zero, fmt.Errorf("no fx rate for %s/%s", from, to)
	}

	return rate, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
