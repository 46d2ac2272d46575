package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// getJSON fetches url and decodes the response body into out.
func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func parseRate(s string) (float64, error) {
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing rate %q: %w", s, err)
	}
	return rate, nil
}

func fetchBinance(ctx context.Context, client *http.Client, baseURL, currency string) (float64, error) {
	var body struct {
		Price string `json:"price"`
	}
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=BTC%s", baseURL, strings.ToUpper(currency))
	if err := getJSON(ctx, client, url, &body); err != nil {
		return 0, err
	}
	return parseRate(body.Price)
}

func fetchBitfinex(ctx context.Context, client *http.Client, baseURL, currency string) (float64, error) {
	var body struct {
		LastPrice string `json:"last_price"`
	}
	url := fmt.Sprintf("%s/v1/pubticker/btc%s", baseURL, strings.ToLower(currency))
	if err := getJSON(ctx, client, url, &body); err != nil {
		return 0, err
	}
	return parseRate(body.LastPrice)
}

func fetchBitstamp(ctx context.Context, client *http.Client, baseURL, currency string) (float64, error) {
	var body struct {
		Last string `json:"last"`
	}
	url := fmt.Sprintf("%s/api/v2/ticker/btc%s/", baseURL, strings.ToLower(currency))
	if err := getJSON(ctx, client, url, &body); err != nil {
		return 0, err
	}
	return parseRate(body.Last)
}

func fetchCoinbase(ctx context.Context, client *http.Client, baseURL, currency string) (float64, error) {
	var body struct {
		Data struct {
			Rates map[string]string `json:"rates"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/v2/exchange-rates?currency=BTC", baseURL)
	if err := getJSON(ctx, client, url, &body); err != nil {
		return 0, err
	}
	rate, ok := body.Data.Rates[strings.ToUpper(currency)]
	if !ok {
		return 0, fmt.Errorf("no rate for %s in response", currency)
	}
	return parseRate(rate)
}

func fetchKraken(ctx context.Context, client *http.Client, baseURL, currency string) (float64, error) {
	var body struct {
		Error  []string `json:"error"`
		Result map[string]struct {
			C []string `json:"c"` // [price, lot volume] of last trade
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/0/public/Ticker?pair=XBT%s", baseURL, strings.ToUpper(currency))
	if err := getJSON(ctx, client, url, &body); err != nil {
		return 0, err
	}
	if len(body.Error) > 0 {
		return 0, fmt.Errorf("kraken error: %s", strings.Join(body.Error, "; "))
	}
	// The result key varies by pair normalization (e.g. XXBTZEUR), so take
	// the single entry rather than guessing the key.
	for _, ticker := range body.Result {
		if len(ticker.C) == 0 {
			return 0, fmt.Errorf("empty ticker in response")
		}
		return parseRate(ticker.C[0])
	}
	return 0, fmt.Errorf("empty result in response")
}
