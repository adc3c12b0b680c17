package yahoo

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	papertrade "github.com/etnz/papertrade"
	"github.com/etnz/papertrade/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client implements the papertrade.Provider interface on top of the Yahoo
// Finance chart API. Quotes hit the network on every call (freshness is the
// caller's cache's problem); daily history goes through a disk cache that
// expires once a day.
type Client struct {
	baseURL string
	quotes  *http.Client
	history *http.Client
	now     func() time.Time
}

// New returns a client against the public Yahoo endpoint.
func New() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		quotes:  &http.Client{Timeout: 10 * time.Second},
		history: newDailyCachingClient(),
		now:     time.Now,
	}
}

// chartURL builds the chart endpoint address for one symbol.
func (c *Client) chartURL(symbol string, query url.Values) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
}

// Quote fetches the current quote for one symbol.
func (c *Client) Quote(symbol string) (papertrade.Quote, error) {
	addr := c.chartURL(symbol, url.Values{"range": {"1d"}, "interval": {"1d"}})
	var jobj any
	if err := jwget(c.quotes, addr, &jobj); err != nil {
		return papertrade.Quote{}, fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	currency, _ := jstring(jobj, "$.chart.result[0].meta.currency")
	name, ok := jstring(jobj, "$.chart.result[0].meta.shortName")
	if !ok {
		name, _ = jstring(jobj, "$.chart.result[0].meta.longName")
	}

	price, ok := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if !ok {
		// Some indices carry no live meta price; the last daily close is the
		// closest truth there is.
		price, ok = lastFloat(jobj, "$.chart.result[0].indicators.quote[0].close")
	}
	if !ok || price == 0 {
		return papertrade.Quote{}, fmt.Errorf("no price for %q in chart response", symbol)
	}

	prev, ok := jfloat(jobj, "$.chart.result[0].meta.previousClose")
	if !ok {
		prev, _ = jfloat(jobj, "$.chart.result[0].meta.chartPreviousClose")
	}

	q := papertrade.NewQuote(symbol, name, papertrade.M(price, currency), papertrade.M(prev, currency))
	if high, ok := jfloat(jobj, "$.chart.result[0].meta.regularMarketDayHigh"); ok {
		q.DayHigh = papertrade.M(high, currency)
	}
	if low, ok := jfloat(jobj, "$.chart.result[0].meta.regularMarketDayLow"); ok {
		q.DayLow = papertrade.M(low, currency)
	}
	if vol, ok := jfloat(jobj, "$.chart.result[0].meta.regularMarketVolume"); ok {
		q.Volume = int64(vol)
	}
	return q, nil
}

// DailyHistory fetches up to days of daily bars for one symbol, oldest first.
func (c *Client) DailyHistory(symbol string, days int) ([]papertrade.Bar, error) {
	to := c.now()
	from := to.AddDate(0, 0, -days)
	addr := c.chartURL(symbol, url.Values{
		"interval": {"1d"},
		"period1":  {fmt.Sprint(from.Unix())},
		"period2":  {fmt.Sprint(to.Unix())},
	})
	var jobj any
	if err := jwget(c.history, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q history: %w", symbol, err)
	}

	timestamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q history: %w", symbol, err)
	}
	opens, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].open", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q history: %w", symbol, err)
	}
	closes, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q history: %w", symbol, err)
	}

	jts, ok1 := timestamps.([]any)
	jopens, ok2 := opens.([]any)
	jcloses, ok3 := closes.([]any)
	if !ok1 || !ok2 || !ok3 || len(jts) != len(jcloses) {
		return nil, fmt.Errorf("malformed chart response for %q", symbol)
	}

	bars := make([]papertrade.Bar, 0, len(jts))
	for i, jt := range jts {
		ts, ok := jt.(float64)
		if !ok {
			continue
		}
		// Yahoo reports days with no trade as nulls, skip them.
		cl, ok := jcloses[i].(float64)
		if !ok {
			continue
		}
		bar := papertrade.Bar{
			Date:  date.FromTime(time.Unix(int64(ts), 0).UTC()),
			Close: decimal.NewFromFloat(cl),
		}
		if i < len(jopens) {
			if op, ok := jopens[i].(float64); ok {
				bar.Open = decimal.NewFromFloat(op)
			}
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// jfloat extracts a single float at path, unwrapping a one-element list.
func jfloat(jobj any, path string) (float64, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, false
	}
	// because jsonpath is never clear about whether it returns a list of one
	// answer or a single answer, keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	return val, ok
}

// jstring extracts a single string at path, unwrapping a one-element list.
func jstring(jobj any, path string) (string, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", false
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	return val, ok
}

// lastFloat extracts the last non-null float of the list at path.
func lastFloat(jobj any, path string) (float64, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, false
	}
	jlist, ok := jval.([]any)
	if !ok {
		return 0, false
	}
	for i := len(jlist) - 1; i >= 0; i-- {
		if val, ok := jlist[i].(float64); ok {
			return val, true
		}
	}
	return 0, false
}
