// Package nse reads market prices from the National Stock Exchange of
// India, either live from its quote API or from a saved JSON snapshot.
//
// Prices are clean prices per 100 of face value for debt instruments and
// per share for equities, exactly as the exchange quotes them.
package nse

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Prices maps a symbol to its last traded price.
type Prices map[string]float64

// DecodeSnapshot parses a saved market snapshot of the form
//
//	{"data": [{"symbol": "726GS2033", "lastPrice": 96.85}, ...]}
//
// which is the shape of the exchange's market-watch responses. A record
// without a symbol or a readable price is fatal: a snapshot with holes
// silently produces wrong valuations.
func DecodeSnapshot(r io.Reader) (Prices, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	jval, err := jsonpath.Get("$.data[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("snapshot has no data records: %w", err)
	}
	records, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("snapshot data is not a list")
	}

	prices := make(Prices, len(records))
	for i, rec := range records {
		jsym, err := jsonpath.Get("$.symbol", rec)
		if err != nil {
			return nil, fmt.Errorf("snapshot record %d: no symbol: %w", i, err)
		}
		symbol, ok := jsym.(string)
		if !ok || symbol == "" {
			return nil, fmt.Errorf("snapshot record %d: symbol is not a string", i)
		}
		jprice, err := jsonpath.Get("$.lastPrice", rec)
		if err != nil {
			return nil, fmt.Errorf("snapshot record %d (%s): no lastPrice: %w", i, symbol, err)
		}
		price, err := asPrice(jprice)
		if err != nil {
			return nil, fmt.Errorf("snapshot record %d (%s): %w", i, symbol, err)
		}
		prices[symbol] = price
	}
	return prices, nil
}

// EncodeSnapshot writes prices in the same shape DecodeSnapshot reads, so
// fetched quotes can be saved once and replayed offline. Records are sorted
// by symbol to keep saved snapshots diffable.
func EncodeSnapshot(w io.Writer, prices Prices) error {
	type record struct {
		Symbol    string  `json:"symbol"`
		LastPrice float64 `json:"lastPrice"`
	}
	snapshot := struct {
		Data []record `json:"data"`
	}{Data: make([]record, 0, len(prices))}
	for symbol, price := range prices {
		snapshot.Data = append(snapshot.Data, record{Symbol: symbol, LastPrice: price})
	}
	sort.Slice(snapshot.Data, func(i, j int) bool { return snapshot.Data[i].Symbol < snapshot.Data[j].Symbol })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

// quoteAPI serves the last traded price of a single listed symbol.
const quoteAPI = "https://www.nseindia.com/api/quote-equity?symbol="

// Latest fetches the last traded price of one symbol from the exchange's
// quote API. Responses are cached on disk for the day.
func Latest(symbol string) (float64, error) {
	return latest(daily(), quoteAPI+url.QueryEscape(symbol), symbol)
}

func latest(client *http.Client, addr, symbol string) (float64, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", symbol, err)
	}

	path := "$.priceInfo.lastPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	price, err := asPrice(jval)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", symbol, err)
	}
	return price, nil
}

// asPrice reads a price that the API serves either as a number or as a
// grouped string like "1,04,875.50".
func asPrice(jval any) (float64, error) {
	if val, ok := jval.(float64); ok {
		if val == 0 {
			return math.NaN(), fmt.Errorf("empty quote, no value to return")
		}
		return val, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return math.NaN(), fmt.Errorf("price is neither a float nor a string: %v", jval)
	}
	sval = strings.ReplaceAll(sval, ",", "")
	sval = strings.ReplaceAll(sval, " ", "")
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("price is an invalid string %q: %w", sval, err)
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty quote, no value to return")
	}
	return val, nil
}
