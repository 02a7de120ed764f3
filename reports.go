package valuation

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/etnz/valuation/date"
	"gonum.org/v1/gonum/floats"
)

// SecurityValuation is the valuation of one security: its full cashflow
// schedule and the yield metrics derived from it. Metrics that could not be
// computed (undefined yield, no price available) are NaN and are filtered by
// the portfolio aggregation.
type SecurityValuation struct {
	Symbol      string
	ISIN        string
	Type        SecurityType
	Maturity    date.Date
	Quantity    float64 // net held quantity
	Investment  float64 // net cash invested (buys minus sells)
	XIRR        float64 // money-weighted return over the whole schedule
	ForwardXIRR float64 // return of the remaining cashflows bought at market value
	YTM         float64 // yield to maturity at the snapshot price
	Schedule    Schedule
}

// YearlyCashflow is the total cashflow of one calendar year.
type YearlyCashflow struct {
	Year  int
	Total float64
}

// ValuationReport values every security in the ledger on a given date.
type ValuationReport struct {
	Date       date.Date
	Securities []SecurityValuation
	Investment float64
	XIRR       float64 // over the merged cashflows of all securities
	Yearly     []YearlyCashflow
}

// NewValuation builds the valuation report: for every security in the
// ledger it replays the transactions into a schedule and solves the yields,
// then aggregates the portfolio-level metrics.
//
// Securities are valued concurrently on at most workers goroutines (the
// per-security pipelines share nothing). prices is an optional snapshot of
// market prices by symbol; without a price the forward-looking metrics of a
// security are NaN. A schedule that cannot be built is fatal and aborts the
// whole report: it means the transaction feed is wrong.
func NewValuation(ledger *Ledger, db *Securities, cal *Calendar, prices map[string]float64, asOf date.Date, workers int) (*ValuationReport, error) {
	symbols := slices.Collect(ledger.AllSecurities())
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	var errs []error
	sem := make(chan struct{}, workers)
	vals := make([]SecurityValuation, 0, len(symbols))
	for _, symbol := range symbols {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			v, err := valueSecurity(ledger, db, cal, prices, asOf, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			vals = append(vals, v)
		}()
	}
	wg.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}

	sort.Slice(vals, func(i, j int) bool { return vals[i].Symbol < vals[j].Symbol })

	report := &ValuationReport{Date: asOf, Securities: vals}
	report.aggregate()
	return report, nil
}

// valueSecurity runs the full pipeline of one security.
func valueSecurity(ledger *Ledger, db *Securities, cal *Calendar, prices map[string]float64, asOf date.Date, symbol string) (SecurityValuation, error) {
	sec := db.Get(symbol)
	if sec == nil {
		return SecurityValuation{}, fmt.Errorf("security %q in the ledger but not in the reference table", symbol)
	}

	var txs []Transaction
	var investment float64
	var quantity Quantity
	for tx := range ledger.SecurityTransactions(symbol) {
		txs = append(txs, tx)
		switch v := tx.(type) {
		case Buy:
			investment += v.Amount().InexactFloat64()
			quantity = quantity.Add(v.Quantity)
		case Sell:
			investment -= v.Amount().InexactFloat64()
			quantity = quantity.Sub(v.Quantity)
		}
	}

	schedule, err := BuildSchedule(cal, *sec, txs, SettlementLagDays)
	if err != nil {
		return SecurityValuation{}, err
	}

	val := SecurityValuation{
		Symbol:      symbol,
		ISIN:        sec.ISIN,
		Type:        sec.Type,
		Maturity:    sec.Maturity,
		Quantity:    quantity.InexactFloat64(),
		Investment:  investment,
		ForwardXIRR: math.NaN(),
		YTM:         math.NaN(),
		Schedule:    schedule,
	}

	// an undefined yield flags the security, it does not abort the batch
	irr, err := XIRR(schedule.Dates(), schedule.Cashflows())
	if err != nil {
		irr = math.NaN()
	}
	val.XIRR = irr

	if price, ok := prices[symbol]; ok {
		val.YTM = Yield(*sec, price, asOf)
		marketValue := price * val.Quantity
		fwd, err := ForwardXIRR(schedule.Dates(), schedule.Cashflows(), marketValue, asOf)
		if err == nil {
			val.ForwardXIRR = fwd
		}
	}
	return val, nil
}

// aggregate computes the portfolio-level investment, XIRR over the merged
// cashflows, and the per-year cashflow totals.
func (r *ValuationReport) aggregate() {
	var dates []date.Date
	var flows []float64
	var investments []float64
	yearly := make(map[int]float64)

	for _, v := range r.Securities {
		investments = append(investments, v.Investment)
		for _, e := range v.Schedule.Entries() {
			dates = append(dates, e.Date)
			flows = append(flows, e.Total)
			yearly[e.Date.Year()] += e.Total
		}
	}
	r.Investment = floats.Sum(investments)

	// XIRR needs the merged flows in date order.
	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return dates[order[i]].Before(dates[order[j]]) })
	sortedDates := make([]date.Date, len(dates))
	sortedFlows := make([]float64, len(flows))
	for i, idx := range order {
		sortedDates[i] = dates[idx]
		sortedFlows[i] = flows[idx]
	}
	irr, err := XIRR(sortedDates, sortedFlows)
	if err != nil {
		irr = math.NaN()
	}
	r.XIRR = irr

	for year, total := range yearly {
		r.Yearly = append(r.Yearly, YearlyCashflow{Year: year, Total: total})
	}
	sort.Slice(r.Yearly, func(i, j int) bool { return r.Yearly[i].Year < r.Yearly[j].Year })
}
