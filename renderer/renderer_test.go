package renderer

import (
	"math"
	"strings"
	"testing"

	"github.com/etnz/valuation"
	"github.com/etnz/valuation/date"
)

var gs2033 = valuation.Security{
	Symbol:          "726GS2033",
	Type:            valuation.CouponBond,
	FaceValue:       100,
	CouponRate:      7.26,
	CouponFrequency: 2,
	Maturity:        date.New(2033, 1, 15),
}

func TestScheduleMarkdown(t *testing.T) {
	txs := []valuation.Transaction{
		valuation.NewBuy(date.New(2024, 1, 10), "hdfc", gs2033.Symbol, valuation.Q(10000), valuation.M(96.5, "INR")),
	}
	s, err := valuation.BuildSchedule(valuation.NSE(), gs2033, txs, valuation.SettlementLagDays)
	if err != nil {
		t.Fatalf("BuildSchedule: %v", err)
	}

	got := ScheduleMarkdown(gs2033, s)
	for _, want := range []string{
		"# Cashflow Schedule for 726GS2033",
		"7.26% coupon paid 2 times a year",
		"| 2024-01-10 | 0 |",
		"36300.00",
		"2033-01-17 (maturity)",
		"**Total**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("schedule markdown missing %q:\n%s", want, got)
		}
	}
}

func TestValuationMarkdown(t *testing.T) {
	r := &valuation.ValuationReport{
		Date: date.New(2024, 6, 3),
		Securities: []valuation.SecurityValuation{
			{
				Symbol: "726GS2033", Type: valuation.CouponBond,
				Maturity: date.New(2033, 1, 15), Quantity: 10000,
				Investment: 965000, XIRR: 0.0785,
				ForwardXIRR: math.NaN(), YTM: 7.55,
			},
		},
		Investment: 965000,
		XIRR:       0.0785,
		Yearly:     []valuation.YearlyCashflow{{Year: 2024, Total: -915600}},
	}
	got := ValuationMarkdown(r)
	for _, want := range []string{
		"# Portfolio Valuation on 2024-06-03",
		"| 726GS2033 | bond | 10000 | 965000.00 | 7.85% | n/a | 7.55% | 2033-01-15 |",
		"## Yearly Cashflows",
		"| 2024 | -915600.00 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("valuation markdown missing %q:\n%s", want, got)
		}
	}
}

func TestPricesMarkdown(t *testing.T) {
	got := PricesMarkdown(map[string]float64{"RELIANCE": 2941.6, "726GS2033": 96.85})
	for _, want := range []string{
		"# Market Prices",
		"| 726GS2033 | 96.85 |",
		"| RELIANCE | 2941.60 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prices markdown missing %q:\n%s", want, got)
		}
	}
	// sorted by symbol whatever the map iteration order
	if strings.Index(got, "726GS2033") > strings.Index(got, "RELIANCE") {
		t.Errorf("prices are not sorted by symbol:\n%s", got)
	}
}

func TestGainsMarkdown(t *testing.T) {
	disposals := []valuation.Disposal{{
		Account:     "hdfc",
		Security:    "726GS2033",
		Date:        date.New(2024, 3, 11),
		LotDate:     date.New(2024, 1, 10),
		Quantity:    valuation.Q(4000),
		CostPerUnit: valuation.M(96.5, "INR"),
		SalePrice:   valuation.M(99, "INR"),
	}}
	got := GainsMarkdown(disposals, valuation.FIFO)
	for _, want := range []string{"Method: fifo", "726GS2033", "2024-01-10", "**Total**"} {
		if !strings.Contains(got, want) {
			t.Errorf("gains markdown missing %q:\n%s", want, got)
		}
	}

	if got := GainsMarkdown(nil, valuation.HIFO); !strings.Contains(got, "No disposals.") {
		t.Errorf("empty gains markdown = %q", got)
	}
}
