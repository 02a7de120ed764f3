package valuation

import (
	"slices"
	"testing"

	"github.com/etnz/valuation/date"
)

func TestLedgerOrdering(t *testing.T) {
	var ledger Ledger
	// appended out of order, including a same-day sell before its buy
	err := ledger.Append(
		NewSell(date.New(2024, 2, 12), "hdfc", "GS2033", Q(5), M(98, "INR")),
		NewBuy(date.New(2024, 2, 12), "hdfc", "GS2033", Q(5), M(97, "INR")),
		NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(10), M(96.5, "INR")),
	)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	var got []CommandType
	var dates []date.Date
	for tx := range ledger.Transactions() {
		got = append(got, tx.What())
		dates = append(dates, tx.When())
	}
	want := []CommandType{CmdBuy, CmdBuy, CmdSell}
	if !slices.Equal(got, want) {
		t.Errorf("replay order = %v, want %v (buys before sells on the same day)", got, want)
	}
	if dates[0] != date.New(2024, 1, 10) {
		t.Errorf("first transaction on %s, want 2024-01-10", dates[0])
	}
}

func TestLedgerAppendRejectsInvalid(t *testing.T) {
	var ledger Ledger
	if err := ledger.Append(NewBuy(date.Date{}, "hdfc", "GS2033", Q(1), M(96.5, "INR"))); err == nil {
		t.Error("a transaction without a date must be rejected")
	}
	if err := ledger.Append(NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(0), M(96.5, "INR"))); err == nil {
		t.Error("a zero-quantity buy must be rejected")
	}
	if err := ledger.Append(NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(1), M(96.5, "XYZ"))); err == nil {
		t.Error("an unknown currency must be rejected")
	}
	if ledger.Len() != 0 {
		t.Errorf("rejected transactions leaked into the ledger: %d", ledger.Len())
	}
}

func TestLedgerSecurityViews(t *testing.T) {
	var ledger Ledger
	err := ledger.Append(
		NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(10), M(96.5, "INR")),
		NewBuy(date.New(2024, 1, 5), "hdfc", "91TB", Q(100), M(98.2, "INR")),
		NewSell(date.New(2024, 3, 11), "hdfc", "GS2033", Q(4), M(99, "INR")),
	)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if got := slices.Collect(ledger.AllSecurities()); !slices.Equal(got, []string{"91TB", "GS2033"}) {
		t.Errorf("AllSecurities = %v", got)
	}

	n := 0
	for tx := range ledger.SecurityTransactions("GS2033") {
		n++
		if tx.Where() != "hdfc" {
			t.Errorf("unexpected account %q", tx.Where())
		}
	}
	if n != 2 {
		t.Errorf("GS2033 has %d transactions, want 2", n)
	}

	if got, ok := ledger.EarliestFor("GS2033"); !ok || got != date.New(2024, 1, 10) {
		t.Errorf("EarliestFor(GS2033) = %s, %v", got, ok)
	}
	if _, ok := ledger.EarliestFor("NOPE"); ok {
		t.Error("EarliestFor on an unknown security must report false")
	}
}

func TestTransactionEqual(t *testing.T) {
	a := NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(10), M(96.5, "INR"))
	b := NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(10), M(96.5, "INR"))
	c := NewSell(date.New(2024, 1, 10), "hdfc", "GS2033", Q(10), M(96.5, "INR"))
	if !a.Equal(b) {
		t.Error("identical buys must be equal")
	}
	if a.Equal(c) {
		t.Error("a buy must not equal a sell")
	}
}

func TestTransactionAmount(t *testing.T) {
	buy := NewBuy(date.New(2024, 1, 10), "hdfc", "GS2033", Q(10000), M(96.5, "INR"))
	if got := buy.Amount(); !got.Equal(M(965000, "INR")) {
		t.Errorf("Amount = %s, want 965000", got)
	}
}
