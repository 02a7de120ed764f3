package valuation

import (
	"errors"
	"testing"

	"github.com/etnz/valuation/date"
)

var (
	day1 = date.New(2024, 1, 10)
	day2 = date.New(2024, 2, 12)
	day3 = date.New(2024, 3, 11)
)

// seed returns a book with two lots of GS2033: 10 units at 96.5 and
// 5 units at 98.
func seed(t *testing.T) *LotBook {
	t.Helper()
	book := NewLotBook()
	if err := book.Buy("hdfc", "GS2033", Q(10), M(96.5, "INR"), day1); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if err := book.Buy("hdfc", "GS2033", Q(5), M(98, "INR"), day2); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	return book
}

func TestLotBookSellFIFO(t *testing.T) {
	book := seed(t)
	disposals, err := book.Sell("hdfc", "GS2033", Q(12), M(99, "INR"), day3, FIFO)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if len(disposals) != 2 {
		t.Fatalf("got %d disposals, want 2", len(disposals))
	}
	if !disposals[0].Quantity.Equal(Q(10)) || disposals[0].LotDate != day1 {
		t.Errorf("first disposal should exhaust the oldest lot, got %v", disposals[0])
	}
	if !disposals[1].Quantity.Equal(Q(2)) || disposals[1].LotDate != day2 {
		t.Errorf("second disposal should dip into the newer lot, got %v", disposals[1])
	}
	if got := book.Position("hdfc", "GS2033"); !got.Equal(Q(3)) {
		t.Errorf("position after sale = %s, want 3", got)
	}
	if got := book.Lots("hdfc", "GS2033"); got != 1 {
		t.Errorf("open lots after sale = %d, want 1", got)
	}
}

func TestLotBookSellLIFO(t *testing.T) {
	book := seed(t)
	disposals, err := book.Sell("hdfc", "GS2033", Q(12), M(99, "INR"), day3, LIFO)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if len(disposals) != 2 {
		t.Fatalf("got %d disposals, want 2", len(disposals))
	}
	if !disposals[0].Quantity.Equal(Q(5)) || disposals[0].LotDate != day2 {
		t.Errorf("first disposal should exhaust the newest lot, got %v", disposals[0])
	}
	if !disposals[1].Quantity.Equal(Q(7)) || disposals[1].LotDate != day1 {
		t.Errorf("second disposal should come from the older lot, got %v", disposals[1])
	}
}

func TestLotBookSellHIFO(t *testing.T) {
	book := seed(t)
	disposals, err := book.Sell("hdfc", "GS2033", Q(6), M(99, "INR"), day3, HIFO)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	// the 98 lot costs more than the 96.5 lot, it goes first
	if !disposals[0].CostPerUnit.Equal(M(98, "INR")) {
		t.Errorf("HIFO took cost %s first, want 98", disposals[0].CostPerUnit)
	}
	if !disposals[1].CostPerUnit.Equal(M(96.5, "INR")) {
		t.Errorf("HIFO fell back to cost %s, want 96.5", disposals[1].CostPerUnit)
	}
}

func TestLotBookSellHIFOTieBreaksOldest(t *testing.T) {
	book := NewLotBook()
	if err := book.Buy("hdfc", "GS2033", Q(5), M(97, "INR"), day1); err != nil {
		t.Fatal(err)
	}
	if err := book.Buy("hdfc", "GS2033", Q(5), M(97, "INR"), day2); err != nil {
		t.Fatal(err)
	}
	disposals, err := book.Sell("hdfc", "GS2033", Q(3), M(99, "INR"), day3, HIFO)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if disposals[0].LotDate != day1 {
		t.Errorf("equal-cost lots must be consumed oldest first, got lot of %s", disposals[0].LotDate)
	}
}

func TestSingleLotPoliciesAgree(t *testing.T) {
	// with a single lot there is nothing to choose between
	var want []Disposal
	for _, policy := range []MatchingPolicy{FIFO, LIFO, HIFO} {
		book := NewLotBook()
		if err := book.Buy("hdfc", "GS2033", Q(10), M(96.5, "INR"), day1); err != nil {
			t.Fatal(err)
		}
		got, err := book.Sell("hdfc", "GS2033", Q(4), M(99, "INR"), day3, policy)
		if err != nil {
			t.Fatalf("%s: %v", policy, err)
		}
		if want == nil {
			want = got
			continue
		}
		if len(got) != len(want) {
			t.Fatalf("%s: %d disposals, want %d", policy, len(got), len(want))
		}
		for i := range got {
			same := got[i].LotDate == want[i].LotDate &&
				got[i].Quantity.Equal(want[i].Quantity) &&
				got[i].CostPerUnit.Equal(want[i].CostPerUnit)
			if !same {
				t.Errorf("%s: disposal %d = %v, want %v", policy, i, got[i], want[i])
			}
		}
	}
}

func TestLotBookConservation(t *testing.T) {
	book := seed(t)
	disposals, err := book.Sell("hdfc", "GS2033", Q(12), M(99, "INR"), day3, HIFO)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	var sold Quantity
	for _, d := range disposals {
		sold = sold.Add(d.Quantity)
	}
	if !sold.Equal(Q(12)) {
		t.Errorf("disposals cover %s units, want exactly 12", sold)
	}
	if got := sold.Add(book.Position("hdfc", "GS2033")); !got.Equal(Q(15)) {
		t.Errorf("sold + remaining = %s, want the 15 units bought", got)
	}
}

func TestLotBookOversell(t *testing.T) {
	book := seed(t)
	_, err := book.Sell("hdfc", "GS2033", Q(20), M(99, "INR"), day3, FIFO)
	var inv *InventoryError
	if !errors.As(err, &inv) {
		t.Fatalf("overselling must fail with an InventoryError, got %v", err)
	}
	if !inv.Missing.Equal(Q(5)) {
		t.Errorf("missing quantity = %s, want 5", inv.Missing)
	}
}

func TestLotBookBucketsAreIndependent(t *testing.T) {
	book := seed(t)
	if err := book.Buy("icici", "GS2033", Q(4), M(95, "INR"), day1); err != nil {
		t.Fatal(err)
	}
	if _, err := book.Sell("icici", "GS2033", Q(10), M(99, "INR"), day3, FIFO); err == nil {
		t.Fatal("the hdfc lots must not cover an icici sale")
	}
}

func TestDisposalGain(t *testing.T) {
	d := Disposal{Quantity: Q(4), CostPerUnit: M(96.5, "INR"), SalePrice: M(99, "INR")}
	if got := d.Gain(); !got.Equal(M(10, "INR")) {
		t.Errorf("gain = %s, want 10", got)
	}
}

func TestReplay(t *testing.T) {
	var ledger Ledger
	txs := []Transaction{
		NewBuy(day1, "hdfc", "GS2033", Q(10), M(96.5, "INR")),
		NewBuy(day2, "hdfc", "GS2033", Q(5), M(98, "INR")),
		NewSell(day3, "hdfc", "GS2033", Q(4), M(99, "INR")),
	}
	if err := ledger.Append(txs...); err != nil {
		t.Fatalf("Append: %v", err)
	}

	book, disposals, err := Replay(&ledger, FIFO)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got := book.Position("hdfc", "GS2033"); !got.Equal(Q(11)) {
		t.Errorf("position = %s, want 11", got)
	}
	if len(disposals) != 1 {
		t.Fatalf("got %d disposals, want 1", len(disposals))
	}
	if got := disposals[0].Gain(); !got.Equal(M(10, "INR")) {
		t.Errorf("gain = %s, want 10", got)
	}
}

func TestReplayCostPerUnitRoundsOnce(t *testing.T) {
	// 100 for 3 units does not divide evenly; the cost basis must be the
	// same fixed rounding no matter how the position is later sold off.
	var ledger Ledger
	if err := ledger.Append(
		NewBuy(day1, "hdfc", "GS2033", Q(3), M(100, "INR")),
		NewSell(day2, "hdfc", "GS2033", Q(1), M(40, "INR")),
		NewSell(day3, "hdfc", "GS2033", Q(2), M(40, "INR")),
	); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_, disposals, err := Replay(&ledger, FIFO)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	want := M(100, "INR").Div(Q(3))
	for i, d := range disposals {
		if !d.CostPerUnit.Equal(want) {
			t.Errorf("disposal %d cost per unit = %s, want %s", i, d.CostPerUnit, want)
		}
	}
}

func TestParseMatchingPolicy(t *testing.T) {
	for _, p := range []MatchingPolicy{FIFO, LIFO, HIFO} {
		got, err := ParseMatchingPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseMatchingPolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseMatchingPolicy("average"); err == nil {
		t.Error("unknown policy name must not parse")
	}
}
