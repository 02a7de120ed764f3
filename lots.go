package valuation

import (
	"fmt"

	"github.com/etnz/valuation/date"
)

// MatchingPolicy selects which open lot a sale consumes first.
type MatchingPolicy int

const (
	// FIFO consumes the oldest lot first.
	FIFO MatchingPolicy = iota
	// LIFO consumes the newest lot first.
	LIFO
	// HIFO consumes the lot with the highest cost per unit first,
	// oldest first among equals.
	HIFO
)

func (p MatchingPolicy) String() string {
	switch p {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	default:
		return "unknown"
	}
}

// ParseMatchingPolicy parses a string into a MatchingPolicy.
func ParseMatchingPolicy(s string) (MatchingPolicy, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	default:
		return 0, fmt.Errorf("unknown matching policy: %q", s)
	}
}

// lot is a slice of an open position created by one purchase. Remaining only
// decreases, and the lot is removed from its bucket when it reaches zero.
type lot struct {
	date        date.Date
	remaining   Quantity
	costPerUnit Money // fixed at creation
}

// Disposal is the outcome of matching part of a sale against one lot. It
// carries what is needed to compute the capital-gain posting and is never
// written back into the book.
type Disposal struct {
	Account     string
	Security    string
	Date        date.Date // date of the sale
	LotDate     date.Date // date of the matched purchase
	Quantity    Quantity  // quantity taken from the lot
	CostPerUnit Money
	SalePrice   Money // per unit
}

// Gain returns the realized gain (or loss) of the disposal.
func (d Disposal) Gain() Money {
	return d.SalePrice.Sub(d.CostPerUnit).Mul(d.Quantity)
}

// InventoryError reports a sale that consumes more quantity than held. It is
// fatal: the transaction history is inconsistent and must be corrected
// upstream, guessing here would corrupt the cost basis.
type InventoryError struct {
	Account  string
	Security string
	Date     date.Date
	Missing  Quantity // quantity the book could not cover
}

func (e *InventoryError) Error() string {
	return fmt.Sprintf("%s sell %s in account %q: insufficient inventory, %s units not covered by any lot",
		e.Date, e.Security, e.Account, e.Missing)
}

// bucketKey identifies one lot bucket.
type bucketKey struct {
	account  string
	security string
}

// LotBook holds, per (account, security) pair, the ordered open purchase
// lots. It is the one mutable structure of the engine and is owned by the
// caller replaying transactions; replay one bucket from one goroutine only.
type LotBook struct {
	buckets map[bucketKey][]lot
}

// NewLotBook creates an empty lot book.
func NewLotBook() *LotBook {
	return &LotBook{buckets: make(map[bucketKey][]lot)}
}

// Buy appends a new lot to the (account, security) bucket. Buys are replayed
// chronologically, so insertion order is creation-date order.
func (b *LotBook) Buy(account, security string, quantity Quantity, costPerUnit Money, on date.Date) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("%s buy %s in account %q: quantity must be positive, got %s", on, security, account, quantity)
	}
	key := bucketKey{account, security}
	b.buckets[key] = append(b.buckets[key], lot{date: on, remaining: quantity, costPerUnit: costPerUnit})
	return nil
}

// Sell matches a sale against the bucket's open lots under the given policy,
// consuming lots until the quantity is covered. It returns one disposal per
// matched lot; a lot is removed from the bucket the moment it is exhausted.
//
// An *InventoryError is returned when the bucket runs out before the sale is
// covered. The book is left partially consumed in that case; callers treat
// the error as fatal and discard the book.
func (b *LotBook) Sell(account, security string, quantity Quantity, salePrice Money, on date.Date, policy MatchingPolicy) ([]Disposal, error) {
	key := bucketKey{account, security}
	var disposals []Disposal

	remaining := quantity
	for remaining.IsPositive() {
		lots := b.buckets[key]
		if len(lots) == 0 {
			return disposals, &InventoryError{Account: account, Security: security, Date: on, Missing: remaining}
		}
		i := selectLot(lots, policy)
		taken := lots[i].remaining.Min(remaining)
		lots[i].remaining = lots[i].remaining.Sub(taken)
		remaining = remaining.Sub(taken)

		disposals = append(disposals, Disposal{
			Account:     account,
			Security:    security,
			Date:        on,
			LotDate:     lots[i].date,
			Quantity:    taken,
			CostPerUnit: lots[i].costPerUnit,
			SalePrice:   salePrice,
		})

		if lots[i].remaining.IsZero() {
			b.buckets[key] = append(lots[:i], lots[i+1:]...)
		}
	}
	return disposals, nil
}

// selectLot returns the index of the next lot to consume under the policy.
// Lots are stored in creation order, so FIFO is the front and LIFO the back.
func selectLot(lots []lot, policy MatchingPolicy) int {
	switch policy {
	case LIFO:
		return len(lots) - 1
	case HIFO:
		best := 0
		for i, l := range lots {
			if l.costPerUnit.GreaterThan(lots[best].costPerUnit) {
				best = i
			}
		}
		return best
	default: // FIFO
		return 0
	}
}

// Position returns the total remaining quantity of the bucket.
func (b *LotBook) Position(account, security string) Quantity {
	var total Quantity
	for _, l := range b.buckets[bucketKey{account, security}] {
		total = total.Add(l.remaining)
	}
	return total
}

// Lots returns the number of open lots in the bucket.
func (b *LotBook) Lots(account, security string) int {
	return len(b.buckets[bucketKey{account, security}])
}

// Replay builds a lot book by applying every ledger transaction in date
// order (buys before sells on the same day) and returns the book together
// with all disposal records. The first inconsistency aborts the replay.
func Replay(l *Ledger, policy MatchingPolicy) (*LotBook, []Disposal, error) {
	book := NewLotBook()
	var disposals []Disposal
	for tx := range l.Transactions() {
		switch v := tx.(type) {
		case Buy:
			// cost per unit is rounded once here, see costPrecision.
			cost := v.Amount().Div(v.Quantity)
			if err := book.Buy(v.Account, v.Security, v.Quantity, cost, v.Date); err != nil {
				return nil, nil, err
			}
		case Sell:
			ds, err := book.Sell(v.Account, v.Security, v.Quantity, v.Price, v.Date, policy)
			if err != nil {
				return nil, nil, err
			}
			disposals = append(disposals, ds...)
		default:
			return nil, nil, fmt.Errorf("%s: unrecognized event type %q", tx.When(), tx.What())
		}
	}
	return book, disposals, nil
}
