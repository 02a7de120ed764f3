package valuation

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/valuation/date"
)

// Ledger is the append-only record of all transactions.
//
// Transactions are kept in chronological order; on the same day buys come
// before sells so that replay never sees a sale ahead of the purchase that
// funds it.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append validates and adds transactions to the ledger, keeping it sorted.
func (l *Ledger) Append(txs ...Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(nil); err != nil {
			return fmt.Errorf("invalid transaction: %w", err)
		}
		l.transactions = append(l.transactions, tx)
	}
	l.sort()
	return nil
}

// sort orders transactions by date, buys before sells on the same day.
// The sort is stable so that same-day same-kind transactions keep their
// input order.
func (l *Ledger) sort() {
	slices.SortStableFunc(l.transactions, func(a, b Transaction) int {
		if a.When().Before(b.When()) {
			return -1
		}
		if a.When().After(b.When()) {
			return 1
		}
		return kindRank(a.What()) - kindRank(b.What())
	})
}

func kindRank(c CommandType) int {
	if c == CmdBuy {
		return 0
	}
	return 1
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions iterates over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return slices.Values(l.transactions)
}

// SecurityTransactions iterates over the transactions of one security,
// in chronological order.
func (l *Ledger) SecurityTransactions(symbol string) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if txSecurity(tx) == symbol {
				if !yield(tx) {
					return
				}
			}
		}
	}
}

// AllSecurities iterates over the distinct security symbols in the ledger,
// in lexical order.
func (l *Ledger) AllSecurities() iter.Seq[string] {
	set := make(map[string]struct{})
	for _, tx := range l.transactions {
		set[txSecurity(tx)] = struct{}{}
	}
	return slices.Values(slices.Sorted(maps.Keys(set)))
}

// EarliestFor returns the date of the first transaction on the given
// security, and false when the ledger has none.
func (l *Ledger) EarliestFor(symbol string) (date.Date, bool) {
	for _, tx := range l.transactions {
		if txSecurity(tx) == symbol {
			return tx.When(), true
		}
	}
	return date.Date{}, false
}

func txSecurity(tx Transaction) string {
	switch v := tx.(type) {
	case Buy:
		return v.Security
	case Sell:
		return v.Security
	default:
		return ""
	}
}
