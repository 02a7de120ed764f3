package valuation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/valuation/date"
	"github.com/shopspring/decimal"
)

// wireTx is the JSONL representation of a transaction, one object per line:
//
//	{"command":"buy","date":"2024-01-10","account":"me","security":"726GS2033","quantity":10000,"price":96.5,"currency":"INR"}
type wireTx struct {
	Command  CommandType     `json:"command"`
	Date     date.Date       `json:"date"`
	Account  string          `json:"account"`
	Security string          `json:"security"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	decimal.MarshalJSONWithoutQuotes = true
	var wire wireTx
	switch v := tx.(type) {
	case Buy:
		wire = wireTx{Command: CmdBuy, Date: v.Date, Account: v.Account, Security: v.Security,
			Quantity: v.Quantity.Decimal(), Price: v.Price.Decimal(), Currency: v.Price.Currency()}
	case Sell:
		wire = wireTx{Command: CmdSell, Date: v.Date, Account: v.Account, Security: v.Security,
			Quantity: v.Quantity.Decimal(), Price: v.Price.Decimal(), Currency: v.Price.Currency()}
	default:
		return fmt.Errorf("unsupported transaction type %T", tx)
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// EncodeLedger writes all transactions in ledger order, one per line.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL transaction feed into a Ledger. Unknown
// commands and malformed lines are fatal: the feed is the source of truth
// for cost basis, a wrong line must be fixed upstream, not skipped.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var wire wireTx
		if err := json.Unmarshal([]byte(text), &wire); err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		tx, err := wire.transaction()
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		if err := ledger.Append(tx); err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return ledger, nil
}

// transaction converts a wire record to the typed transaction.
func (w wireTx) transaction() (Transaction, error) {
	switch w.Command {
	case CmdBuy:
		return NewBuy(w.Date, w.Account, w.Security, Q(w.Quantity), M(w.Price, w.Currency)), nil
	case CmdSell:
		return NewSell(w.Date, w.Account, w.Security, Q(w.Quantity), M(w.Price, w.Currency)), nil
	default:
		return nil, fmt.Errorf("unrecognized event type %q", w.Command)
	}
}
