package valuation

import (
	"fmt"

	"github.com/etnz/valuation/date"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy  CommandType = "buy"
	CmdSell CommandType = "sell"
)

// Transaction defines the common interface for the events recorded in the
// ledger. Transactions are append-only input: once loaded they are never
// mutated.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction ("buy", "sell").
	When() date.Date   // When returns the date on which the transaction occurred.
	Where() string     // Where returns the account holding the position.
	Equal(Transaction) bool
	Validate(db *Securities) error
}

// baseCmd carries the fields shared by all transaction types.
type baseCmd struct {
	Command  CommandType `json:"command"`
	Date     date.Date   `json:"date"`
	Account  string      `json:"account"`
	Security string      `json:"security"`
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() date.Date   { return t.Date }
func (t baseCmd) Where() string     { return t.Account }

// validate checks the fields every transaction must carry, and that the
// security is declared in the reference table.
func (t baseCmd) validate(db *Securities) error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction has no date")
	}
	if t.Account == "" {
		return fmt.Errorf("%s %s: transaction has no account", t.Date, t.Command)
	}
	if t.Security == "" {
		return fmt.Errorf("%s %s: transaction has no security", t.Date, t.Command)
	}
	if db != nil && db.Get(t.Security) == nil {
		return fmt.Errorf("%s %s: security %q not in the reference table", t.Date, t.Command, t.Security)
	}
	return nil
}

// Buy records a purchase of a quantity of a security at a unit price.
type Buy struct {
	baseCmd
	Quantity Quantity
	Price    Money // per unit, in the settlement currency
}

// NewBuy creates a new Buy transaction.
func NewBuy(day date.Date, account, security string, quantity Quantity, price Money) Buy {
	return Buy{
		baseCmd:  baseCmd{Command: CmdBuy, Date: day, Account: account, Security: security},
		Quantity: quantity,
		Price:    price,
	}
}

// Amount returns the total cash debited by the purchase.
func (t Buy) Amount() Money { return t.Price.Mul(t.Quantity) }

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.baseCmd == o.baseCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Validate checks the purchase for correctness.
func (t Buy) Validate(db *Securities) error {
	if err := t.baseCmd.validate(db); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%s buy %s: quantity must be positive, got %s", t.Date, t.Security, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%s buy %s: negative price %s", t.Date, t.Security, t.Price)
	}
	if c := t.Price.Currency(); c != "" {
		if err := ValidateCurrency(c); err != nil {
			return fmt.Errorf("%s buy %s: %w", t.Date, t.Security, err)
		}
	}
	return nil
}

// Sell records a disposal of a quantity of a security at a unit price.
// Quantity is positive; it is interpreted as a reduction of the position.
type Sell struct {
	baseCmd
	Quantity Quantity
	Price    Money // per unit, in the settlement currency
}

// NewSell creates a new Sell transaction.
func NewSell(day date.Date, account, security string, quantity Quantity, price Money) Sell {
	return Sell{
		baseCmd:  baseCmd{Command: CmdSell, Date: day, Account: account, Security: security},
		Quantity: quantity,
		Price:    price,
	}
}

// Amount returns the total cash credited by the sale.
func (t Sell) Amount() Money { return t.Price.Mul(t.Quantity) }

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.baseCmd == o.baseCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Validate checks the sale for correctness. Whether the position can cover
// the sale is only known at replay time, see LotBook.Sell.
func (t Sell) Validate(db *Securities) error {
	if err := t.baseCmd.validate(db); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%s sell %s: quantity must be positive, got %s", t.Date, t.Security, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%s sell %s: negative price %s", t.Date, t.Security, t.Price)
	}
	return nil
}
