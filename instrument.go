package valuation

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/etnz/valuation/date"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// SecurityType tags a security with the valuation model that applies to it.
type SecurityType int

const (
	// Equity is a listed share; no coupon terms, no maturity.
	Equity SecurityType = iota
	// MutualFund is a fund unit; like Equity it has no coupon terms.
	MutualFund
	// TBill is a discounted instrument redeeming at face value.
	TBill
	// StrippedBond is a zero-coupon bond paying only face value at maturity.
	StrippedBond
	// CouponBond is a coupon-bearing bond.
	CouponBond
)

func (t SecurityType) String() string {
	switch t {
	case Equity:
		return "equity"
	case MutualFund:
		return "mutual-fund"
	case TBill:
		return "tbill"
	case StrippedBond:
		return "stripped"
	case CouponBond:
		return "bond"
	default:
		return "unknown"
	}
}

// ParseSecurityType parses a string into a SecurityType.
func ParseSecurityType(s string) (SecurityType, error) {
	switch s {
	case "equity":
		return Equity, nil
	case "mutual-fund":
		return MutualFund, nil
	case "tbill":
		return TBill, nil
	case "stripped":
		return StrippedBond, nil
	case "bond":
		return CouponBond, nil
	default:
		return 0, fmt.Errorf("unknown security type: %q", s)
	}
}

// IsBond reports whether the security redeems at maturity.
func (t SecurityType) IsBond() bool {
	return t == TBill || t == StrippedBond || t == CouponBond
}

// Security identifies a tradeable instrument and its coupon terms. It is
// immutable for a given report run; the reference table that feeds it is
// maintained outside this package.
type Security struct {
	Symbol          string
	ISIN            string
	Type            SecurityType
	FaceValue       float64
	CouponRate      float64   // annualized, in percent; 0 for non-bonds
	CouponFrequency int       // coupon payments per year
	Maturity        date.Date // zero for non-bonds
}

// Validate checks the reference record for internal consistency.
func (s Security) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("security has no symbol")
	}
	if s.ISIN != "" && !isinRegex.MatchString(s.ISIN) {
		return fmt.Errorf("security %q: invalid ISIN %q", s.Symbol, s.ISIN)
	}
	if s.CouponRate < 0 {
		return fmt.Errorf("security %q: negative coupon rate %v", s.Symbol, s.CouponRate)
	}
	if s.Type.IsBond() {
		if s.Maturity.IsZero() {
			return fmt.Errorf("security %q: %s without a maturity date", s.Symbol, s.Type)
		}
		if s.FaceValue <= 0 {
			return fmt.Errorf("security %q: %s without a face value", s.Symbol, s.Type)
		}
	}
	if s.Type == CouponBond && s.CouponFrequency <= 0 {
		return fmt.Errorf("security %q: bond without a coupon frequency", s.Symbol)
	}
	return nil
}

// Securities is the reference table of known instruments, indexed by symbol.
type Securities struct {
	bySymbol map[string]Security
}

// NewSecurities creates an empty reference table.
func NewSecurities() *Securities {
	return &Securities{bySymbol: make(map[string]Security)}
}

// Add validates the record and stores it, replacing any previous definition.
func (db *Securities) Add(s Security) error {
	if err := s.Validate(); err != nil {
		return err
	}
	db.bySymbol[s.Symbol] = s
	return nil
}

// Get returns the security declared with this symbol, or nil if unknown.
func (db *Securities) Get(symbol string) *Security {
	s, ok := db.bySymbol[symbol]
	if !ok {
		return nil
	}
	return &s
}

// Len returns the number of declared securities.
func (db *Securities) Len() int { return len(db.bySymbol) }

// DecodeSecurities reads the reference table from CSV with the header
//
//	SYMBOL,ISIN,TYPE,FACE VALUE,COUPON RATE,COUPON FREQUENCY,MATURITY DATE
//
// Empty maturity, rate and frequency columns are allowed for non-bonds.
// A malformed row is a fatal input error: the table is authoritative, and
// guessing would corrupt every yield derived from it.
func DecodeSecurities(r io.Reader) (*Securities, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading securities table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("securities table is empty")
	}
	db := NewSecurities()
	for i, rec := range records[1:] { // skip header
		sec, err := parseSecurityRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("securities table row %d: %w", i+2, err)
		}
		if err := db.Add(sec); err != nil {
			return nil, fmt.Errorf("securities table row %d: %w", i+2, err)
		}
	}
	return db, nil
}

func parseSecurityRecord(rec []string) (Security, error) {
	if len(rec) != 7 {
		return Security{}, fmt.Errorf("want 7 columns, got %d", len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	typ, err := ParseSecurityType(rec[2])
	if err != nil {
		return Security{}, err
	}
	sec := Security{Symbol: rec[0], ISIN: rec[1], Type: typ}
	if rec[3] != "" {
		if sec.FaceValue, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return Security{}, fmt.Errorf("invalid face value %q: %w", rec[3], err)
		}
	}
	if rec[4] != "" {
		if sec.CouponRate, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return Security{}, fmt.Errorf("invalid coupon rate %q: %w", rec[4], err)
		}
	}
	if rec[5] != "" {
		if sec.CouponFrequency, err = strconv.Atoi(rec[5]); err != nil {
			return Security{}, fmt.Errorf("invalid coupon frequency %q: %w", rec[5], err)
		}
	}
	if rec[6] != "" {
		if sec.Maturity, err = date.Parse(rec[6]); err != nil {
			return Security{}, fmt.Errorf("invalid maturity date: %w", err)
		}
	}
	return sec, nil
}
