package valuation

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/valuation/date"
)

// SettlementLagDays is the number of trading days between a trade and the
// quantity actually transferring, per the exchange's T+2 cycle.
const SettlementLagDays = 2

// Entry is one dated line of a cashflow schedule. Absent components are
// zero; Total is always the sum of the three cash components.
type Entry struct {
	Date        date.Date
	Quantity    float64 // held quantity after this date
	Coupon      float64 // coupon payment
	Principal   float64 // principal repayment
	Transaction float64 // raw transaction cash (negative for buys)
	Total       float64 // Coupon + Principal + Transaction

	couponDate bool
	maturity   bool
}

// IsCouponDate reports whether the entry falls on a coupon payment date.
func (e Entry) IsCouponDate() bool { return e.couponDate }

// IsMaturity reports whether the entry is the redemption entry.
func (e Entry) IsMaturity() bool { return e.maturity }

// Schedule is a date-ordered cashflow schedule for one security.
type Schedule struct {
	entries []Entry
}

// Entries returns the schedule lines in date order.
func (s Schedule) Entries() []Entry { return s.entries }

// Len returns the number of schedule lines.
func (s Schedule) Len() int { return len(s.entries) }

// Dates returns the entry dates in order.
func (s Schedule) Dates() []date.Date {
	dates := make([]date.Date, len(s.entries))
	for i, e := range s.entries {
		dates[i] = e.Date
	}
	return dates
}

// Cashflows returns the total cashflow of every entry, aligned with Dates.
func (s Schedule) Cashflows() []float64 {
	flows := make([]float64, len(s.entries))
	for i, e := range s.entries {
		flows[i] = e.Total
	}
	return flows
}

// CouponDates generates the market-shifted coupon dates strictly after start
// and strictly before maturity.
//
// The anchor is maturity's month and day: the walk steps backward from the
// maturity anchor in 12/frequency month increments until it is at or before
// start, then forward again to the first coupon date after start. This keeps
// coupon dates aligned to the maturity day-of-month no matter how far start
// is from maturity.
func CouponDates(cal *Calendar, start, maturity date.Date, frequency int) []date.Date {
	months := 12 / frequency

	coupon := date.New(start.Year(), maturity.Month(), maturity.Day())
	coupon = coupon.AddMonth(-months)
	for !coupon.After(start) {
		coupon = coupon.AddMonth(months)
	}

	var dates []date.Date
	for ; coupon.Before(maturity); coupon = coupon.AddMonth(months) {
		dates = append(dates, cal.ShiftForward(coupon, 0))
	}
	return dates
}

// scheduleBuilder accumulates sparse dated slots before the ordered walk.
type scheduleBuilder struct {
	slots map[date.Date]*Entry
}

func newScheduleBuilder() *scheduleBuilder {
	return &scheduleBuilder{slots: make(map[date.Date]*Entry)}
}

func (b *scheduleBuilder) slot(on date.Date) *Entry {
	e, ok := b.slots[on]
	if !ok {
		e = &Entry{Date: on}
		b.slots[on] = e
	}
	return e
}

// transact posts a quantity delta and a cash delta on a date.
func (b *scheduleBuilder) transact(on date.Date, quantityDelta, cash float64) {
	e := b.slot(on)
	e.Quantity += quantityDelta
	e.Transaction += cash
}

func (b *scheduleBuilder) markCoupon(on date.Date) { b.slot(on).couponDate = true }
func (b *scheduleBuilder) markMaturity(on date.Date) {
	e := b.slot(on)
	e.couponDate, e.maturity = true, true
}

// build walks the slots in date order, accumulating the running held
// quantity, paying coupons on coupon dates, and redeeming principal at the
// maturity entry. A negative running quantity is fatal: a short bond
// position is not modeled and signals a broken transaction history.
func (b *scheduleBuilder) build(sec Security) (Schedule, error) {
	dates := slices.SortedFunc(maps.Keys(b.slots), func(a, c date.Date) int {
		return a.Sub(c)
	})

	running := 0.0
	entries := make([]Entry, 0, len(dates))
	for _, on := range dates {
		e := *b.slots[on]
		running += e.Quantity
		if running < 0 {
			return Schedule{}, fmt.Errorf("%s %s: transactions drive held quantity negative (%g)", on, sec.Symbol, running)
		}
		e.Quantity = running

		if e.couponDate && running > 0 && sec.CouponRate > 0 && sec.CouponFrequency > 0 {
			e.Coupon = sec.FaceValue * running * (sec.CouponRate / 100) / float64(sec.CouponFrequency)
		}
		if e.maturity && running > 0 {
			e.Principal = sec.FaceValue * running
			running = 0
			e.Quantity = 0
		}
		e.Total = e.Coupon + e.Principal + e.Transaction
		entries = append(entries, e)
	}
	return Schedule{entries: entries}, nil
}

// BuildSchedule derives the full cashflow schedule of one security from its
// transaction history: transaction cashflows, coupon payments, and the
// principal redemption, each attributed to the running held quantity.
//
// Cash moves on the trade date; quantity transfers on the market-shifted
// settlement date, lagDays trading days later. A buy therefore produces two
// logically distinct entries when the settlement lags the trade.
func BuildSchedule(cal *Calendar, sec Security, txs []Transaction, lagDays int) (Schedule, error) {
	b := newScheduleBuilder()

	var earliest date.Date
	for _, tx := range txs {
		settlement := cal.ShiftForward(tx.When(), lagDays)
		switch v := tx.(type) {
		case Buy:
			b.transact(v.Date, 0, -v.Amount().InexactFloat64())
			b.transact(settlement, v.Quantity.InexactFloat64(), 0)
		case Sell:
			b.transact(v.Date, 0, v.Amount().InexactFloat64())
			b.transact(settlement, -v.Quantity.InexactFloat64(), 0)
		default:
			return Schedule{}, fmt.Errorf("%s: unrecognized event type %q", tx.When(), tx.What())
		}
		if earliest.IsZero() || tx.When().Before(earliest) {
			earliest = tx.When()
		}
	}

	if sec.Type.IsBond() && !earliest.IsZero() {
		if sec.CouponFrequency > 0 && sec.CouponRate > 0 {
			for _, d := range CouponDates(cal, earliest, sec.Maturity, sec.CouponFrequency) {
				b.markCoupon(d)
			}
		}
		b.markMaturity(cal.ShiftForward(sec.Maturity, 0))
	}

	return b.build(sec)
}

// ProjectedSchedule builds the cashflow schedule of a hypothetical purchase
// of one unit settling lagDays after asOf: a placeholder entry with zero
// cashflow at the settlement date (the caller overwrites it with the
// candidate price), the coupons from settlement to maturity, and the
// principal plus final coupon at the market-shifted maturity.
func ProjectedSchedule(cal *Calendar, sec Security, asOf date.Date, lagDays int) (Schedule, error) {
	if !sec.Type.IsBond() {
		return Schedule{}, fmt.Errorf("%s: cannot project cashflows for a %s", sec.Symbol, sec.Type)
	}
	settlement := cal.ShiftForward(asOf.Add(lagDays), 0)
	if !sec.Maturity.After(settlement) {
		return Schedule{}, fmt.Errorf("%s: already matured on %s", sec.Symbol, sec.Maturity)
	}

	b := newScheduleBuilder()
	b.transact(settlement, 1, 0)
	if sec.CouponFrequency > 0 && sec.CouponRate > 0 {
		for _, d := range CouponDates(cal, settlement, sec.Maturity, sec.CouponFrequency) {
			b.markCoupon(d)
		}
	}
	b.markMaturity(cal.ShiftForward(sec.Maturity, 0))
	return b.build(sec)
}
