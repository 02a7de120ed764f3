package valuation

import (
	"math"

	"github.com/etnz/valuation/date"
)

// Yield metrics in this file are quoted the way the exchange quotes them:
// rates go in and come out as percentages (7.26 means 7.26% per annum).

// TBillYield is the discount yield of a T-bill bought at price and redeemed
// at face value daysToMaturity days later:
//
//	((face - price) / price) × (365 / days)
//
// It returns NaN when daysToMaturity is not positive.
func TBillYield(price, faceValue float64, daysToMaturity int) float64 {
	if daysToMaturity <= 0 || price <= 0 {
		return math.NaN()
	}
	return ((faceValue - price) / price) * (365.0 / float64(daysToMaturity)) * 100
}

// ZeroCouponYield is the annualized yield of a stripped (zero-coupon) bond:
//
//	(face/price)^(1/years) − 1
//
// It returns NaN when yearsToMaturity is not positive.
func ZeroCouponYield(price, faceValue float64, yearsToMaturity float64) float64 {
	if yearsToMaturity <= 0 || price <= 0 {
		return math.NaN()
	}
	return (math.Pow(faceValue/price, 1/yearsToMaturity) - 1) * 100
}

// CouponBondYield solves
//
//	         N         C               F
//	f(y) =   Σ    -----------  +  ----------- − P  =  0
//	        t=1   (1 + y/f)^t     (1 + y/f)^N
//
// for the yield y of a coupon-bearing bond, with C the coupon per period,
// F the face value, P the price, f the coupon frequency per year, and
// N = ceil(years-to-maturity × f) the period count.
//
// N is deliberately rounded up: when only the maturity year of a bond is
// known the schedule over-counts periods and the yield comes out slightly
// high. The screening reports depend on that bias to keep such bonds
// visible, so it must not be replaced with a more exact period count.
//
// It returns NaN on invalid inputs (price ≤ 0, negative coupon, settlement
// at or after maturity) and on non-convergence.
func CouponBondYield(price, couponRate, faceValue float64, settlement, maturity date.Date, frequency int) float64 {
	if price <= 0 || couponRate < 0 || frequency <= 0 || !maturity.After(settlement) {
		return math.NaN()
	}

	rate := couponRate / 100
	years := float64(maturity.Sub(settlement)) / 365.0
	periods := int(math.Ceil(years * float64(frequency)))
	f := float64(frequency)
	coupon := rate * faceValue / f

	pv := func(y float64) float64 {
		sum := 0.0
		for t := 1; t <= periods; t++ {
			sum += coupon / math.Pow(1+y/f, float64(t))
		}
		return sum + faceValue/math.Pow(1+y/f, float64(periods)) - price
	}
	dpv := func(y float64) float64 {
		sum := 0.0
		for t := 1; t <= periods; t++ {
			sum += -float64(t) / f * coupon / math.Pow(1+y/f, float64(t)+1)
		}
		return sum - float64(periods)/f*faceValue/math.Pow(1+y/f, float64(periods)+1)
	}

	y, err := newton(pv, dpv, rate)
	if err != nil {
		return math.NaN()
	}
	return y * 100
}

// Yield computes the yield to maturity of a security at the given price,
// dispatching on its type: T-bills use the discount yield, stripped bonds
// the zero-coupon yield, every other bond the full coupon-bond solve.
// Equities and mutual funds have no yield to maturity.
//
// A missing or non-positive price, or a non-positive coupon rate on a
// coupon bond, short-circuits to NaN without attempting the solve.
func Yield(sec Security, price float64, settlement date.Date) float64 {
	if math.IsNaN(price) || price <= 0 {
		return math.NaN()
	}
	switch sec.Type {
	case TBill:
		return TBillYield(price, sec.FaceValue, sec.Maturity.Sub(settlement))
	case StrippedBond:
		years := float64(sec.Maturity.Sub(settlement)) / 365.0
		return ZeroCouponYield(price, sec.FaceValue, years)
	case CouponBond:
		if sec.CouponRate <= 0 {
			return math.NaN()
		}
		return CouponBondYield(price, sec.CouponRate, sec.FaceValue, settlement, sec.Maturity, sec.CouponFrequency)
	default:
		return math.NaN()
	}
}
