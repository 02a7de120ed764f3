// Package valuation implements the financial instrument valuation engine for
// a household investment portfolio: lot-based cost basis tracking for buy and
// sell transactions, projection of a bond's future cashflow schedule from its
// coupon terms, and the numerical solvers that turn cashflows into yield
// metrics (XIRR, forward XIRR, yield to maturity) and invert a target yield
// back into a price.
//
// The package is a library: it performs no I/O of its own beyond decoding the
// transaction ledger and reference tables handed to it, and exposes plain
// function and method calls for the reporting layer to consume. All
// computations are synchronous and deterministic; the per-instrument pipeline
// (ledger replay, schedule, yield) shares no state across instruments and is
// safe to run from concurrent workers.
package valuation
