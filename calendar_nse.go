package valuation

import "github.com/etnz/valuation/date"

// nseHolidays lists NSE trading holidays for 2024-2035.
//
// 2024 and 2025 follow the exchange circulars. Later years carry the
// gazetted fixed-date holidays only; the movable ones (Holi, Id, Diwali...)
// are announced by the exchange a year ahead and must be appended here when
// the circular is out. Weekend-only entries are harmless: the weekday check
// already excludes them.
var nseHolidays = func() []date.Date {
	var days []date.Date
	for _, s := range []string{
		// 2024
		"2024-01-26", // Republic Day
		"2024-03-08", // Mahashivratri
		"2024-03-25", // Holi
		"2024-03-29", // Good Friday
		"2024-04-11", // Id-Ul-Fitr
		"2024-04-17", // Shri Ram Navmi
		"2024-05-01", // Maharashtra Day
		"2024-06-17", // Bakri Id
		"2024-07-17", // Moharram
		"2024-08-15", // Independence Day
		"2024-10-02", // Mahatma Gandhi Jayanti
		"2024-11-01", // Diwali Laxmi Pujan
		"2024-11-15", // Gurunanak Jayanti
		"2024-12-25", // Christmas
		// 2025
		"2025-02-26", // Mahashivratri
		"2025-03-14", // Holi
		"2025-03-31", // Id-Ul-Fitr
		"2025-04-10", // Shri Mahavir Jayanti
		"2025-04-14", // Dr. Ambedkar Jayanti
		"2025-04-18", // Good Friday
		"2025-05-01", // Maharashtra Day
		"2025-08-15", // Independence Day
		"2025-08-27", // Ganesh Chaturthi
		"2025-10-02", // Mahatma Gandhi Jayanti
		"2025-10-21", // Diwali Laxmi Pujan
		"2025-10-22", // Balipratipada
		"2025-11-05", // Gurunanak Jayanti
		"2025-12-25", // Christmas
	} {
		days = append(days, date.MustParse(s))
	}
	// Fixed-date holidays for the remaining years of the bond book.
	for year := 2026; year <= 2035; year++ {
		days = append(days,
			date.New(year, 1, 26),  // Republic Day
			date.New(year, 5, 1),   // Maharashtra Day
			date.New(year, 8, 15),  // Independence Day
			date.New(year, 10, 2),  // Mahatma Gandhi Jayanti
			date.New(year, 12, 25), // Christmas
		)
	}
	return days
}()
