package util

import "time"

// MonthRange returns the first and last day of the given month
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return
}

// ValidMonth reports whether month is a calendar month number
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ValidYear bounds years to something a bookkeeping ledger can contain
func ValidYear(year int) bool {
	return year >= 2000 && year <= 2200
}
