package booking

import "time"

type AvailabilityInput struct {
	// Date as sent by the client, "YYYY-MM-DD". Interpreted in the salon
	// timezone.
	Date string
}

type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// DayBounds returns the [start, end) window covering a calendar day.
// The end bound is the next calendar midnight, so DST-transition days keep
// their real length instead of a flat 24 hours.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day()+1, 0, 0, 0, 0, date.Location())
	return start, end
}
