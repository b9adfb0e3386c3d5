package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Ticket numbers follow ID-YYYY-MM-NNN, unique per year-month bucket. The
// format is wire-visible and must not change.
const ticketNumberPrefix = "ID"

var ticketNumberPattern = regexp.MustCompile(`^ID-(\d{4})-(\d{2})-(\d{3,})$`)

// FormatTicketNumber builds the human-facing identifier for the given
// year-month bucket and sequence value.
func FormatTicketNumber(year int, month time.Month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", ticketNumberPrefix, year, int(month), seq)
}

// ParseTicketNumber extracts the bucket and sequence from an identifier.
func ParseTicketNumber(number string) (year int, month time.Month, seq int, err error) {
	matches := ticketNumberPattern.FindStringSubmatch(number)
	if matches == nil {
		return 0, 0, 0, fmt.Errorf("malformed ticket number %q", number)
	}
	year, _ = strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	if m < 1 || m > 12 {
		return 0, 0, 0, fmt.Errorf("ticket number %q has invalid month", number)
	}
	seq, _ = strconv.Atoi(matches[3])
	return year, time.Month(m), seq, nil
}
