package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02/01/2006"
	// Accepts single-digit day and month on input.
	displayInputLayout = "2/1/2006"
)

// ParseDisplayDate converts a DD/MM/YYYY date into ISO form. An empty
// input yields an empty date and no error.
func ParseDisplayDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(displayInputLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: watch date %q is not DD/MM/YYYY", ErrInvalidInput, s)
	}
	return t.Format(isoDateLayout), nil
}

// DisplayToISO is ParseDisplayDate with malformed input degraded to an
// empty date.
func DisplayToISO(s string) string {
	iso, err := ParseDisplayDate(s)
	if err != nil {
		return ""
	}
	return iso
}

// ISOToDisplay renders a stored ISO date as DD/MM/YYYY. Values that are
// not ISO dates are returned unchanged.
func ISOToDisplay(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(displayDateLayout)
}

// FormatISODate renders t in the storage form.
func FormatISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}
