package domain

import "fmt"

// ReportPeriod is the trailing window, in calendar months, over which the monthly trend is computed.
type ReportPeriod int

const (
	Period3Months  ReportPeriod = 3
	Period6Months  ReportPeriod = 6
	Period12Months ReportPeriod = 12
)

// ParsePeriod parses the period selector values used by the report view.
func ParsePeriod(s string) (ReportPeriod, error) {
	switch s {
	case "3months":
		return Period3Months, nil
	case "6months":
		return Period6Months, nil
	case "12months":
		return Period12Months, nil
	default:
		return 0, fmt.Errorf("unsupported period: %s (options: 3months, 6months, 12months)", s)
	}
}

// Months returns the number of months in the window.
func (p ReportPeriod) Months() int {
	return int(p)
}

func (p ReportPeriod) String() string {
	return fmt.Sprintf("%dmonths", int(p))
}

// Valid reports whether p is one of the supported windows.
func (p ReportPeriod) Valid() bool {
	switch p {
	case Period3Months, Period6Months, Period12Months:
		return true
	default:
		return false
	}
}
