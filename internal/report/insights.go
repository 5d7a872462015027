package report

import (
	"fmt"
	"math"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
)

type InsightKind string

const (
	InsightWarning InsightKind = "warning"
	InsightSuccess InsightKind = "success"
	InsightInfo    InsightKind = "info"
)

// Insight is a derived, free-form statement about the user's spending.
type Insight struct {
	Kind        InsightKind
	Title       string
	Description string
	Value       string
}

// PercentChange returns the month-over-month change between two totals as a
// percentage. The second return value is false when the previous total is
// zero, in which case the change is undefined; it is never Inf or NaN.
func PercentChange(current, previous domain.Money) (float64, bool) {
	if previous.MinorUnit == 0 {
		return 0, false
	}

	return (current.ToMajorUnit() - previous.ToMajorUnit()) / previous.ToMajorUnit() * 100, true
}

// DeriveInsights produces the report's insight list: the month-over-month
// change (undefined when there is no previous figure), the largest upcoming
// payment, and the potential savings held in trial subscriptions.
func DeriveInsights(current, previous, potentialSavings domain.Money, upcoming []UpcomingPayment) []Insight {
	var insights []Insight

	change, defined := PercentChange(current, previous)
	switch {
	case !defined:
		insights = append(insights, Insight{
			Kind:        InsightInfo,
			Title:       "Spending change unavailable",
			Description: "No previous month figure to compare against",
			Value:       "n/a",
		})
	case change >= 0:
		insights = append(insights, Insight{
			Kind:        InsightWarning,
			Title:       fmt.Sprintf("Spending up %.1f%%", change),
			Description: "Compared to the previous month",
			Value:       "+" + domain.Money{MinorUnit: current.MinorUnit - previous.MinorUnit, Currency: current.Currency}.Display(),
		})
	default:
		insights = append(insights, Insight{
			Kind:        InsightSuccess,
			Title:       fmt.Sprintf("Spending down %.1f%%", math.Abs(change)),
			Description: "Compared to the previous month",
			Value:       domain.Money{MinorUnit: current.MinorUnit - previous.MinorUnit, Currency: current.Currency}.Display(),
		})
	}

	if largest, ok := largestUpcoming(upcoming); ok {
		insights = append(insights, Insight{
			Kind:        InsightInfo,
			Title:       "Largest upcoming payment",
			Description: fmt.Sprintf("%s %s", largest.ServiceName, dueInWords(largest.DaysUntilDue)),
			Value:       largest.Amount.Display(),
		})
	}

	if potentialSavings.MinorUnit > 0 {
		insights = append(insights, Insight{
			Kind:        InsightSuccess,
			Title:       "Potential savings",
			Description: "Trial subscriptions you can cancel before they bill",
			Value:       potentialSavings.Display(),
		})
	}

	return insights
}

func dueInWords(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return "due today"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

func largestUpcoming(upcoming []UpcomingPayment) (UpcomingPayment, bool) {
	if len(upcoming) == 0 {
		return UpcomingPayment{}, false
	}

	largest := upcoming[0]
	for _, payment := range upcoming[1:] {
		if payment.Amount.MinorUnit > largest.Amount.MinorUnit {
			largest = payment
		}
	}

	return largest, true
}
