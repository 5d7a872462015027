package report

import (
	"time"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
	"github.com/apizzacone/subscrybe-easy-life/internal/util/sliceutil"
)

// PointSource tags where a monthly figure came from. Live and historical
// figures are never mixed without this tag.
type PointSource string

const (
	SourceHistory PointSource = "history"
	SourceLive    PointSource = "live"
)

const monthLabelFormat = "Jan 2006"

// MonthlySpendPoint is the spend figure for one calendar month within the period.
type MonthlySpendPoint struct {
	Label         string
	Month         time.Time
	Total         domain.Money
	Subscriptions int
	Source        PointSource
}

// ComputeMonthlyTrend returns one point per month for the last N months ending
// at now's month inclusive, oldest first. The most recent month is derived
// from the live subscription snapshot (billing history is not tracked, so the
// current active total stands in for it); earlier months come from the seeded
// history ledger and are zero when absent.
func ComputeMonthlyTrend(subs []domain.Subscription, history *History, period domain.ReportPeriod, now time.Time, currency string) []MonthlySpendPoint {
	currentMonth := monthStart(now)
	months := period.Months()

	points := make([]MonthlySpendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := currentMonth.AddDate(0, -i, 0)

		if i == 0 {
			active := sliceutil.Filter(subs, func(s domain.Subscription) bool {
				return s.Status == domain.StatusActive
			})

			points = append(points, MonthlySpendPoint{
				Label:         month.Format(monthLabelFormat),
				Month:         month,
				Total:         sumPrices(active, currency),
				Subscriptions: len(active),
				Source:        SourceLive,
			})

			continue
		}

		entry, _ := history.Lookup(month)
		points = append(points, MonthlySpendPoint{
			Label:         month.Format(monthLabelFormat),
			Month:         month,
			Total:         history.Amount(month, currency),
			Subscriptions: entry.Subscriptions,
			Source:        SourceHistory,
		})
	}

	return points
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sumPrices(subs []domain.Subscription, currency string) domain.Money {
	total := domain.Money{Currency: currency}
	for _, sub := range subs {
		total = total.Add(sub.Price)
	}

	return total
}
