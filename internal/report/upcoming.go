package report

import (
	"sort"
	"time"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
)

// DefaultUpcomingLimit is the number of upcoming payments shown by the report view.
const DefaultUpcomingLimit = 3

// UpcomingPayment is one active subscription's next charge, ranked by urgency.
type UpcomingPayment struct {
	SubscriptionID string
	ServiceName    string
	Amount         domain.Money
	DueDate        time.Time
	DaysUntilDue   int
	Urgency        domain.Urgency
}

// RankUpcomingPayments ranks active subscriptions by how soon their next
// payment is due, overdue first, and truncates to limit (DefaultUpcomingLimit
// when limit <= 0). Ties are broken by subscription ID so the ranking is
// deterministic.
func RankUpcomingPayments(subs []domain.Subscription, now time.Time, limit int) []UpcomingPayment {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	payments := make([]UpcomingPayment, 0, len(subs))
	for _, sub := range subs {
		if sub.Status != domain.StatusActive {
			continue
		}

		days := domain.DaysUntil(sub.NextPayment, now)
		payments = append(payments, UpcomingPayment{
			SubscriptionID: sub.ID,
			ServiceName:    sub.Name,
			Amount:         sub.Price,
			DueDate:        sub.NextPayment,
			DaysUntilDue:   days,
			Urgency:        domain.ClassifyUrgency(days),
		})
	}

	sort.Slice(payments, func(i, j int) bool {
		if payments[i].DaysUntilDue != payments[j].DaysUntilDue {
			return payments[i].DaysUntilDue < payments[j].DaysUntilDue
		}

		return payments[i].SubscriptionID < payments[j].SubscriptionID
	})

	if len(payments) > limit {
		payments = payments[:limit]
	}

	return payments
}
