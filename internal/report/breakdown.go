package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
	"github.com/apizzacone/subscrybe-easy-life/internal/util/sliceutil"
)

// CategorySpend is the active spend attributed to one category.
// Percentages across a breakdown sum to 100 (up to rounding) whenever the
// active total is positive.
type CategorySpend struct {
	Category   string
	Total      domain.Money
	Percentage float64
}

// ComputeCategoryBreakdown groups active subscriptions by category, ordered by
// descending total then category name. Zero-amount categories are omitted.
// An empty or zero-spend snapshot yields an empty breakdown, never a division
// by zero.
func ComputeCategoryBreakdown(subs []domain.Subscription, currency string) []CategorySpend {
	active := sliceutil.Filter(subs, func(s domain.Subscription) bool {
		return s.Status == domain.StatusActive
	})

	byCategory := lo.GroupBy(active, func(s domain.Subscription) string {
		return s.Category
	})

	var grandTotal int64
	for _, group := range byCategory {
		grandTotal += lo.SumBy(group, func(s domain.Subscription) int64 {
			return s.Price.MinorUnit
		})
	}

	if grandTotal == 0 {
		return nil
	}

	breakdown := make([]CategorySpend, 0, len(byCategory))
	for category, group := range byCategory {
		total := lo.SumBy(group, func(s domain.Subscription) int64 {
			return s.Price.MinorUnit
		})
		if total == 0 {
			continue
		}

		breakdown = append(breakdown, CategorySpend{
			Category:   category,
			Total:      domain.Money{MinorUnit: total, Currency: currency},
			Percentage: float64(total) / float64(grandTotal) * 100,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total.MinorUnit != breakdown[j].Total.MinorUnit {
			return breakdown[i].Total.MinorUnit > breakdown[j].Total.MinorUnit
		}

		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}
