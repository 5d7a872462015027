package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
	"github.com/apizzacone/subscrybe-easy-life/internal/util/sliceutil"
)

// DefaultCurrency is the display currency used when the snapshot carries no
// subscriptions to infer one from.
const DefaultCurrency = "BRL"

// Options controls a single aggregation pass.
type Options struct {
	Period        domain.ReportPeriod
	Now           time.Time // reference instant; injected by the caller, never captured implicitly
	UpcomingLimit int       // 0 means DefaultUpcomingLimit
}

func (o Options) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &o,
		validation.Field(&o.Now, validation.By(func(any) error {
			if o.Now.IsZero() {
				return errors.New("is required")
			}
			return nil
		})),
		validation.Field(&o.Period, validation.By(func(any) error {
			if !o.Period.Valid() {
				return errors.New("must be 3, 6 or 12 months")
			}
			return nil
		})),
	)
}

// Snapshot is one immutable, fully computed report. It is built once per
// aggregation pass and is the single source of truth for every renderer, so
// no two export formats can ever disagree on a number.
type Snapshot struct {
	Period      domain.ReportPeriod
	GeneratedAt time.Time
	Currency    string

	MonthlyTrend      []MonthlySpendPoint
	CategoryBreakdown []CategorySpend
	UpcomingPayments  []UpcomingPayment
	Insights          []Insight

	CurrentTotal  domain.Money
	PreviousTotal domain.Money
	// PercentChange is nil when the previous total is zero and the change is undefined.
	PercentChange    *float64
	MonthlyAverage   domain.Money
	PotentialSavings domain.Money
	ActiveCount      int

	// SkippedRecords counts malformed subscriptions dropped during the pass.
	SkippedRecords int
}

// Build runs one aggregation pass over the subscription snapshot and
// assembles the report. It is deterministic for fixed inputs and performs no
// I/O. Malformed subscriptions are skipped and counted, never aborting the
// pass; an empty list yields a snapshot with empty sequences and zero totals.
func Build(ctx context.Context, subs []domain.Subscription, history *History, opts Options) (*Snapshot, error) {
	if err := opts.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	valid := make([]domain.Subscription, 0, len(subs))
	skipped := 0
	for _, sub := range subs {
		if err := sub.Validate(ctx); err != nil {
			skipped++
			zerolog.Ctx(ctx).Warn().
				Str("subscription.id", sub.ID).
				Str("subscription.name", sub.Name).
				Err(err).
				Msg("skipping malformed subscription")

			continue
		}

		valid = append(valid, sub)
	}

	currency := dominantCurrency(valid)

	trend := ComputeMonthlyTrend(valid, history, opts.Period, opts.Now, currency)
	upcoming := RankUpcomingPayments(valid, opts.Now, opts.UpcomingLimit)

	currentTotal := domain.Money{Currency: currency}
	if len(trend) > 0 {
		currentTotal = trend[len(trend)-1].Total
	}

	previousTotal := domain.Money{Currency: currency}
	if len(trend) > 1 {
		previousTotal = trend[len(trend)-2].Total
	}

	var percentChange *float64
	if change, defined := PercentChange(currentTotal, previousTotal); defined {
		percentChange = &change
	}

	trials := sliceutil.Filter(valid, func(s domain.Subscription) bool {
		return s.Status == domain.StatusTrial
	})
	potentialSavings := sumPrices(trials, currency)

	active := sliceutil.Filter(valid, func(s domain.Subscription) bool {
		return s.Status == domain.StatusActive
	})

	snapshot := &Snapshot{
		Period:            opts.Period,
		GeneratedAt:       opts.Now,
		Currency:          currency,
		MonthlyTrend:      trend,
		CategoryBreakdown: ComputeCategoryBreakdown(valid, currency),
		UpcomingPayments:  upcoming,
		Insights:          DeriveInsights(currentTotal, previousTotal, potentialSavings, upcoming),
		CurrentTotal:      currentTotal,
		PreviousTotal:     previousTotal,
		PercentChange:     percentChange,
		MonthlyAverage:    monthlyAverage(trend, currency),
		PotentialSavings:  potentialSavings,
		ActiveCount:       len(active),
		SkippedRecords:    skipped,
	}

	zerolog.Ctx(ctx).Info().
		Str("period", opts.Period.String()).
		Int("subscription.count", len(valid)).
		Int("subscription.skipped", skipped).
		Int("upcoming.count", len(upcoming)).
		Msg("built report snapshot")

	return snapshot, nil
}

// dominantCurrency picks the display currency tag: the most common tag among
// non-canceled subscriptions, ties broken alphabetically for determinism.
func dominantCurrency(subs []domain.Subscription) string {
	counts := make(map[string]int)
	for _, sub := range subs {
		if sub.Status == domain.StatusCanceled {
			continue
		}

		counts[sub.Price.Currency]++
	}

	currency := DefaultCurrency
	best := 0
	for code, count := range counts {
		if code == "" {
			continue
		}

		if count > best || (count == best && best > 0 && code < currency) {
			currency = code
			best = count
		}
	}

	return currency
}

func monthlyAverage(trend []MonthlySpendPoint, currency string) domain.Money {
	if len(trend) == 0 {
		return domain.Money{Currency: currency}
	}

	var sum int64
	for _, point := range trend {
		sum += point.Total.MinorUnit
	}

	return domain.Money{MinorUnit: sum / int64(len(trend)), Currency: currency}
}
