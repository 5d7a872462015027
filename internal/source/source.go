// Package source reads subscription snapshots from disk. In the full product
// the presentation layer owns the subscription list; the CLI stands in for it
// by loading an ordered JSON snapshot per invocation.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
)

const dateFormat = "2006-01-02"

// snapshotFile is the on-disk snapshot format.
// Example:
//
//	{
//	  "subscriptions": [
//	    {"id": "1", "name": "Netflix", "price": 45.90, "currency": "BRL",
//	     "nextPayment": "2024-08-15", "category": "Streaming", "status": "active"}
//	  ]
//	}
type snapshotFile struct {
	Subscriptions []fileSubscription `json:"subscriptions"`
}

type fileSubscription struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	NextPayment string  `json:"nextPayment"` // YYYY-MM-DD
	Category    string  `json:"category"`
	Status      string  `json:"status"`
}

// LoadSnapshot parses a subscription snapshot file, preserving record order.
// Records with an unparseable date are kept with a zero date so the
// aggregation pass can apply its skip-and-count policy; only file-level
// failures (missing file, malformed JSON) are errors.
func LoadSnapshot(ctx context.Context, path string) ([]domain.Subscription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}

	subs := make([]domain.Subscription, 0, len(file.Subscriptions))
	for _, record := range file.Subscriptions {
		var nextPayment time.Time
		if record.NextPayment != "" {
			nextPayment, err = time.Parse(dateFormat, record.NextPayment)
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Str("subscription.id", record.ID).
					Str("subscription.nextPayment", record.NextPayment).
					Msg("unparseable next payment date")

				nextPayment = time.Time{}
			}
		}

		subs = append(subs, domain.Subscription{
			ID:          record.ID,
			Name:        record.Name,
			Price:       domain.MoneyFromMajorUnit(record.Price, record.Currency),
			NextPayment: nextPayment,
			Category:    record.Category,
			Status:      domain.SubscriptionStatus(record.Status),
		})
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("subscription.count", len(subs)).
		Msg("loaded subscription snapshot")

	return subs, nil
}
