package domain

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrial    SubscriptionStatus = "trial"
	StatusCanceled SubscriptionStatus = "canceled"
)

// Categories is the fixed set of subscription categories offered by the subscription form.
var Categories = []string{
	"Streaming",
	"Software",
	"Música",
	"Fitness",
	"Notícias",
	"Produtividade",
	"Jogos",
	"Educação",
	"Outros",
}

// Subscription is one recurring billed service tracked by the user.
// The report pipeline receives subscriptions as a read-only snapshot and never mutates them.
type Subscription struct {
	ID          string
	Name        string
	Price       Money
	NextPayment time.Time
	Category    string
	Status      SubscriptionStatus
}

func (s Subscription) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &s,
		validation.Field(&s.ID, validation.Required.Error("is required")),
		validation.Field(&s.Name, validation.Required.Error("is required")),
		validation.Field(&s.Price, validation.By(validatePrice)),
		validation.Field(&s.NextPayment, validation.By(validateDate)),
		validation.Field(&s.Category, validation.Required.Error("is required"), validation.In(categoryValues()...)),
		validation.Field(&s.Status, validation.In(StatusActive, StatusTrial, StatusCanceled).Error("must be a valid status")),
	)
}

func validatePrice(value any) error {
	price, ok := value.(Money)
	if !ok {
		return errors.New("must be a monetary amount")
	}

	if price.MinorUnit < 0 {
		return errors.New("must be non-negative")
	}

	return nil
}

func validateDate(value any) error {
	date, ok := value.(time.Time)
	if !ok || date.IsZero() {
		return errors.New("must be a valid date")
	}

	return nil
}

func categoryValues() []any {
	values := make([]any, len(Categories))
	for i, category := range Categories {
		values[i] = category
	}

	return values
}
