package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
)

const historyMonthFormat = "2006-01"

// HistoryEntry is one externally supplied monthly spend figure.
// Historical months are never computed from live subscriptions; they come
// from a seeded ledger and stay tagged as such all the way to the exports.
type HistoryEntry struct {
	Month         string  `yaml:"month"` // YYYY-MM
	Total         float64 `yaml:"total"` // major units
	Subscriptions int     `yaml:"subscriptions"`
}

type historyFile struct {
	Months []HistoryEntry `yaml:"months"`
}

// History is the seeded monthly spend ledger, keyed by calendar month.
// A nil History is valid and resolves every month to a zero figure.
type History struct {
	byMonth map[string]HistoryEntry
}

// NewHistory builds a History from entries, validating month formats.
// Later entries for the same month override earlier ones.
func NewHistory(entries []HistoryEntry) (*History, error) {
	byMonth := make(map[string]HistoryEntry, len(entries))
	for _, entry := range entries {
		if _, err := time.Parse(historyMonthFormat, entry.Month); err != nil {
			return nil, fmt.Errorf("invalid history month %q: %w", entry.Month, err)
		}

		byMonth[entry.Month] = entry
	}

	return &History{byMonth: byMonth}, nil
}

// LoadHistory reads a YAML history ledger from path.
func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var file historyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}

	return NewHistory(file.Months)
}

// Lookup returns the ledger entry for the calendar month containing t.
func (h *History) Lookup(t time.Time) (HistoryEntry, bool) {
	if h == nil || h.byMonth == nil {
		return HistoryEntry{}, false
	}

	entry, ok := h.byMonth[t.Format(historyMonthFormat)]

	return entry, ok
}

// Amount returns the ledger total for the month containing t as Money in the
// given currency, zero when the month is absent.
func (h *History) Amount(t time.Time, currency string) domain.Money {
	entry, ok := h.Lookup(t)
	if !ok {
		return domain.Money{Currency: currency}
	}

	return domain.MoneyFromMajorUnit(entry.Total, currency)
}
