// Package model defines domain types for famdash trackers.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned when a tracker kind string is not recognized.
var ErrUnknownKind = errors.New("unknown tracker kind")

// TrackerKind selects how a tracker's value maps onto its dial.
type TrackerKind int

const (
	KindSpending TrackerKind = iota
	KindIncome
	KindSavings
	KindCreditScore
)

// Kinds lists every tracker kind in display order.
var Kinds = []TrackerKind{KindSpending, KindIncome, KindSavings, KindCreditScore}

// String returns the kind's config/CLI spelling.
func (k TrackerKind) String() string {
	switch k {
	case KindSpending:
		return "spending"
	case KindIncome:
		return "income"
	case KindSavings:
		return "savings"
	case KindCreditScore:
		return "credit-score"
	}
	return fmt.Sprintf("TrackerKind(%d)", int(k))
}

// Label is the human-facing name of the kind.
func (k TrackerKind) Label() string {
	switch k {
	case KindSpending:
		return "Spending"
	case KindIncome:
		return "Income"
	case KindSavings:
		return "Savings"
	case KindCreditScore:
		return "Credit Score"
	}
	return k.String()
}

// Monetary reports whether values of this kind are currency amounts.
func (k TrackerKind) Monetary() bool {
	switch k {
	case KindSpending, KindIncome, KindSavings:
		return true
	case KindCreditScore:
		return false
	}
	return false
}

// ParseTrackerKind parses the config/CLI spelling of a kind.
func ParseTrackerKind(s string) (TrackerKind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k TrackerKind) MarshalText() ([]byte, error) {
	switch k {
	case KindSpending, KindIncome, KindSavings, KindCreditScore:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TrackerKind) UnmarshalText(b []byte) error {
	parsed, err := ParseTrackerKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Tracker is one dashboard card: a current value and the goal it is measured against.
// Target is ignored for credit-score trackers.
type Tracker struct {
	ID        string
	Title     string
	Kind      TrackerKind
	Current   float64
	Target    float64
	UpdatedAt time.Time
}

// TargetChange records one committed change of a tracker's target.
type TargetChange struct {
	TrackerID string
	Target    float64
	ChangedAt time.Time
}
