package model

import (
	"errors"
	"testing"
)

func TestParseTrackerKindRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseTrackerKind(k.String())
		if err != nil {
			t.Fatalf("ParseTrackerKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("ParseTrackerKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseTrackerKindUnknown(t *testing.T) {
	_, err := ParseTrackerKind("investments")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestMarshalTextRejectsOutOfRange(t *testing.T) {
	if _, err := TrackerKind(42).MarshalText(); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestSummarize(t *testing.T) {
	trackers := []Tracker{
		{Kind: KindSpending, Current: 1200, Target: 1000},
		{Kind: KindSpending, Current: 300, Target: 500},
		{Kind: KindIncome, Current: 4000, Target: 5000},
		{Kind: KindSavings, Current: 800, Target: 2000},
		{Kind: KindCreditScore, Current: 712},
	}
	s := Summarize(trackers)
	if s.TotalSpending != 1500 || s.SpendingLimit != 1500 {
		t.Fatalf("spending = %.0f/%.0f, want 1500/1500", s.TotalSpending, s.SpendingLimit)
	}
	if s.OverBudget != 1 {
		t.Fatalf("OverBudget = %d, want 1", s.OverBudget)
	}
	if s.NetCashFlow != 2500 {
		t.Fatalf("NetCashFlow = %.0f, want 2500", s.NetCashFlow)
	}
	if s.CreditScore == nil || *s.CreditScore != 712 {
		t.Fatalf("CreditScore = %v, want 712", s.CreditScore)
	}
}
