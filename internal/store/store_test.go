package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/famdash/famdash/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "famdash.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func seed() []model.Tracker {
	return []model.Tracker{
		{Title: "Monthly Spending", Kind: model.KindSpending, Current: 750.25, Target: 1000},
		{Title: "Credit Score", Kind: model.KindCreditScore, Current: 712},
	}
}

func TestSeedIfEmptyOnlyOnce(t *testing.T) {
	s := openTest(t)

	ok, err := s.SeedIfEmpty(seed())
	if err != nil || !ok {
		t.Fatalf("first SeedIfEmpty = %v, %v", ok, err)
	}
	ok, err = s.SeedIfEmpty(seed())
	if err != nil || ok {
		t.Fatalf("second SeedIfEmpty = %v, %v; want no insert", ok, err)
	}

	list, err := s.ListTrackers()
	if err != nil {
		t.Fatalf("ListTrackers: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Title != "Monthly Spending" || list[1].Kind != model.KindCreditScore {
		t.Fatalf("order/kinds wrong: %+v", list)
	}
	if list[0].ID == "" || list[0].ID == list[1].ID {
		t.Fatalf("ids not assigned: %q %q", list[0].ID, list[1].ID)
	}
	if list[0].Current != 750.25 {
		t.Fatalf("current = %v, want 750.25", list[0].Current)
	}
}

func TestGetByTitleNotFound(t *testing.T) {
	s := openTest(t)
	if _, err := s.GetByTitle("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := s.SetCurrent("missing-id", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetCurrent err = %v, want ErrNotFound", err)
	}
}

func TestSetTargetRecordsHistory(t *testing.T) {
	s := openTest(t)
	if _, err := s.SeedIfEmpty(seed()); err != nil {
		t.Fatal(err)
	}
	tr, err := s.GetByTitle("Monthly Spending")
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []float64{1250, 1250, 1500, 900} {
		if err := s.SetTarget(tr.ID, v); err != nil {
			t.Fatalf("SetTarget(%v): %v", v, err)
		}
	}

	got, err := s.Get(tr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Target != 900 {
		t.Fatalf("target = %v, want 900", got.Target)
	}
	if !got.UpdatedAt.After(tr.UpdatedAt) {
		t.Fatalf("updated_at not advanced: %v -> %v", tr.UpdatedAt, got.UpdatedAt)
	}

	hist, err := s.TargetHistory(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1250, 1500, 900}
	if len(hist) != len(want) {
		t.Fatalf("history = %+v, want %v", hist, want)
	}
	for i, h := range hist {
		if h.Target != want[i] {
			t.Fatalf("history[%d] = %v, want %v", i, h.Target, want[i])
		}
	}

	last, err := s.TargetHistory(tr.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 2 || last[0].Target != 1500 || last[1].Target != 900 {
		t.Fatalf("limited history = %+v", last)
	}
}

func TestAddAndDelete(t *testing.T) {
	s := openTest(t)
	if _, err := s.SeedIfEmpty(seed()); err != nil {
		t.Fatal(err)
	}
	added, err := s.Add(model.Tracker{Title: "Vacation", Kind: model.KindSavings, Current: 10, Target: 2000})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(model.Tracker{Title: "Vacation", Kind: model.KindSavings}); err == nil {
		t.Fatal("Add accepted a duplicate title")
	}

	list, _ := s.ListTrackers()
	if len(list) != 3 || list[2].ID != added.ID {
		t.Fatalf("added tracker not last: %+v", list)
	}

	if err := s.SetTarget(added.ID, 2500); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(added.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(added.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v", err)
	}
	hist, err := s.TargetHistory(added.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 0 {
		t.Fatalf("history survived delete: %+v", hist)
	}
}

func TestReopenKeepsDataAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "famdash.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.SchemaVersion() != 2 {
		t.Errorf("schema version = %d, want 2", s.SchemaVersion())
	}
	if _, err := s.SeedIfEmpty(seed()); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	_ = s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if s.SchemaVersion() != 2 {
		t.Errorf("schema version after reopen = %d, want 2", s.SchemaVersion())
	}
	n, err := s.Count()
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v; want 2", n, err)
	}
}
