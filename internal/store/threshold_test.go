package store

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func createProfile(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.Profiles().Create(&Profile{ID: id, Name: "p-" + id, Kind: ProfileKindTap, Enabled: true}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
}

func TestThresholdRepository_ReplaceAndList(t *testing.T) {
	s := newTestStore(t)
	createProfile(t, s, "p1")
	repo := s.Thresholds()

	first := []Threshold{
		{ParameterSet: "initial", Timespan: "global", Key: "duration", Max: ptr(300.0)},
		{ParameterSet: "initial", Timespan: "live", Key: "isMoving", Flag: ptr(false)},
	}
	if err := repo.Replace("p1", first); err != nil {
		t.Fatalf("failed to replace: %v", err)
	}

	got, err := repo.ListByProfile("p1")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 thresholds, got %d", len(got))
	}
	if got[0].Key != "duration" || got[0].Max == nil || *got[0].Max != 300 || got[0].Min != nil {
		t.Errorf("unexpected first threshold: %+v", got[0])
	}
	if got[1].Flag == nil || *got[1].Flag {
		t.Errorf("flag should round-trip as false: %+v", got[1])
	}

	second := []Threshold{
		{ParameterSet: "active", Timespan: "global", Key: "distance", Min: ptr(1.0), Max: ptr(2.0)},
	}
	if err := repo.Replace("p1", second); err != nil {
		t.Fatalf("failed to replace again: %v", err)
	}
	got, _ = repo.ListByProfile("p1")
	if len(got) != 1 || got[0].ParameterSet != "active" {
		t.Errorf("replace should drop previous rows, got %+v", got)
	}
}

func TestThresholdRepository_ReplaceIsAtomic(t *testing.T) {
	s := newTestStore(t)
	createProfile(t, s, "p1")
	repo := s.Thresholds()

	keep := []Threshold{{ParameterSet: "initial", Timespan: "global", Key: "duration", Max: ptr(10.0)}}
	if err := repo.Replace("p1", keep); err != nil {
		t.Fatalf("failed to replace: %v", err)
	}

	bad := []Threshold{
		{ParameterSet: "initial", Timespan: "global", Key: "distance", Max: ptr(5.0)},
		{ParameterSet: "initial", Timespan: "sometime", Key: "distance", Max: ptr(5.0)},
	}
	if err := repo.Replace("p1", bad); err == nil {
		t.Fatal("invalid timespan should fail the check constraint")
	}

	got, _ := repo.ListByProfile("p1")
	if len(got) != 1 || got[0].Key != "duration" {
		t.Errorf("failed replace should leave previous rows, got %+v", got)
	}
}

func TestThresholdRepository_UnknownProfile(t *testing.T) {
	s := newTestStore(t)

	err := s.Thresholds().Replace("missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	got, err := s.Thresholds().ListByProfile("missing")
	if err != nil || len(got) != 0 {
		t.Errorf("expected empty list, got %v, %v", got, err)
	}
}

func TestThresholdRepository_CascadeDelete(t *testing.T) {
	s := newTestStore(t)
	createProfile(t, s, "p1")

	ths := []Threshold{{ParameterSet: "initial", Timespan: "global", Key: "duration", Max: ptr(10.0)}}
	if err := s.Thresholds().Replace("p1", ths); err != nil {
		t.Fatalf("failed to replace: %v", err)
	}
	if err := s.Profiles().Delete("p1"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM thresholds`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("thresholds should be removed with their profile, %d left", count)
	}
}

func TestThresholdRepository_DeleteByProfile(t *testing.T) {
	s := newTestStore(t)
	createProfile(t, s, "p1")

	ths := []Threshold{{ParameterSet: "initial", Timespan: "global", Key: "duration", Max: ptr(10.0)}}
	if err := s.Thresholds().Replace("p1", ths); err != nil {
		t.Fatalf("failed to replace: %v", err)
	}
	if err := s.Thresholds().DeleteByProfile("p1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	got, _ := s.Thresholds().ListByProfile("p1")
	if len(got) != 0 {
		t.Errorf("expected no thresholds, got %d", len(got))
	}
}
