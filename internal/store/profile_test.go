package store

import (
	"errors"
	"testing"
)

func TestProfileRepository_Create(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := &Profile{
		ID:      "profile-1",
		Name:    "doubletap-ish",
		Kind:    ProfileKindTap,
		Enabled: true,
	}

	if err := repo.Create(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps should be set after create")
	}

	got, err := repo.GetByID("profile-1")
	if err != nil {
		t.Fatalf("failed to get profile by ID: %v", err)
	}
	if got.Name != p.Name || got.Kind != p.Kind || got.Enabled != p.Enabled {
		t.Errorf("GetByID = %+v, want %+v", got, p)
	}

	byName, err := repo.GetByName("doubletap-ish")
	if err != nil {
		t.Fatalf("failed to get profile by name: %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("GetByName returned ID %q, want %q", byName.ID, p.ID)
	}
}

func TestProfileRepository_Create_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if err := repo.Create(&Profile{ID: "a", Name: "rotate", Kind: ProfileKindDual}); err != nil {
		t.Fatalf("failed to create first profile: %v", err)
	}
	if err := repo.Create(&Profile{ID: "b", Name: "rotate", Kind: ProfileKindDual}); err == nil {
		t.Error("creating profile with duplicate name should fail")
	}
}

func TestProfileRepository_Create_InvalidKind(t *testing.T) {
	s := newTestStore(t)

	if err := s.Profiles().Create(&Profile{ID: "a", Name: "x", Kind: "triple"}); err == nil {
		t.Error("unknown kind should violate the check constraint")
	}
}

func TestProfileRepository_ListEnabled(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	profiles := []*Profile{
		{ID: "1", Name: "tap-slow", Kind: ProfileKindTap, Enabled: true},
		{ID: "2", Name: "pan", Kind: ProfileKindSingle, Enabled: false},
		{ID: "3", Name: "rotate", Kind: ProfileKindDual, Enabled: true},
	}
	for _, p := range profiles {
		if err := repo.Create(p); err != nil {
			t.Fatalf("failed to create %q: %v", p.Name, err)
		}
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 profiles, got %d", len(all))
	}

	enabled, err := repo.ListEnabled()
	if err != nil {
		t.Fatalf("failed to list enabled: %v", err)
	}
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled profiles, got %d", len(enabled))
	}
	for _, p := range enabled {
		if p.Name == "pan" {
			t.Error("disabled profile should not be listed")
		}
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := &Profile{ID: "1", Name: "pan", Kind: ProfileKindSingle, Enabled: true}
	if err := repo.Create(p); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	p.Name = "drag"
	p.Enabled = false
	if err := repo.Update(p); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	got, err := repo.GetByID("1")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Name != "drag" || got.Enabled {
		t.Errorf("update not persisted: %+v", got)
	}

	missing := &Profile{ID: "nope", Name: "x", Kind: ProfileKindTap}
	if err := repo.Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if err := repo.Create(&Profile{ID: "1", Name: "pan", Kind: ProfileKindSingle}); err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if err := repo.Delete("1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := repo.GetByID("1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := repo.Delete("1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestProfileKind_Valid(t *testing.T) {
	for _, k := range []ProfileKind{ProfileKindTap, ProfileKindSingle, ProfileKindDual} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if ProfileKind("pinch").Valid() {
		t.Error("pinch should not be a valid kind")
	}
}
