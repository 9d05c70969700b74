package store

import (
	"database/sql"
	"errors"
	"time"
)

// ProfileKind selects the recognizer a profile builds.
type ProfileKind string

const (
	// ProfileKindTap is a tap with custom thresholds.
	ProfileKindTap ProfileKind = "tap"
	// ProfileKindSingle is a one-pointer gesture with start, move and end events.
	ProfileKindSingle ProfileKind = "single"
	// ProfileKindDual is a two-pointer gesture with start, move and end events.
	ProfileKindDual ProfileKind = "dual"
)

// Valid reports whether k is a known kind.
func (k ProfileKind) Valid() bool {
	switch k {
	case ProfileKindTap, ProfileKindSingle, ProfileKindDual:
		return true
	}
	return false
}

// Profile is a named recognizer definition. Its name is also the event name
// the recognizer emits.
type Profile struct {
	ID        string
	Name      string
	Kind      ProfileKind
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

const profileColumns = `id, name, kind, enabled, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*Profile, error) {
	p := &Profile{}
	var kind string
	if err := row.Scan(&p.ID, &p.Name, &kind, &p.Enabled, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Kind = ProfileKind(kind)
	return p, nil
}

// Create inserts a new profile.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, kind, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Kind), p.Enabled, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	p, err := scanProfile(r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	p, err := scanProfile(r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// List retrieves all profiles, oldest first.
func (r *ProfileRepository) List() ([]*Profile, error) {
	return r.list(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, name`)
}

// ListEnabled retrieves the enabled profiles, oldest first.
func (r *ProfileRepository) ListEnabled() ([]*Profile, error) {
	return r.list(`SELECT ` + profileColumns + ` FROM profiles WHERE enabled = 1 ORDER BY created_at, name`)
}

func (r *ProfileRepository) list(query string) ([]*Profile, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing profile.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, kind = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, string(p.Kind), p.Enabled, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

// Delete removes a profile and, by cascade, its thresholds.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
