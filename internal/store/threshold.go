package store

import (
	"database/sql"
	"fmt"
)

// Threshold is one stored parameter override of a profile. Interval
// overrides set Min and/or Max, boolean overrides set Flag.
type Threshold struct {
	ParameterSet string   `json:"parameterSet"`
	Timespan     string   `json:"timespan"`
	Key          string   `json:"key"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Flag         *bool    `json:"flag,omitempty"`
}

// ThresholdRepository stores the overrides of profiles.
type ThresholdRepository struct {
	db *sql.DB
}

// Thresholds returns the threshold repository for this store.
func (s *Store) Thresholds() *ThresholdRepository {
	return &ThresholdRepository{db: s.db}
}

// Replace swaps all thresholds of a profile in one transaction.
func (r *ThresholdRepository) Replace(profileID string, thresholds []Threshold) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM profiles WHERE id = ?`, profileID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM thresholds WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("failed to clear thresholds: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO thresholds (profile_id, parameter_set, timespan, key, min, max, flag)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range thresholds {
		var flag sql.NullBool
		if t.Flag != nil {
			flag = sql.NullBool{Bool: *t.Flag, Valid: true}
		}
		if _, err := stmt.Exec(profileID, t.ParameterSet, t.Timespan, t.Key,
			nullFloat(t.Min), nullFloat(t.Max), flag); err != nil {
			return fmt.Errorf("failed to insert threshold %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListByProfile returns the thresholds of a profile in insertion order.
func (r *ThresholdRepository) ListByProfile(profileID string) ([]Threshold, error) {
	rows, err := r.db.Query(
		`SELECT parameter_set, timespan, key, min, max, flag
		 FROM thresholds WHERE profile_id = ? ORDER BY id`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	thresholds := make([]Threshold, 0)
	for rows.Next() {
		var t Threshold
		var lo, hi sql.NullFloat64
		var flag sql.NullBool
		if err := rows.Scan(&t.ParameterSet, &t.Timespan, &t.Key, &lo, &hi, &flag); err != nil {
			return nil, err
		}
		if lo.Valid {
			t.Min = &lo.Float64
		}
		if hi.Valid {
			t.Max = &hi.Float64
		}
		if flag.Valid {
			t.Flag = &flag.Bool
		}
		thresholds = append(thresholds, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return thresholds, nil
}

// DeleteByProfile removes every threshold of a profile.
func (r *ThresholdRepository) DeleteByProfile(profileID string) error {
	_, err := r.db.Exec(`DELETE FROM thresholds WHERE profile_id = ?`, profileID)
	return err
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
