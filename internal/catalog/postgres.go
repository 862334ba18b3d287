// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gastro-triage/internal/common/logger"
)

// PostgresSource loads the catalog from the seeded reference tables. The
// tables are written by the administrative seeding path only; this source
// never mutates them.
type PostgresSource struct {
	db     *sql.DB
	logger logger.Logger
}

// NewPostgresSource wires a catalog source over an existing connection pool.
func NewPostgresSource(db *sql.DB, log logger.Logger) *PostgresSource {
	return &PostgresSource{db: db, logger: log}
}

// Load reads symptoms, diseases and relations and builds a snapshot.
func (p *PostgresSource) Load(ctx context.Context) (*Snapshot, error) {
	symptoms, err := p.loadSymptoms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load symptoms: %w", err)
	}

	diseases, err := p.loadDiseases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load diseases: %w", err)
	}

	relations, err := p.loadRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load relations: %w", err)
	}

	return Build(symptoms, diseases, relations, p.logger)
}

func (p *PostgresSource) loadSymptoms(ctx context.Context) ([]Symptom, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, keywords, is_emergency_symptom, severity
		FROM symptoms
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Symptom
	for rows.Next() {
		var s Symptom
		var keywords []byte
		if err := rows.Scan(&s.ID, &s.Name, &keywords, &s.Emergency, &s.Severity); err != nil {
			return nil, err
		}
		if len(keywords) > 0 {
			if err := json.Unmarshal(keywords, &s.Keywords); err != nil {
				s.Keywords = nil
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *PostgresSource) loadDiseases(ctx context.Context) ([]Disease, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, category, severity_level
		FROM diseases
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Disease
	for rows.Next() {
		var d Disease
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.Severity); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresSource) loadRelations(ctx context.Context) ([]Relation, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT disease_id, symptom_id, weight, probability, severity
		FROM disease_symptoms
		ORDER BY disease_id, symptom_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Relation
	for rows.Next() {
		var r Relation
		if err := rows.Scan(&r.DiseaseID, &r.SymptomID, &r.Weight, &r.Probability, &r.Severity); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
