package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/clients/postgres"
	apperrors "github.com/athul0622-dotcom/local-service/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
)

const (
	providersTable = "service_providers"
	reviewsTable   = "provider_reviews"
)

// Schema creates the catalog tables if they do not exist
const Schema = `
CREATE TABLE IF NOT EXISTS service_providers (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	profession       TEXT NOT NULL,
	location         TEXT NOT NULL,
	phone            TEXT NOT NULL,
	email            TEXT,
	rating           DOUBLE PRECISION NOT NULL CHECK (rating >= 0 AND rating <= 5),
	skills           TEXT[] NOT NULL DEFAULT '{}',
	availability     TEXT NOT NULL DEFAULT '',
	photo_url        TEXT,
	description      TEXT NOT NULL DEFAULT '',
	experience_years INTEGER NOT NULL DEFAULT 0,
	position         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS provider_reviews (
	id            TEXT PRIMARY KEY,
	provider_id   TEXT NOT NULL REFERENCES service_providers(id),
	customer_name TEXT NOT NULL,
	rating        INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
	comment       TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL,
	position      INTEGER NOT NULL
);
`

// PostgresSource reads the catalog from PostgreSQL. It never writes at
// request time; Seed exists for the seed command.
type PostgresSource struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.CatalogSource = (*PostgresSource)(nil)

// NewPostgresSource creates a catalog source backed by client
func NewPostgresSource(client *postgres.Client) *PostgresSource {
	return &PostgresSource{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LoadProviders selects every provider in catalog order
func (s *PostgresSource) LoadProviders(ctx context.Context) ([]*entities.Provider, error) {
	query, args, err := s.db.From(providersTable).
		Select(
			"id", "name", "profession", "location", "phone", "email",
			"rating", "skills", "availability", "photo_url", "description",
			"experience_years",
		).
		Order(goqu.I("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build providers query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to query providers", err)
	}
	defer rows.Close()

	providers := make([]*entities.Provider, 0)
	for rows.Next() {
		var (
			p        entities.Provider
			email    sql.NullString
			photoURL sql.NullString
			skills   pq.StringArray
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Profession, &p.Location, &p.Phone, &email,
			&p.Rating, &skills, &p.Availability, &photoURL, &p.Description,
			&p.ExperienceYears,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		if email.Valid {
			p.Email = &email.String
		}
		if photoURL.Valid {
			p.PhotoURL = &photoURL.String
		}
		p.Skills = []string(skills)
		if p.Skills == nil {
			p.Skills = []string{}
		}
		providers = append(providers, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to read providers", err)
	}

	return providers, nil
}

// LoadReviews selects every seed review in ingestion order
func (s *PostgresSource) LoadReviews(ctx context.Context) ([]*entities.Review, error) {
	query, args, err := s.db.From(reviewsTable).
		Select("id", "provider_id", "customer_name", "rating", "comment", "created_at").
		Order(goqu.I("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reviews query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to query reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.Review, 0)
	for rows.Next() {
		var r entities.Review
		if err := rows.Scan(&r.ID, &r.ProviderID, &r.CustomerName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to read reviews", err)
	}

	return reviews, nil
}

// Seed creates the catalog tables and inserts providers and reviews. Each
// row's position is its slice index so loads return catalog order. Rows
// whose id already exists are left untouched.
func (s *PostgresSource) Seed(ctx context.Context, providers []*entities.Provider, reviews []*entities.Review) error {
	if _, err := s.client.DB().ExecContext(ctx, Schema); err != nil {
		return apperrors.NewExternalError("failed to create catalog schema", err)
	}

	if len(providers) > 0 {
		rows := make([]interface{}, 0, len(providers))
		for i, p := range providers {
			rows = append(rows, goqu.Record{
				"id":               p.ID,
				"name":             p.Name,
				"profession":       p.Profession,
				"location":         p.Location,
				"phone":            p.Phone,
				"email":            nullString(p.Email),
				"rating":           p.Rating,
				"skills":           pq.StringArray(p.Skills),
				"availability":     p.Availability,
				"photo_url":        nullString(p.PhotoURL),
				"description":      p.Description,
				"experience_years": p.ExperienceYears,
				"position":         i,
			})
		}
		if err := s.insert(ctx, providersTable, rows); err != nil {
			return err
		}
	}

	if len(reviews) > 0 {
		rows := make([]interface{}, 0, len(reviews))
		for i, r := range reviews {
			createdAt := r.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now().UTC()
			}
			rows = append(rows, goqu.Record{
				"id":            r.ID,
				"provider_id":   r.ProviderID,
				"customer_name": r.CustomerName,
				"rating":        r.Rating,
				"comment":       r.Comment,
				"created_at":    createdAt,
				"position":      i,
			})
		}
		if err := s.insert(ctx, reviewsTable, rows); err != nil {
			return err
		}
	}

	return nil
}

func (s *PostgresSource) insert(ctx context.Context, table string, rows []interface{}) error {
	query, args, err := s.db.Insert(table).
		Prepared(true).
		Rows(rows...).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to build %s insert", table), err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("failed to insert into %s", table), err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
