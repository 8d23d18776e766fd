package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"

	"propsearch/pkg/platform/sentinel"
)

// PostgresStore persists listings in the properties table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore constructs a PostgreSQL-backed listing store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const propertyColumns = `id, title, location_name, lng, lat, bucket_cell_id, price, bedrooms, bathrooms, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *Property) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO properties (id, title, location_name, lng, lat, bucket_cell_id, price, bedrooms, bathrooms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Title, p.LocationName, p.Location[0], p.Location[1],
		p.BucketCellID, p.Price, p.Bedrooms, p.Bathrooms,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	p, err := scanProperty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *Property) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE properties
		SET title = $2, location_name = $3, lng = $4, lat = $5,
		    bucket_cell_id = $6, price = $7, bedrooms = $8, bathrooms = $9,
		    updated_at = now()
		WHERE id = $1`,
		p.ID, p.Title, p.LocationName, p.Location[0], p.Location[1],
		p.BucketCellID, p.Price, p.Bedrooms, p.Bathrooms,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]*Property, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var out []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListByBuckets(ctx context.Context, cellIDs []string, limit int) ([]*Property, error) {
	if len(cellIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE bucket_cell_id = ANY($1::text[])
		ORDER BY created_at DESC
		LIMIT $2`,
		cellIDs, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list properties by buckets: %w", err)
	}
	defer rows.Close()

	var out []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return out, nil
}

func scanProperty(row pgx.Row) (*Property, error) {
	p := &Property{}
	var lng, lat float64
	if err := row.Scan(
		&p.ID, &p.Title, &p.LocationName, &lng, &lat,
		&p.BucketCellID, &p.Price, &p.Bedrooms, &p.Bathrooms,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Location = orb.Point{lng, lat}
	return p, nil
}
