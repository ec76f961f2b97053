package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/renthing/pkg/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

const listingColumns = `id, owner_id, title, description, category, location, price_per_day, currency, rating, review_count, is_available, created_at, updated_at`

func (s *PostgresStore) Search(ctx context.Context, query string, filters SearchFilters) ([]models.Listing, error) {
	var (
		conds []string
		args  []interface{}
	)
	conds = append(conds, "is_available = true")

	if q := strings.TrimSpace(query); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		conds = append(conds, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}
	if filters.Location != "" {
		args = append(args, "%"+filters.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filters.MinPrice > 0 {
		args = append(args, filters.MinPrice)
		conds = append(conds, fmt.Sprintf("price_per_day >= $%d", len(args)))
	}
	if filters.MaxPrice > 0 {
		args = append(args, filters.MaxPrice)
		conds = append(conds, fmt.Sprintf("price_per_day <= $%d", len(args)))
	}

	stmt := fmt.Sprintf(`
        SELECT %s FROM listings
        WHERE %s
        ORDER BY rating DESC, review_count DESC
        LIMIT %d
    `, listingColumns, strings.Join(conds, " AND "), maxSearchResults)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	// Always return a non-nil slice so JSON encodes as [] instead of null
	out := make([]models.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
        SELECT %s FROM listings WHERE id = $1
    `, listingColumns), id)
	return scanListing(row)
}

func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("listing exists check: %w", err)
	}
	return exists, nil
}

func scanListing(scanner interface{ Scan(dest ...any) error }) (*models.Listing, error) {
	var l models.Listing
	if err := scanner.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Location,
		&l.PricePerDay, &l.Currency, &l.Rating, &l.ReviewCount, &l.IsAvailable,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}
