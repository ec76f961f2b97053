package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/renthing/internal/assistant"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

// GetUserContext reads the stated preferences row and derives the
// inferred preferences from completed bookings.
func (s *PostgresStore) GetUserContext(ctx context.Context, userID string) (assistant.StatedPreferences, assistant.InferredPreferences, error) {
	var stated assistant.StatedPreferences
	var inferred assistant.InferredPreferences

	var categories []string
	err := s.db.QueryRowContext(ctx, `
        SELECT coalesce(language, ''), coalesce(currency, ''), coalesce(categories, '{}')
        FROM user_preferences WHERE user_id = $1
    `, userID).Scan(&stated.Language, &stated.Currency, pq.Array(&categories))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stated, inferred, fmt.Errorf("load stated preferences: %w", err)
	}
	stated.Categories = categories

	rows, err := s.db.QueryContext(ctx, `
        SELECT l.category, l.location, l.price_per_day
        FROM bookings b
        JOIN listings l ON l.id = b.listing_id
        WHERE b.renter_id = $1 AND b.status IN ('confirmed', 'completed')
        ORDER BY b.created_at DESC
        LIMIT 50
    `, userID)
	if err != nil {
		return stated, inferred, fmt.Errorf("load booking history: %w", err)
	}
	defer rows.Close()

	categoryCounts := make(map[string]int)
	locationCounts := make(map[string]int)
	var prices []float64
	for rows.Next() {
		var category, location string
		var price float64
		if err := rows.Scan(&category, &location, &price); err != nil {
			return stated, inferred, err
		}
		categoryCounts[category]++
		locationCounts[location]++
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return stated, inferred, err
	}

	inferred.PreferredCategories = topKeys(categoryCounts, 3)
	inferred.PreferredLocations = topKeys(locationCounts, 3)
	inferred.BookingPatterns = categoryCounts
	if len(prices) > 0 {
		inferred.PreferredPriceRange = priceRange(prices)
	}
	return stated, inferred, nil
}

func topKeys(counts map[string]int, n int) []string {
	remaining := make(map[string]int, len(counts))
	for k, c := range counts {
		remaining[k] = c
	}
	out := make([]string, 0, n)
	for len(out) < n {
		best, bestCount := "", 0
		for k, c := range remaining {
			if c > bestCount {
				best, bestCount = k, c
			}
		}
		if best == "" {
			break
		}
		out = append(out, best)
		delete(remaining, best)
	}
	return out
}

func priceRange(prices []float64) *assistant.PriceRange {
	pr := &assistant.PriceRange{Min: prices[0], Max: prices[0]}
	var sum float64
	for _, p := range prices {
		if p < pr.Min {
			pr.Min = p
		}
		if p > pr.Max {
			pr.Max = p
		}
		sum += p
	}
	pr.Avg = sum / float64(len(prices))
	return pr
}
