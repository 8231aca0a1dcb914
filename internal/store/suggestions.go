package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"smartlist/internal/database"
	"smartlist/internal/models"
)

type pgSuggestionStore struct {
	db *database.DB
}

func (s *pgSuggestionStore) IncrementStat(ctx context.Context, userID int, itemName, category string, now time.Time) error {
	// Exact-string match on item_name via the (user_id, item_name) unique
	// constraint; "Milk" and "milk" are distinct rows.
	_, err := s.db.Exec(ctx,
		`INSERT INTO ai_suggestions (user_id, item_name, category, frequency, last_suggested)
		 VALUES ($1, $2, $3, 1, $4)
		 ON CONFLICT (user_id, item_name) DO UPDATE SET
		   frequency = ai_suggestions.frequency + 1,
		   category = EXCLUDED.category,
		   last_suggested = EXCLUDED.last_suggested`,
		userID, itemName, category, now)
	return err
}

func (s *pgSuggestionStore) TopStats(ctx context.Context, userID, limit int) ([]models.SuggestionStat, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, item_name, category, frequency, last_suggested
		 FROM ai_suggestions
		 WHERE user_id = $1 AND frequency >= 1
		 ORDER BY frequency DESC, last_suggested DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.SuggestionStat
	for rows.Next() {
		var st models.SuggestionStat
		if err := rows.Scan(&st.ID, &st.UserID, &st.ItemName, &st.Category,
			&st.Frequency, &st.LastSuggested); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *pgSuggestionStore) FindStat(ctx context.Context, userID int, itemName string) (*models.SuggestionStat, error) {
	var st models.SuggestionStat
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, item_name, category, frequency, last_suggested
		 FROM ai_suggestions WHERE user_id = $1 AND item_name = $2`,
		userID, itemName).Scan(&st.ID, &st.UserID, &st.ItemName, &st.Category,
		&st.Frequency, &st.LastSuggested)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}
