package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"smartlist/internal/database"
	"smartlist/internal/models"
)

type pgItemStore struct {
	db *database.DB
}

const itemColumns = "id, list_id, name, quantity, notes, category, is_completed, added_by, position, created_at"

func scanItem(row pgx.Row) (*models.ListItem, error) {
	var it models.ListItem
	err := row.Scan(&it.ID, &it.ListID, &it.Name, &it.Quantity, &it.Notes,
		&it.Category, &it.IsCompleted, &it.AddedBy, &it.Position, &it.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *pgItemStore) CreateItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error) {
	return scanItem(s.db.QueryRow(ctx,
		`INSERT INTO list_items (list_id, name, quantity, notes, category, is_completed, added_by, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+itemColumns,
		item.ListID, item.Name, item.Quantity, item.Notes, item.Category,
		item.IsCompleted, item.AddedBy, item.Position))
}

func (s *pgItemStore) GetItem(ctx context.Context, id int) (*models.ListItem, error) {
	return scanItem(s.db.QueryRow(ctx,
		"SELECT "+itemColumns+" FROM list_items WHERE id = $1", id))
}

func (s *pgItemStore) ItemsForList(ctx context.Context, listID int) ([]models.ListItem, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+itemColumns+" FROM list_items WHERE list_id = $1 ORDER BY position, id",
		listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ListItem
	for rows.Next() {
		var it models.ListItem
		if err := rows.Scan(&it.ID, &it.ListID, &it.Name, &it.Quantity, &it.Notes,
			&it.Category, &it.IsCompleted, &it.AddedBy, &it.Position, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *pgItemStore) MaxPosition(ctx context.Context, listID int) (int, bool, error) {
	var max *int
	err := s.db.QueryRow(ctx,
		"SELECT MAX(position) FROM list_items WHERE list_id = $1", listID).Scan(&max)
	if err != nil {
		return 0, false, err
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (s *pgItemStore) UpdateItem(ctx context.Context, id int, patch models.ItemPatch) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if patch.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *patch.Name)
		argCount++
	}
	if patch.Quantity != nil {
		updates = append(updates, fmt.Sprintf("quantity = $%d", argCount))
		args = append(args, *patch.Quantity)
		argCount++
	}
	if patch.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argCount))
		args = append(args, *patch.Notes)
		argCount++
	}
	if patch.Category != nil {
		updates = append(updates, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *patch.Category)
		argCount++
	}
	if patch.IsCompleted != nil {
		updates = append(updates, fmt.Sprintf("is_completed = $%d", argCount))
		args = append(args, *patch.IsCompleted)
		argCount++
	}

	if len(updates) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE list_items SET %s WHERE id = $%d",
		strings.Join(updates, ", "), argCount)

	_, err := s.db.Exec(ctx, query, args...)
	return err
}

func (s *pgItemStore) DeleteItem(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx, "DELETE FROM list_items WHERE id = $1", id)
	return err
}

func (s *pgItemStore) SetPosition(ctx context.Context, itemID, position int) error {
	_, err := s.db.Exec(ctx,
		"UPDATE list_items SET position = $1 WHERE id = $2", position, itemID)
	return err
}
