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

type pgListStore struct {
	db *database.DB
}

const listColumns = "id, title, description, category, color, owner_id, is_template, created_at, updated_at"

func scanList(row pgx.Row) (*models.ShoppingList, error) {
	var l models.ShoppingList
	err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Category, &l.Color,
		&l.OwnerID, &l.IsTemplate, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *pgListStore) CreateList(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	return scanList(s.db.QueryRow(ctx,
		`INSERT INTO shopping_lists (title, description, category, color, owner_id, is_template)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+listColumns,
		list.Title, list.Description, list.Category, list.Color, list.OwnerID, list.IsTemplate))
}

func (s *pgListStore) GetList(ctx context.Context, id int) (*models.ShoppingList, error) {
	return scanList(s.db.QueryRow(ctx,
		"SELECT "+listColumns+" FROM shopping_lists WHERE id = $1", id))
}

func (s *pgListStore) UpdateList(ctx context.Context, id int, patch models.ListPatch) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if patch.Title != nil {
		updates = append(updates, fmt.Sprintf("title = $%d", argCount))
		args = append(args, *patch.Title)
		argCount++
	}
	if patch.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *patch.Description)
		argCount++
	}
	if patch.Category != nil {
		updates = append(updates, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *patch.Category)
		argCount++
	}
	if patch.Color != nil {
		updates = append(updates, fmt.Sprintf("color = $%d", argCount))
		args = append(args, *patch.Color)
		argCount++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE shopping_lists SET %s WHERE id = $%d",
		strings.Join(updates, ", "), argCount)

	_, err := s.db.Exec(ctx, query, args...)
	return err
}

func (s *pgListStore) DeleteList(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx, "DELETE FROM shopping_lists WHERE id = $1", id)
	return err
}

func (s *pgListStore) ListsOwnedBy(ctx context.Context, userID int) ([]models.ShoppingList, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+listColumns+" FROM shopping_lists WHERE owner_id = $1 ORDER BY updated_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLists(rows)
}

func (s *pgListStore) ListsSharedWith(ctx context.Context, userID int) ([]models.ShoppingList, error) {
	rows, err := s.db.Query(ctx,
		`SELECT sl.id, sl.title, sl.description, sl.category, sl.color,
		 sl.owner_id, sl.is_template, sl.created_at, sl.updated_at, ls.access_level
		 FROM shopping_lists sl
		 JOIN list_shares ls ON sl.id = ls.list_id
		 WHERE ls.shared_with = $1 AND ls.invite_status = 'accepted'
		 ORDER BY sl.updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.ShoppingList
	for rows.Next() {
		var l models.ShoppingList
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Category, &l.Color,
			&l.OwnerID, &l.IsTemplate, &l.CreatedAt, &l.UpdatedAt, &l.AccessLevel); err != nil {
			return nil, err
		}
		l.IsShared = true
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func collectLists(rows pgx.Rows) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	for rows.Next() {
		var l models.ShoppingList
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Category, &l.Color,
			&l.OwnerID, &l.IsTemplate, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}
