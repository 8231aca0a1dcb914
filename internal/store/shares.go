package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartlist/internal/database"
	"smartlist/internal/models"
)

type pgShareStore struct {
	db *database.DB
}

const shareColumns = "id, list_id, shared_with, shared_by, access_level, invite_status, created_at"

func scanShare(row pgx.Row) (*models.ListShare, error) {
	var sh models.ListShare
	err := row.Scan(&sh.ID, &sh.ListID, &sh.SharedWith, &sh.SharedBy,
		&sh.AccessLevel, &sh.InviteStatus, &sh.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *pgShareStore) FindShare(ctx context.Context, listID, userID int) (*models.ListShare, error) {
	return scanShare(s.db.QueryRow(ctx,
		"SELECT "+shareColumns+" FROM list_shares WHERE list_id = $1 AND shared_with = $2",
		listID, userID))
}

func (s *pgShareStore) SharesForList(ctx context.Context, listID int) ([]models.ListShare, error) {
	rows, err := s.db.Query(ctx,
		`SELECT ls.id, ls.list_id, ls.shared_with, ls.shared_by, ls.access_level,
		 ls.invite_status, ls.created_at, u.username, u.email
		 FROM list_shares ls
		 JOIN users u ON ls.shared_with = u.id
		 WHERE ls.list_id = $1
		 ORDER BY ls.created_at DESC`,
		listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.ListShare
	for rows.Next() {
		var sh models.ListShare
		if err := rows.Scan(&sh.ID, &sh.ListID, &sh.SharedWith, &sh.SharedBy,
			&sh.AccessLevel, &sh.InviteStatus, &sh.CreatedAt, &sh.Username, &sh.Email); err != nil {
			return nil, err
		}
		shares = append(shares, sh)
	}
	return shares, rows.Err()
}

func (s *pgShareStore) AcceptedSharesForList(ctx context.Context, listID int) ([]models.ListShare, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+shareColumns+` FROM list_shares
		 WHERE list_id = $1 AND invite_status = 'accepted'`,
		listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.ListShare
	for rows.Next() {
		var sh models.ListShare
		if err := rows.Scan(&sh.ID, &sh.ListID, &sh.SharedWith, &sh.SharedBy,
			&sh.AccessLevel, &sh.InviteStatus, &sh.CreatedAt); err != nil {
			return nil, err
		}
		shares = append(shares, sh)
	}
	return shares, rows.Err()
}

func (s *pgShareStore) PendingSharesForUser(ctx context.Context, userID int) ([]models.ListShare, error) {
	rows, err := s.db.Query(ctx,
		`SELECT ls.id, ls.list_id, ls.shared_with, ls.shared_by, ls.access_level,
		 ls.invite_status, ls.created_at, sl.title, u.username, u.email
		 FROM list_shares ls
		 JOIN shopping_lists sl ON ls.list_id = sl.id
		 JOIN users u ON ls.shared_by = u.id
		 WHERE ls.shared_with = $1 AND ls.invite_status = 'pending'
		 ORDER BY ls.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.ListShare
	for rows.Next() {
		var sh models.ListShare
		if err := rows.Scan(&sh.ID, &sh.ListID, &sh.SharedWith, &sh.SharedBy,
			&sh.AccessLevel, &sh.InviteStatus, &sh.CreatedAt,
			&sh.ListTitle, &sh.SharedByName, &sh.SharedByEmail); err != nil {
			return nil, err
		}
		shares = append(shares, sh)
	}
	return shares, rows.Err()
}

func (s *pgShareStore) CreateShare(ctx context.Context, share *models.ListShare) (*models.ListShare, error) {
	return scanShare(s.db.QueryRow(ctx,
		`INSERT INTO list_shares (list_id, shared_with, shared_by, access_level, invite_status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+shareColumns,
		share.ListID, share.SharedWith, share.SharedBy, share.AccessLevel, share.InviteStatus))
}

func (s *pgShareStore) ResetShare(ctx context.Context, id int, accessLevel string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE list_shares SET access_level = $1, invite_status = 'pending' WHERE id = $2",
		accessLevel, id)
	return err
}

func (s *pgShareStore) SetShareStatus(ctx context.Context, id int, status string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE list_shares SET invite_status = $1 WHERE id = $2", status, id)
	return err
}

func (s *pgShareStore) DeleteShare(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx, "DELETE FROM list_shares WHERE id = $1", id)
	return err
}
