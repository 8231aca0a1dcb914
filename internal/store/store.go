// Package store defines the persistence interfaces the services operate on
// and their PostgreSQL implementations. Absent rows are reported as nil
// results with a nil error unless noted otherwise.
package store

import (
	"context"
	"time"

	"smartlist/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByLogin(ctx context.Context, emailOrUsername string) (*models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
}

type ListStore interface {
	CreateList(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error)
	GetList(ctx context.Context, id int) (*models.ShoppingList, error)
	UpdateList(ctx context.Context, id int, patch models.ListPatch) error
	// DeleteList removes the list; items and shares cascade with it.
	DeleteList(ctx context.Context, id int) error
	ListsOwnedBy(ctx context.Context, userID int) ([]models.ShoppingList, error)
	// ListsSharedWith returns lists with an accepted share for the user,
	// each carrying the share's access level.
	ListsSharedWith(ctx context.Context, userID int) ([]models.ShoppingList, error)
}

type ItemStore interface {
	CreateItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error)
	GetItem(ctx context.Context, id int) (*models.ListItem, error)
	ItemsForList(ctx context.Context, listID int) ([]models.ListItem, error)
	// MaxPosition returns the highest position in the list and whether the
	// list has any items at all.
	MaxPosition(ctx context.Context, listID int) (int, bool, error)
	UpdateItem(ctx context.Context, id int, patch models.ItemPatch) error
	DeleteItem(ctx context.Context, id int) error
	SetPosition(ctx context.Context, itemID, position int) error
}

type ShareStore interface {
	FindShare(ctx context.Context, listID, userID int) (*models.ListShare, error)
	SharesForList(ctx context.Context, listID int) ([]models.ListShare, error)
	AcceptedSharesForList(ctx context.Context, listID int) ([]models.ListShare, error)
	PendingSharesForUser(ctx context.Context, userID int) ([]models.ListShare, error)
	CreateShare(ctx context.Context, share *models.ListShare) (*models.ListShare, error)
	// ResetShare overwrites the access level and puts the share back to
	// pending (re-invitation semantics).
	ResetShare(ctx context.Context, id int, accessLevel string) error
	SetShareStatus(ctx context.Context, id int, status string) error
	DeleteShare(ctx context.Context, id int) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error)
	GetNotification(ctx context.Context, id int) (*models.Notification, error)
	NotificationsForUser(ctx context.Context, userID, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context, userID int) error
}

type SuggestionStore interface {
	// IncrementStat upserts the (user, itemName) counter: existing rows get
	// frequency+1 and a refreshed category/timestamp, otherwise a new row
	// with frequency 1 is inserted. Matching is exact-string.
	IncrementStat(ctx context.Context, userID int, itemName, category string, now time.Time) error
	// TopStats returns up to limit stats ranked by descending frequency.
	TopStats(ctx context.Context, userID, limit int) ([]models.SuggestionStat, error)
	FindStat(ctx context.Context, userID int, itemName string) (*models.SuggestionStat, error)
}

// Stores bundles every repository backed by one database.
type Stores struct {
	Users         UserStore
	Profiles      ProfileStore
	Lists         ListStore
	Items         ItemStore
	Shares        ShareStore
	Notifications NotificationStore
	Suggestions   SuggestionStore
}
