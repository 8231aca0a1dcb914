package models

import "time"

const (
	NotificationListShared   = "list_shared"
	NotificationItemAdded    = "item_added"
	NotificationListUpdated  = "list_updated"
	NotificationAISuggestion = "ai_suggestion"
)

type Notification struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Type          string    `json:"type" db:"type"`
	Title         string    `json:"title" db:"title"`
	Message       string    `json:"message" db:"message"`
	IsRead        bool      `json:"is_read" db:"is_read"`
	RelatedListID *int      `json:"related_list_id,omitempty" db:"related_list_id"`
	FromUserID    *int      `json:"from_user_id,omitempty" db:"from_user_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
