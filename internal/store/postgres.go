package store

import "smartlist/internal/database"

// New wires every PostgreSQL-backed store over one connection pool.
func New(db *database.DB) *Stores {
	return &Stores{
		Users:         &pgUserStore{db: db},
		Profiles:      &pgProfileStore{db: db},
		Lists:         &pgListStore{db: db},
		Items:         &pgItemStore{db: db},
		Shares:        &pgShareStore{db: db},
		Notifications: &pgNotificationStore{db: db},
		Suggestions:   &pgSuggestionStore{db: db},
	}
}
