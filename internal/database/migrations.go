package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		photo_ref VARCHAR(64),
		dietary_preferences TEXT[] NOT NULL DEFAULT '{}',
		theme VARCHAR(10) NOT NULL DEFAULT 'light' CHECK (theme IN ('light', 'dark'))
	)`,

	`CREATE TABLE IF NOT EXISTS shopping_lists (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		category VARCHAR(100),
		color VARCHAR(30),
		owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		is_template BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shopping_lists_owner_id ON shopping_lists(owner_id)`,

	`CREATE TABLE IF NOT EXISTS list_items (
		id SERIAL PRIMARY KEY,
		list_id INTEGER NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		quantity VARCHAR(100),
		notes TEXT,
		category VARCHAR(100),
		is_completed BOOLEAN NOT NULL DEFAULT false,
		added_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_list_items_list_id ON list_items(list_id)`,
	`CREATE INDEX IF NOT EXISTS idx_list_items_list_position ON list_items(list_id, position)`,

	`CREATE TABLE IF NOT EXISTS list_shares (
		id SERIAL PRIMARY KEY,
		list_id INTEGER NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
		shared_with INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		shared_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		access_level VARCHAR(10) NOT NULL DEFAULT 'view' CHECK (access_level IN ('view', 'edit', 'admin')),
		invite_status VARCHAR(10) NOT NULL DEFAULT 'pending' CHECK (invite_status IN ('pending', 'accepted', 'declined')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(list_id, shared_with)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_list_shares_list_id ON list_shares(list_id)`,
	`CREATE INDEX IF NOT EXISTS idx_list_shares_shared_with ON list_shares(shared_with)`,
	`CREATE INDEX IF NOT EXISTS idx_list_shares_status ON list_shares(invite_status)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL CHECK (type IN ('list_shared', 'item_added', 'list_updated', 'ai_suggestion')),
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT false,
		related_list_id INTEGER REFERENCES shopping_lists(id) ON DELETE SET NULL,
		from_user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id, is_read)`,

	`CREATE TABLE IF NOT EXISTS ai_suggestions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item_name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		frequency INTEGER NOT NULL DEFAULT 1,
		last_suggested TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, item_name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ai_suggestions_user_frequency ON ai_suggestions(user_id, frequency DESC)`,
}

func Migrate(db *DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(context.Background(), stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
