package models

import "time"

// SuggestionStat is the per-user per-item usage counter behind autocomplete
// ranking. Item names match exactly (case-sensitive).
type SuggestionStat struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	ItemName      string    `json:"item_name" db:"item_name"`
	Category      string    `json:"category" db:"category"`
	Frequency     int       `json:"frequency" db:"frequency"`
	LastSuggested time.Time `json:"last_suggested" db:"last_suggested"`
}

type ItemSuggestion struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Frequency int    `json:"frequency"`
}

type WeeklySuggestion struct {
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Category string `json:"category"`
}

type SmartListItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Category string `json:"category"`
}

type SmartList struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Items       []SmartListItem `json:"items"`
}

type GenerateSmartListRequest struct {
	Prompt             string   `json:"prompt" validate:"required,min=1"`
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
}

type CategorizeItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
