package models

import "time"

type ShoppingList struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Category    *string   `json:"category,omitempty" db:"category"`
	Color       *string   `json:"color,omitempty" db:"color"`
	OwnerID     int       `json:"owner_id" db:"owner_id"`
	IsTemplate  bool      `json:"is_template" db:"is_template"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields
	AccessLevel string `json:"access_level,omitempty"`
	IsShared    bool   `json:"is_shared"`
}

type ListItem struct {
	ID          int       `json:"id" db:"id"`
	ListID      int       `json:"list_id" db:"list_id"`
	Name        string    `json:"name" db:"name"`
	Quantity    *string   `json:"quantity,omitempty" db:"quantity"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	Category    *string   `json:"category,omitempty" db:"category"`
	IsCompleted bool      `json:"is_completed" db:"is_completed"`
	AddedBy     int       `json:"added_by" db:"added_by"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateListRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// ListPatch carries a partial list update. Nil fields are left untouched.
type ListPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (p ListPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Color == nil
}

type CreateItemRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Quantity *string `json:"quantity,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Category *string `json:"category,omitempty"`
}

// ItemPatch carries a partial item update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Quantity    *string `json:"quantity,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Notes == nil &&
		p.Category == nil && p.IsCompleted == nil
}

type ItemPosition struct {
	ItemID   int `json:"item_id" validate:"required"`
	Position int `json:"position"`
}

type ReorderItemsRequest struct {
	Items []ItemPosition `json:"items" validate:"required,min=1,dive"`
}
