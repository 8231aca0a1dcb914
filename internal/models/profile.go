package models

type UserProfile struct {
	ID                 int      `json:"id" db:"id"`
	UserID             int      `json:"user_id" db:"user_id"`
	Name               string   `json:"name" db:"name"`
	PhotoRef           *string  `json:"photo_ref,omitempty" db:"photo_ref"`
	DietaryPreferences []string `json:"dietary_preferences" db:"dietary_preferences"`
	Theme              string   `json:"theme" db:"theme"`
}

type UpsertProfileRequest struct {
	Name               string   `json:"name" validate:"required,min=1,max=255"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Theme              string   `json:"theme" validate:"required,oneof=light dark"`
	PhotoRef           *string  `json:"photo_ref,omitempty"`
}
