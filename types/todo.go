package types

import "time"

// TodoItem is a single to-do entry owned by a user.
type TodoItem struct {
	// ID is the unique identifier of the item, assigned by the store.
	ID int `json:"id" db:"id"`

	// Name is the item's label.
	Name string `json:"name" db:"name"`

	// DueDate is an optional "YYYY-MM-DD HH:MM:SS" string. Empty means no
	// due date was given.
	DueDate string `json:"due_date,omitempty" db:"due_date"`

	// OwnerID references the User that created the item.
	OwnerID int `json:"owner_id" db:"user_id"`

	// CreatedAt is the timestamp when the item was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
