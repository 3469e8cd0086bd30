package entity

import "time"

// MaxListItems caps entities, roles and features of an extracted description.
const MaxListItems = 5

// AppDescription is the structured result of requirement extraction.
type AppDescription struct {
	AppName     string   `json:"appName"`
	Entities    []string `json:"entities"`
	Roles       []string `json:"roles"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

// SavedRecord is an AppDescription owned by the record store.
type SavedRecord struct {
	ID string `json:"id"`
	AppDescription
	CreatedAt time.Time `json:"createdAt"`
}
