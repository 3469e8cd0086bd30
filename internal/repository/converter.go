package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/futig/app-builder/internal/entity"
	"github.com/google/uuid"
)

// appDocument is the JSONB shape of a stored app. It mirrors entity.AppDescription
// so that renaming Go fields never rewrites stored documents.
type appDocument struct {
	AppName     string   `json:"appName"`
	Entities    []string `json:"entities"`
	Roles       []string `json:"roles"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

func toDocument(app entity.AppDescription) ([]byte, error) {
	return json.Marshal(appDocument{
		AppName:     app.AppName,
		Entities:    app.Entities,
		Roles:       app.Roles,
		Features:    app.Features,
		Description: app.Description,
	})
}

func toEntityRecord(id uuid.UUID, document []byte, createdAt time.Time) (*entity.SavedRecord, error) {
	var doc appDocument
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("decode app %s: %w", id, err)
	}

	return &entity.SavedRecord{
		ID: id.String(),
		AppDescription: entity.AppDescription{
			AppName:     doc.AppName,
			Entities:    nonNil(doc.Entities),
			Roles:       nonNil(doc.Roles),
			Features:    nonNil(doc.Features),
			Description: doc.Description,
		},
		CreatedAt: createdAt,
	}, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
