// internal/workers/directory/classify-chat-intent/models.go
package classifychatintent

import "supplier-search/internal/models"

type Input struct {
	Message string `json:"message"`
}

type Output struct {
	ShouldSearch bool                `json:"shouldSearch"`
	EntityTypes  []models.EntityType `json:"entityTypes,omitempty"`
}
