// internal/workers/directory/execute-search/models.go
package executesearch

import "supplier-search/internal/models"

type Input struct {
	Query          string   `json:"query"`
	EntityTypes    []string `json:"entityTypes,omitempty"`
	Locations      []string `json:"locations,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	VerifiedOnly   bool     `json:"verifiedOnly,omitempty"`
	Offset         int      `json:"offset"`
	Limit          int      `json:"limit"`
}

type Output struct {
	Results []models.Listing `json:"results"`
	Total   int              `json:"total"`
	HasMore bool             `json:"hasMore"`
}
