// internal/workers/directory/parse-search-query/models.go
package parsesearchquery

import "supplier-search/internal/models"

type Input struct {
	RawQuery string `json:"rawQuery"`
}

type Output struct {
	ParsedQuery *models.ParsedQuery `json:"parsedQuery"`
}
