// internal/models/listing.go
package models

// Listing is a single business record as stored in the directory.
// The engine never mutates listings; it only filters and orders them.
type Listing struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Classification string `json:"classification"` // primary business-type label, noisy
	Description    string `json:"description"`
	Capabilities   string `json:"capabilities"` // free text, may name roles the classification omits
	Categories     string `json:"categories"`
	Products       string `json:"products"`
	Certifications string `json:"certifications"`
	Address        string `json:"address"`
	HQAddress      string `json:"hqAddress,omitempty"`
	GSTNumber      string `json:"gstNumber,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Website        string `json:"website,omitempty"`
}

// SearchPage is one window of a ranked result set.
type SearchPage struct {
	Results []Listing `json:"results"`
	Total   int       `json:"total"`
	HasMore bool      `json:"hasMore"`
}
