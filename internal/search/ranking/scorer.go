// internal/search/ranking/scorer.go
// Package ranking orders matched listings by a fixed-weight relevance score.
// The score is transient: it exists to establish order and is discarded
// before results leave the engine.
package ranking

import (
	"sort"
	"strings"

	"supplier-search/internal/models"
	"supplier-search/internal/search/lexicon"
)

const (
	keywordFieldWeight = 5
	primaryTypeBonus   = 10 // classification equals a mapped literal
	secondaryTypeBonus = 5  // capabilities merely contains a mapped term
)

type scoredListing struct {
	listing models.Listing
	score   int
}

// Rank reorders listings by descending relevance. Records with equal scores
// fall back to case-insensitive name order so repeated calls with identical
// inputs always agree. The input slice is not modified.
func Rank(listings []models.Listing, keywords []string, targets []models.EntityType) []models.Listing {
	scored := make([]scoredListing, len(listings))
	for i, l := range listings {
		scored[i] = scoredListing{listing: l, score: Score(l, keywords, targets)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return strings.ToLower(scored[i].listing.Name) < strings.ToLower(scored[j].listing.Name)
	})

	out := make([]models.Listing, len(scored))
	for i, s := range scored {
		out[i] = s.listing
	}
	return out
}

// Score computes the relevance score for one listing. Each keyword is checked
// against each text field independently, so a keyword present in two fields
// counts twice. The entity-type bonus is evaluated once per record and the
// primary and capability cases are mutually exclusive; a capability match is
// worth the flat secondary bonus no matter how many mapped terms hit.
func Score(l models.Listing, keywords []string, targets []models.EntityType) int {
	score := 0

	fields := []string{l.Name, l.Categories, l.Products, l.Description, l.Capabilities}
	for _, kw := range keywords {
		needle := strings.ToLower(kw)
		for _, f := range fields {
			if needle != "" && strings.Contains(strings.ToLower(f), needle) {
				score += keywordFieldWeight
			}
		}
	}

	if len(targets) > 0 {
		if matchesPrimary(l, targets) {
			score += primaryTypeBonus
		} else if matchesSecondary(l, targets) {
			score += secondaryTypeBonus
		}
	}

	return score
}

func matchesPrimary(l models.Listing, targets []models.EntityType) bool {
	classification := strings.TrimSpace(l.Classification)
	for _, t := range targets {
		m, ok := lexicon.MappingFor(t)
		if !ok {
			continue
		}
		for _, lit := range m.Primary {
			if strings.EqualFold(classification, lit) {
				return true
			}
		}
	}
	return false
}

func matchesSecondary(l models.Listing, targets []models.EntityType) bool {
	capabilities := strings.ToLower(l.Capabilities)
	if capabilities == "" {
		return false
	}
	for _, t := range targets {
		m, ok := lexicon.MappingFor(t)
		if !ok {
			continue
		}
		for _, term := range m.Secondary {
			if strings.Contains(capabilities, term) {
				return true
			}
		}
	}
	return false
}
