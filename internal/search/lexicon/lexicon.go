// internal/search/lexicon/lexicon.go
// Package lexicon holds the static vocabularies the query pipeline matches
// against: entity-type synonyms and mappings, certifications, known locations,
// product-category terms and stop-words. Pure data, no logic beyond lookups.
package lexicon

import (
	"strings"

	"supplier-search/internal/models"
)

// Mapping ties one closed entity-type tag to the literal values that count as
// a primary-classification match and the free-text terms that count as a
// capability match. The classification field is noisy, so a type may map to
// more literals than its own name ("wholesaler" also matches "Trader").
type Mapping struct {
	Primary   []string // exact Classification values
	Secondary []string // lowercase substrings looked for in the capabilities field
}

var entityMappings = map[models.EntityType]Mapping{
	models.EntityManufacturer: {
		Primary:   []string{"Manufacturer", "Manufacturer | Exporter", "Manufacturer | Supplier"},
		Secondary: []string{"manufactur", "production unit", "factory", "we produce"},
	},
	models.EntityDistributor: {
		Primary:   []string{"Distributor", "Distributor | Supplier", "Channel Partner"},
		Secondary: []string{"distribut", "dealership", "stockist", "c&f agent"},
	},
	models.EntityRetailer: {
		Primary:   []string{"Retailer", "Retail Chain", "Retailer | Distributor"},
		Secondary: []string{"retail", "storefront", "outlet"},
	},
	models.EntityWholesaler: {
		Primary:   []string{"Wholesaler", "Trader", "Trader | Wholesaler", "Bulk Supplier"},
		Secondary: []string{"wholesal", "bulk order", "bulk supply", "trading"},
	},
	models.EntityRawMaterialSupplier: {
		Primary:   []string{"Raw Material Supplier", "Supplier", "Ingredient Supplier"},
		Secondary: []string{"raw material", "ingredient", "bulk herbs", "extracts supply"},
	},
	models.EntityFormulator: {
		Primary:   []string{"Formulator", "Contract Manufacturer", "CDMO"},
		Secondary: []string{"formulat", "contract manufactur", "third party manufactur", "private label", "cdmo", "white label"},
	},
	models.EntityPackager: {
		Primary:   []string{"Packager", "Packaging Company", "Co-Packer"},
		Secondary: []string{"packag", "bottling", "filling line", "co-pack"},
	},
	models.EntityTestingLab: {
		Primary:   []string{"Testing Lab", "Laboratory", "CRO"},
		Secondary: []string{"testing lab", "laboratory", "analytical testing", "quality testing", "clinical research"},
	},
}

// entitySynonyms maps single lowercase tokens to an entity-type tag, used by
// the deterministic tokenizer and by conversational role-noun detection.
// Plural forms are listed explicitly; the tokenizer does no stemming.
var entitySynonyms = map[string]models.EntityType{
	"manufacturer":  models.EntityManufacturer,
	"manufacturers": models.EntityManufacturer,
	"maker":         models.EntityManufacturer,
	"makers":        models.EntityManufacturer,
	"producer":      models.EntityManufacturer,
	"producers":     models.EntityManufacturer,

	"distributor":  models.EntityDistributor,
	"distributors": models.EntityDistributor,
	"dealer":       models.EntityDistributor,
	"dealers":      models.EntityDistributor,
	"stockist":     models.EntityDistributor,
	"stockists":    models.EntityDistributor,

	"retailer":  models.EntityRetailer,
	"retailers": models.EntityRetailer,
	"reseller":  models.EntityRetailer,
	"resellers": models.EntityRetailer,

	"wholesaler":  models.EntityWholesaler,
	"wholesalers": models.EntityWholesaler,
	"trader":      models.EntityWholesaler,
	"traders":     models.EntityWholesaler,

	"supplier":  models.EntityRawMaterialSupplier,
	"suppliers": models.EntityRawMaterialSupplier,

	"formulator":  models.EntityFormulator,
	"formulators": models.EntityFormulator,
	"cdmo":        models.EntityFormulator,
	"cdmos":       models.EntityFormulator,

	"packager":  models.EntityPackager,
	"packagers": models.EntityPackager,
	"packer":    models.EntityPackager,
	"packers":   models.EntityPackager,

	"lab":          models.EntityTestingLab,
	"labs":         models.EntityTestingLab,
	"laboratory":   models.EntityTestingLab,
	"laboratories": models.EntityTestingLab,
	"cro":          models.EntityTestingLab,
}

// certSynonyms maps lowercase tokens to the canonical certification tag.
var certSynonyms = map[string]string{
	"gmp":     "GMP",
	"who-gmp": "WHO-GMP",
	"whogmp":  "WHO-GMP",
	"iso":     "ISO",
	"fssai":   "FSSAI",
	"ayush":   "AYUSH",
	"haccp":   "HACCP",
	"halal":   "Halal",
	"kosher":  "Kosher",
	"organic": "Organic",
}

// productTerms is the open-ended but curated product-category vocabulary.
var productTerms = map[string]bool{
	"ayurvedic":     true,
	"herbal":        true,
	"protein":       true,
	"whey":          true,
	"nutraceutical": true,
	"supplement":    true,
	"supplements":   true,
	"cosmetic":      true,
	"cosmetics":     true,
	"skincare":      true,
	"haircare":      true,
	"soap":          true,
	"shampoo":       true,
	"capsule":       true,
	"capsules":      true,
	"tablet":        true,
	"tablets":       true,
	"syrup":         true,
	"churna":        true,
	"extract":       true,
	"extracts":      true,
	"spices":        true,
	"tea":           true,
	"honey":         true,
	"powder":        true,
	"oil":           true,
	"oils":          true,
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "at": true, "of": true,
	"for": true, "with": true, "and": true, "or": true, "to": true, "me": true,
	"my": true, "i": true, "we": true, "is": true, "are": true, "from": true,
	"near": true, "best": true, "top": true, "good": true, "find": true,
	"show": true, "list": true, "give": true, "need": true, "want": true,
	"looking": true, "search": true, "who": true, "that": true, "can": true,
	"companies": true, "company": true, "business": true, "businesses": true,
}

// MappingFor returns the primary/secondary mapping for a closed tag.
func MappingFor(t models.EntityType) (Mapping, bool) {
	m, ok := entityMappings[t]
	return m, ok
}

// EntityTypeForToken resolves a single lowercase token against the synonym
// table.
func EntityTypeForToken(tok string) (models.EntityType, bool) {
	t, ok := entitySynonyms[strings.ToLower(tok)]
	return t, ok
}

// CanonicalEntityType normalizes an externally supplied value (tag name or
// synonym) to a closed tag. Values outside the vocabulary are rejected.
func CanonicalEntityType(raw string) (models.EntityType, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	for _, t := range models.AllEntityTypes {
		if norm == string(t) {
			return t, true
		}
	}
	if t, ok := entitySynonyms[strings.ReplaceAll(norm, "_", " ")]; ok {
		return t, true
	}
	if t, ok := entitySynonyms[norm]; ok {
		return t, true
	}
	return "", false
}

// CertificationForToken resolves a single lowercase token to a canonical
// certification tag.
func CertificationForToken(tok string) (string, bool) {
	c, ok := certSynonyms[strings.ToLower(tok)]
	return c, ok
}

// CanonicalCertification normalizes an externally supplied certification value.
func CanonicalCertification(raw string) (string, bool) {
	return CertificationForToken(strings.TrimSpace(raw))
}

// IsProductTerm reports whether the token belongs to the product-category
// vocabulary.
func IsProductTerm(tok string) bool {
	return productTerms[strings.ToLower(tok)]
}

// IsStopWord reports whether the token carries no filtering value.
func IsStopWord(tok string) bool {
	return stopWords[strings.ToLower(tok)]
}
