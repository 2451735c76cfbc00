// internal/search/intent/rules.go
package intent

import (
	"regexp"

	"supplier-search/internal/models"
)

// The classifier is a pair of ordered rule tables evaluated first-match-wins.
// Keeping the rules as data means order is testable on its own and new
// phrasings land here, not in control flow.

// knowledgePatterns mark messages that are pure knowledge questions; no
// company search should run for these.
var knowledgePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what is the difference between`),
	regexp.MustCompile(`(?i)\bexplain( the concept of| to me)?\b`),
	regexp.MustCompile(`(?i)\bwhat does .+ mean\b`),
	regexp.MustCompile(`(?i)\bdefine\b`),
}

// requestVerbs introduce an explicit ask for companies.
var requestVerbs = regexp.MustCompile(`(?i)\b(find|suggest|recommend|list|show|give me)\b`)

// explicitRequestPatterns are the final catch-all for phrasings the earlier
// rules miss.
var explicitRequestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)looking for (a |an |some )?(manufacturer|supplier|distributor|wholesaler|retailer|formulator|packager|lab|exporter)`),
	regexp.MustCompile(`(?i)who (can|could) (make|supply|manufacture|produce)`),
	regexp.MustCompile(`(?i)need (a |an |some )?(manufacturer|supplier|distributor|vendor|partner)`),
	regexp.MustCompile(`(?i)connect me (with|to)`),
}

// businessContextPhrases signal that the user is talking about their own
// venture rather than asking for a definition.
var businessContextPhrases = []string{
	"thinking of starting",
	"want to outsource",
	"we want to outsource",
	"planning to launch",
	"starting a",
	"starting my",
	"launch my",
	"my brand",
	"set up my",
	"understand how",
	"is made",
	"for my business",
}

// inferenceRules map conversational phrasing to the entity types the user
// actually needs. Order matters: sourcing-specific patterns sit above the
// broader make/produce pattern, which they would otherwise loosely match.
// Weak rules key on everyday words (test, package) that show up in plenty of
// non-sourcing chat; they still pick the type set but do not establish search
// intent without product or business context alongside.
var inferenceRules = []struct {
	pattern *regexp.Regexp
	types   []models.EntityType
	weak    bool
}{
	{
		// raw-material sourcing
		pattern: regexp.MustCompile(`(?i)\b(source|sourcing|procure|procuring)\b.*\b(raw material|raw materials|ingredient|ingredients|herbs|extracts)\b`),
		types:   []models.EntityType{models.EntityRawMaterialSupplier},
	},
	{
		// making a product needs inputs and production partners, not
		// finished-good competitors
		pattern: regexp.MustCompile(`(?i)\bhow (do|can|would) (i|we) (make|manufacture|produce)\b|\bhow to (make|manufacture|produce)\b`),
		types:   []models.EntityType{models.EntityRawMaterialSupplier, models.EntityFormulator},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(outsource|outsourcing|contract manufactur\w*|private label|third party manufactur\w*|white label)\b`),
		types:   []models.EntityType{models.EntityFormulator, models.EntityManufacturer},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(where|how) (do|can|would) (i|we) (buy|purchase|get)\b|\bbuy in bulk\b`),
		types:   []models.EntityType{models.EntityDistributor, models.EntityRetailer, models.EntityWholesaler},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(test|testing|certify|certification|quality.?check|lab report|analysis)\b`),
		types:   []models.EntityType{models.EntityTestingLab},
		weak:    true,
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(package|packaging|bottle|bottling|fill|filling|co.?pack\w*)\b`),
		types:   []models.EntityType{models.EntityPackager},
		weak:    true,
	},
}
