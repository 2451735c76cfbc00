// internal/search/lexicon/locations.go
package lexicon

import "strings"

// Multi-word places must be scanned against the raw string before whitespace
// tokenization, or the tokenizer would split them into meaningless halves.
var multiWordLocations = []string{
	"andhra pradesh",
	"arunachal pradesh",
	"himachal pradesh",
	"madhya pradesh",
	"uttar pradesh",
	"tamil nadu",
	"west bengal",
	"jammu and kashmir",
	"new delhi",
	"navi mumbai",
}

var singleWordLocations = map[string]bool{
	// states
	"gujarat": true, "maharashtra": true, "karnataka": true, "kerala": true,
	"rajasthan": true, "punjab": true, "haryana": true, "bihar": true,
	"odisha": true, "assam": true, "telangana": true, "uttarakhand": true,
	"jharkhand": true, "chhattisgarh": true, "goa": true, "sikkim": true,
	"delhi": true,
	// major cities
	"mumbai": true, "ahmedabad": true, "surat": true, "vadodara": true,
	"pune": true, "nagpur": true, "jaipur": true, "indore": true,
	"hyderabad": true, "chennai": true, "kolkata": true, "bangalore": true,
	"bengaluru": true, "lucknow": true, "kanpur": true, "ludhiana": true,
	"coimbatore": true, "kochi": true, "chandigarh": true, "noida": true,
	"gurgaon": true, "gurugram": true, "haridwar": true,
}

// MultiWordLocations returns the multi-word place names, longest first is not
// required; entries do not overlap.
func MultiWordLocations() []string {
	return multiWordLocations
}

// IsSingleWordLocation reports whether a lone token names a known state or
// city.
func IsSingleWordLocation(tok string) bool {
	return singleWordLocations[strings.ToLower(tok)]
}

// CanonicalLocation normalizes an externally supplied location to the lexicon
// spelling (lowercase). Unknown places are rejected.
func CanonicalLocation(raw string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if norm == "" {
		return "", false
	}
	if singleWordLocations[norm] {
		return norm, true
	}
	for _, m := range multiWordLocations {
		if norm == m {
			return m, true
		}
	}
	return "", false
}
