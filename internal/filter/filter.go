// Package filter computes the visible subset of property listings for a
// view session. Apply is a pure function over the full in-memory collection
// and a criteria snapshot; callers that recompute frequently should key a
// memo on (collection version, criteria), which the optimistic store does.
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/ren89/property-listing-app/internal/models"
)

// Sentinel value deactivating the type/status clauses.
const All = "all"

// Criteria is the set of user-selected constraints narrowing the visible
// listing subset. It is ephemeral view state: no identity, rebuilt per
// session. Bounds are kept as raw strings because they come from free-text
// or slider input; unparsable bounds simply do not constrain.
type Criteria struct {
	Search   string `json:"search"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	MinPrice string `json:"min_price"`
	MaxPrice string `json:"max_price"`
}

// Default returns the all-pass criteria.
func Default() Criteria {
	return Criteria{Type: All, Status: All}
}

// Active reports whether any clause constrains the result.
func (c Criteria) Active() bool {
	return strings.TrimSpace(c.Search) != "" ||
		(c.Type != "" && c.Type != All) ||
		(c.Status != "" && c.Status != All) ||
		parseBound(c.MinPrice) != nil ||
		parseBound(c.MaxPrice) != nil
}

// Apply returns the ordered subsequence of listings satisfying every active
// clause. Clauses are AND-combined; an absent or default clause does not
// constrain. The relative order of the input is preserved (stable filter,
// no re-sort) and the input slice is never mutated.
func Apply(listings []models.PropertyListing, c Criteria) []models.PropertyListing {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	minPrice := parseBound(c.MinPrice)
	maxPrice := parseBound(c.MaxPrice)

	result := make([]models.PropertyListing, 0, len(listings))
	for _, p := range listings {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if c.Type != "" && c.Type != All && string(p.PropertyType) != c.Type {
			continue
		}
		if c.Status != "" && c.Status != All && string(p.Status) != c.Status {
			continue
		}
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		result = append(result, p)
	}
	return result
}

// matchesSearch reports whether the case-folded term is a substring of the
// listing's title, location, or description. Any one match suffices.
func matchesSearch(p models.PropertyListing, term string) bool {
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Location), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// parseBound parses an optional price bound. Empty, unparsable, and
// non-finite values are treated as absent, not as zero and not as errors:
// bounds arrive from free-text input and a bad one must not constrain.
func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
