// Package listing holds the pure filter/sort engine applied to the
// in-memory listing collection. No I/O happens here.
package listing

import (
	"sort"
	"strings"

	"imovia_backend/internal/model"
)

// SortKey selects the ordering of a filtered result set.
type SortKey string

const (
	SortRecent    SortKey = "recent"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// Spec is a filter specification. Zero values disable the corresponding
// predicate; Transaction uses the "any" sentinel for pass-through.
type Spec struct {
	Query       string
	Transaction model.TransactionType
	Category    model.Category
	MinRooms    int
	MaxPrice    float64
}

// Filter returns the listings satisfying every active predicate in spec,
// preserving the input order. The result is never nil.
func Filter(listings []model.Listing, spec Spec) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, spec) {
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether a single listing satisfies every active predicate.
func Matches(l model.Listing, spec Spec) bool {
	if q := strings.ToLower(strings.TrimSpace(spec.Query)); q != "" {
		title := strings.ToLower(l.Title)
		address := strings.ToLower(l.Address)
		if !strings.Contains(title, q) && !strings.Contains(address, q) {
			return false
		}
	}

	if spec.Transaction != "" && spec.Transaction != model.TransactionAny {
		if l.Transaction != spec.Transaction {
			return false
		}
	}

	if spec.Category != "" && l.Category != spec.Category {
		return false
	}

	if spec.MinRooms > 0 && l.Bedrooms < spec.MinRooms {
		return false
	}

	if spec.MaxPrice > 0 && l.Price > spec.MaxPrice {
		return false
	}

	return true
}

// Sort orders listings by the given key. The sort is stable: ties keep
// their fetch order. SortRecent is newest first, with featured listings
// ranked ahead of the rest.
func Sort(listings []model.Listing, key SortKey) []model.Listing {
	out := make([]model.Listing, len(listings))
	copy(out, listings)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	default: // SortRecent
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Featured != out[j].Featured {
				return out[i].Featured
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

// Apply runs Filter then Sort in one step.
func Apply(listings []model.Listing, spec Spec, key SortKey) []model.Listing {
	return Sort(Filter(listings, spec), key)
}
