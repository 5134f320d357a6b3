// Package favorites keeps a per-user set of favorited listing IDs.
//
// Two backing stores satisfy the same contract: AccountStore persists rows
// for authenticated users, SessionStore keeps anonymous favorites in a
// TTL cache keyed by an opaque session token. Both operate on listing
// identifiers only; full records are resolved from the listing collection
// at read time.
package favorites

// Store is the favorites contract shared by both backends.
//
// Toggle is its own inverse: calling it twice for the same listing restores
// the set to its prior contents. Writes are last-write-wins with no
// reconciliation; a failed persistence write leaves the caller's view and
// the store diverged until the next full load.
type Store interface {
	// Toggle adds the listing if absent, removes it if present, and
	// reports whether the listing is a favorite afterwards.
	Toggle(owner string, listingID uint) (favorited bool, err error)

	// Has reports membership.
	Has(owner string, listingID uint) (bool, error)

	// List returns the favorited listing IDs in insertion order.
	List(owner string) ([]uint, error)

	// Count returns the set size.
	Count(owner string) (int, error)
}
