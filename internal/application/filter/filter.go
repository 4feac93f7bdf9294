// Package filter defines the declarative query-filter contract shared by all
// entity services. A Schema classifies each filterable field of an entity into
// a predicate kind; a Set carries the caller-supplied values for one request.
// The translation into a store query lives in the persistence layer.
package filter

// Kind is the predicate class of a filterable field.
type Kind int

const (
	// List matches rows whose field value is a member of the supplied set.
	// An empty or absent list imposes no constraint.
	List Kind = iota

	// GreaterEqual matches rows whose field value is >= the supplied bound.
	// The "_gt" field suffix is historical; the comparison is inclusive.
	GreaterEqual

	// LessEqual matches rows whose field value is <= the supplied bound.
	LessEqual

	// Keyword matches rows whose field case-insensitively contains any of
	// the supplied substrings (OR across substrings).
	Keyword
)

// Schema maps filterable field names to their predicate kind for one entity.
// Field names ending in "_gt"/"_lt" are resolved to the underlying column by
// stripping the suffix.
type Schema map[string]Kind

// Set is a caller-supplied mapping of field name to predicate value(s). All
// present predicates are combined with logical AND. Field names not present
// in the entity's Schema are ignored with a warning, never an error.
type Set map[string]any

// Clone returns a shallow copy of the set. A nil set clones to an empty,
// writable set so callers can overwrite fields unconditionally.
func (s Set) Clone() Set {
	clone := make(Set, len(s)+1)
	for name, value := range s {
		clone[name] = value
	}
	return clone
}
