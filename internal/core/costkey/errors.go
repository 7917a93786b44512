package costkey

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// SkipReason categorizes why a record contributed no triples.
type SkipReason string

const (
	SkipNone               SkipReason = ""
	SkipMissingKey         SkipReason = "missing_key"
	SkipUnsupportedVersion SkipReason = "unsupported_version"
	SkipNoObjects          SkipReason = "no_objects"
	SkipMalformedKey       SkipReason = "malformed_key"
	SkipMalformedCost      SkipReason = "malformed_cost"

	// SkipMalformedRow is assigned by readers for rows that fail to parse as CSV.
	SkipMalformedRow SkipReason = "malformed_row"
)

// SkipReasons lists every non-empty reason in report order.
func SkipReasons() []SkipReason {
	return []SkipReason{
		SkipMissingKey,
		SkipUnsupportedVersion,
		SkipNoObjects,
		SkipMalformedKey,
		SkipMalformedCost,
		SkipMalformedRow,
	}
}

// MalformedKeyError is returned when a v1 composite key has fewer slots than
// the object type ordinals reference, or when a slot holds an id that does
// not fit results.object_id.
type MalformedKeyError struct {
	Key      string
	Parts    int
	Required int
	// ID is the offending slot value when it exceeds MaxObjectIDLength.
	ID string
}

func (e *MalformedKeyError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("malformed composite key %q: object id of %d characters exceeds %d",
			e.Key, utf8.RuneCountInString(e.ID), MaxObjectIDLength)
	}
	return fmt.Sprintf("malformed composite key %q: %d parts, need %d", e.Key, e.Parts, e.Required)
}

// MalformedCostError is returned when the cost column cannot be parsed as a number.
type MalformedCostError struct {
	Value string
	Err   error
}

func (e *MalformedCostError) Error() string {
	return fmt.Sprintf("malformed cost %q: %v", e.Value, e.Err)
}

func (e *MalformedCostError) Unwrap() error {
	return e.Err
}

var errMissingCostColumn = errors.New("cost column missing")
