package authz

import (
	"strings"

	"github.com/campuskit/admin-backend/internal/model"
)

// Declaration is the ordered list of permissions that protect an operation.
// An empty declaration means "no restriction".
type Declaration []model.Permission

// Empty reports whether the declaration imposes no restriction.
func (d Declaration) Empty() bool {
	return len(d) == 0
}

// SatisfiedBy reports whether a caller holding the given permissions string
// passes the declaration. Matching is OR across the declaration: holding any
// one of the listed permission codes suffices.
//
// The held string is split on "," raw — no trimming, no deduplication, no
// validation against the closed permission set. A malformed or unknown token
// simply never matches; it is not an error.
func (d Declaration) SatisfiedBy(held string) bool {
	if d.Empty() {
		return true
	}

	codes := strings.Split(held, ",")
	for _, required := range d {
		want := required.Code()
		for _, code := range codes {
			if code == want {
				return true
			}
		}
	}
	return false
}

// Codes returns the string codes of the declaration, for logging.
func (d Declaration) Codes() []string {
	out := make([]string, len(d))
	for i, p := range d {
		out[i] = p.Code()
	}
	return out
}
