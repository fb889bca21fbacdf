package authz

import (
	"testing"

	"github.com/campuskit/admin-backend/internal/model"
)

func TestSatisfiedBy(t *testing.T) {
	admin := Declaration{model.PermissionAdmin}
	userOrAdmin := Declaration{model.PermissionUser, model.PermissionAdmin}

	tests := []struct {
		name string
		decl Declaration
		held string
		want bool
	}{
		{"empty declaration admits anonymous", nil, "", true},
		{"empty declaration admits anyone", Declaration{}, "1,2", true},
		{"single code match", admin, "2", true},
		{"or semantics: one of several held", admin, "1,2", true},
		{"or semantics: any required suffices", userOrAdmin, "2", true},
		{"unrelated code denied", admin, "1", false},
		{"anonymous denied on non-empty", admin, "", false},
		{"unknown code never matches", admin, "99,42", false},
		{"no trimming: padded token never matches", admin, " 2", false},
		{"no trimming: trailing space never matches", admin, "2 ", false},
		{"duplicate tokens are harmless", admin, "2,2,2", true},
		{"empty tokens are ignored", admin, ",,2", true},
		{"malformed token is not an error", admin, "x,y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decl.SatisfiedBy(tt.held); got != tt.want {
				t.Fatalf("SatisfiedBy(%q) = %v, want %v", tt.held, got, tt.want)
			}
		})
	}
}
