// Package authz holds the static permission declarations that protect
// handler operations, and the rules for resolving and matching them.
//
// Declarations are attached to a controller (a named group of operations)
// or to a single operation of that controller. The registry is built once
// at startup, before the router starts serving, and must not be mutated
// afterwards.
package authz

import (
	"github.com/campuskit/admin-backend/internal/model"
)

// Registry maps controllers and their operations to permission declarations.
type Registry struct {
	controllers map[string]Declaration
	operations  map[string]Declaration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		controllers: make(map[string]Declaration),
		operations:  make(map[string]Declaration),
	}
}

// DeclareController attaches a controller-level declaration. It applies to
// every operation of the controller that has no declaration of its own.
func (r *Registry) DeclareController(controller string, perms ...model.Permission) *Registry {
	r.controllers[controller] = Declaration(perms)
	return r
}

// DeclareOperation attaches an operation-level declaration. A non-empty
// operation declaration fully replaces the controller-level one; the two are
// never merged.
func (r *Registry) DeclareOperation(controller, operation string, perms ...model.Permission) *Registry {
	r.operations[operationKey(controller, operation)] = Declaration(perms)
	return r
}

// Resolve returns the effective declaration for an operation:
//
//  1. the operation's own declaration, if non-empty;
//  2. otherwise the controller's declaration, if non-empty;
//  3. otherwise the empty declaration (unrestricted).
//
// The override is complete, not additive. An operation declared with a
// single permission ignores the controller declaration entirely, even when
// the two are disjoint.
func (r *Registry) Resolve(controller, operation string) Declaration {
	if d := r.operations[operationKey(controller, operation)]; !d.Empty() {
		return d
	}
	if d := r.controllers[controller]; !d.Empty() {
		return d
	}
	return nil
}

func operationKey(controller, operation string) string {
	return controller + "." + operation
}
