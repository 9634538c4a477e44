// Package auth defines the explicit caller capability passed into every
// operation. There is no ambient session lookup: handlers resolve a Context
// at the boundary and services receive it as a value.
package auth

import (
	"context"
	"strings"
)

// Role is the resolved caller capability.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// Context carries the caller's capability and identity.
type Context struct {
	Role          Role
	CustomerEmail string // lowercased; empty for anonymous guests
}

// Guest returns a guest context for the given customer email (may be empty).
func Guest(email string) Context {
	return Context{Role: RoleGuest, CustomerEmail: strings.ToLower(strings.TrimSpace(email))}
}

// Admin returns the admin capability context.
func Admin() Context {
	return Context{Role: RoleAdmin}
}

// IsAdmin reports whether the caller holds the admin capability.
func (c Context) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanActFor reports whether the caller may operate on resources owned by the
// given customer email: admins always, guests only on their own.
func (c Context) CanActFor(email string) bool {
	if c.IsAdmin() {
		return true
	}
	return c.CustomerEmail != "" && strings.EqualFold(c.CustomerEmail, email)
}

type ctxKey struct{}

// WithContext attaches the capability context to a request context.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext extracts the capability context; absent means anonymous guest.
func FromContext(ctx context.Context) Context {
	if ac, ok := ctx.Value(ctxKey{}).(Context); ok {
		return ac
	}
	return Guest("")
}
