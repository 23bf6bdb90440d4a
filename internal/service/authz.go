package service

import "github.com/wanderlog/backend/internal/model"

type Relation int

const (
	// RelationRead is a read-only operation. Non-owners pass only for
	// published resources.
	RelationRead Relation = iota
	// RelationWrite is any mutating operation; owner only.
	RelationWrite
)

type Owned interface {
	OwnedBy() int64
}

// Publishable marks resources with a public/draft duality.
type Publishable interface {
	Published() bool
}

// Authorize applies the ownership policy. It is evaluated on every request
// against the freshly loaded resource; ownership and publication flags are
// never cached.
func Authorize(principal *model.AuthUser, resource Owned, relation Relation) error {
	if principal == nil {
		return ErrUnauthorized
	}
	if resource.OwnedBy() == principal.ID {
		return nil
	}
	if relation == RelationRead {
		if p, ok := resource.(Publishable); ok && p.Published() {
			return nil
		}
	}
	return ErrForbidden
}
