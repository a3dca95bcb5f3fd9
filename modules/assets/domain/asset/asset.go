package asset

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a node in the tenant's asset forest. ParentID of uuid.Nil means
// the asset is a root. Mutators return copies; the receiver is never
// modified.
type Asset interface {
	ID() uuid.UUID
	TenantID() uuid.UUID
	ParentID() uuid.UUID
	Promoted() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time

	Promote() Asset
	WithParent(parentID uuid.UUID) Asset
	WithPromoted(promoted bool) Asset
}

type Option func(a *asset)

func WithID(id uuid.UUID) Option {
	return func(a *asset) {
		a.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(a *asset) {
		a.tenantID = tenantID
	}
}

func WithParentID(parentID uuid.UUID) Option {
	return func(a *asset) {
		a.parentID = parentID
	}
}

func WithPromoted(promoted bool) Option {
	return func(a *asset) {
		a.promoted = promoted
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(a *asset) {
		a.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(a *asset) {
		a.updatedAt = t
	}
}

func New(opts ...Option) Asset {
	a := &asset{
		id:        uuid.New(),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type asset struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	parentID  uuid.UUID
	promoted  bool
	createdAt time.Time
	updatedAt time.Time
}

func (a *asset) ID() uuid.UUID {
	return a.id
}

func (a *asset) TenantID() uuid.UUID {
	return a.tenantID
}

func (a *asset) ParentID() uuid.UUID {
	return a.parentID
}

func (a *asset) Promoted() bool {
	return a.promoted
}

func (a *asset) CreatedAt() time.Time {
	return a.createdAt
}

func (a *asset) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *asset) Promote() Asset {
	res := *a
	res.promoted = true
	res.updatedAt = time.Now()
	return &res
}

func (a *asset) WithParent(parentID uuid.UUID) Asset {
	res := *a
	res.parentID = parentID
	res.updatedAt = time.Now()
	return &res
}

func (a *asset) WithPromoted(promoted bool) Asset {
	res := *a
	res.promoted = promoted
	res.updatedAt = time.Now()
	return &res
}
