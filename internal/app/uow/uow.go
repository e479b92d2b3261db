package uow

import (
	"context"

	domainavailability "stayquote/internal/domain/availability"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Calendars() domainavailability.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
