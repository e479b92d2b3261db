package memory

import (
	"context"
	"errors"

	"stayquote/internal/app/uow"
	domainavailability "stayquote/internal/domain/availability"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	CalendarRepo domainavailability.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.CalendarRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{calendars: f.CalendarRepo}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	calendars domainavailability.Repository
}

func (u *Unit) Calendars() domainavailability.Repository {
	return u.calendars
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
