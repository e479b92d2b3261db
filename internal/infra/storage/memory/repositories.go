package memory

import (
	"context"
	"sync"

	domainavailability "stayquote/internal/domain/availability"
)

// CalendarRepository is an in-memory implementation for demos and tests.
type CalendarRepository struct {
	mu    sync.RWMutex
	items map[domainavailability.ScopeID]*domainavailability.Calendar
}

// NewCalendarRepository builds an empty repository.
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{
		items: make(map[domainavailability.ScopeID]*domainavailability.Calendar),
	}
}

// Calendar returns a copy of the stored aggregate or ErrCalendarNotFound.
// Copying keeps a quote's snapshot stable while writers keep appending.
func (r *CalendarRepository) Calendar(ctx context.Context, scope domainavailability.ScopeID) (*domainavailability.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	calendar, ok := r.items[scope]
	if !ok {
		return nil, domainavailability.ErrCalendarNotFound
	}
	return cloneCalendar(calendar), nil
}

// Save stores the aggregate, bumping its version.
func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneCalendar(calendar)
	stored.Version = calendar.Version + 1
	r.items[calendar.Scope] = stored
	calendar.Version = stored.Version
	return nil
}

// Scopes lists every stored scope, used by fixture diagnostics.
func (r *CalendarRepository) Scopes(ctx context.Context) []domainavailability.ScopeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domainavailability.ScopeID, 0, len(r.items))
	for scope := range r.items {
		out = append(out, scope)
	}
	return out
}

func cloneCalendar(calendar *domainavailability.Calendar) *domainavailability.Calendar {
	clone := &domainavailability.Calendar{
		Scope:   calendar.Scope,
		Profile: calendar.Profile,
		Entries: append([]domainavailability.Override(nil), calendar.Entries...),
		Version: calendar.Version,
	}
	return clone
}

var _ domainavailability.Repository = (*CalendarRepository)(nil)
