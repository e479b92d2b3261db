package availability

import (
	"context"
	"errors"
	"strings"

	"stayquote/internal/app/dto"
	handlersupport "stayquote/internal/app/handlers/support"
	"stayquote/internal/app/queries"
	"stayquote/internal/app/uow"
	domainavailability "stayquote/internal/domain/availability"
	domainrange "stayquote/internal/domain/shared/daterange"
)

const getCalendarKey = "availability.calendar"

var ErrScopeRequired = errors.New("availability: scope id is required")

// GetCalendarQuery resolves every night in [From, To) for a scope, the view
// a month calendar renders from.
type GetCalendarQuery struct {
	ScopeID string
	From    string
	To      string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

func (q GetCalendarQuery) Validate() error {
	if strings.TrimSpace(q.ScopeID) == "" {
		return ErrScopeRequired
	}
	_, err := domainrange.ParseRange(q.From, q.To)
	return err
}

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	var zero dto.Calendar
	if strings.TrimSpace(q.ScopeID) == "" {
		return zero, ErrScopeRequired
	}
	dr, err := domainrange.ParseRange(q.From, q.To)
	if err != nil {
		return zero, err
	}

	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	calendar, err := unit.Calendars().Calendar(execCtx, domainavailability.ScopeID(q.ScopeID))
	if err != nil {
		return zero, err
	}

	validated, err := calendar.ValidatedProfile()
	if err != nil {
		return zero, err
	}
	overrides := calendar.Overrides()

	nights := make([]domainavailability.ResolvedNight, 0, dr.Nights())
	for _, date := range dr.Dates() {
		night, err := domainavailability.Resolve(validated, overrides, date)
		if err != nil {
			return zero, err
		}
		nights = append(nights, night)
	}

	return dto.MapCalendar(calendar.Scope, dr.CheckIn.String(), dr.CheckOut.String(), nights), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
