package quotes

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

const getQuoteKey = "quotes.get"

var ErrScopeRequired = errors.New("quotes: scope id is required")

// GetQuoteQuery prices a stay for one scope. CheckIn and CheckOut arrive as
// raw request strings and go through range validation before any calendar
// lookup happens.
type GetQuoteQuery struct {
	ScopeID  string
	CheckIn  string
	CheckOut string
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

func (q GetQuoteQuery) Validate() error {
	if strings.TrimSpace(q.ScopeID) == "" {
		return ErrScopeRequired
	}
	_, err := domainrange.ParseRange(q.CheckIn, q.CheckOut)
	return err
}

type GetQuoteHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	var zero dto.Quote
	if strings.TrimSpace(q.ScopeID) == "" {
		return zero, ErrScopeRequired
	}
	dr, err := domainrange.ParseRange(q.CheckIn, q.CheckOut)
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

	quote, err := calendar.Quote(dr)
	if err != nil {
		return zero, err
	}
	return dto.MapQuote(calendar.Scope, quote), nil
}

var _ queries.Handler[GetQuoteQuery, dto.Quote] = (*GetQuoteHandler)(nil)
