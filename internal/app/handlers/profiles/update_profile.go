package profiles

import (
	"context"
	"errors"
	"time"

	"stayquote/internal/app/commands"
	"stayquote/internal/app/dto"
	handlersupport "stayquote/internal/app/handlers/support"
	"stayquote/internal/app/outbox"
	"stayquote/internal/app/uow"
	domainavailability "stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
	"stayquote/internal/domain/shared/money"
)

const updateProfileKey = "profiles.update"

var ErrScopeRequired = errors.New("profiles: scope id is required")

// UpdateProfileCommand replaces the three price tiers of a scope. The tier
// inequality is enforced here, on the write path, so resolution can trust
// every stored profile.
type UpdateProfileCommand struct {
	CommandID       string
	ScopeID         string
	BasePrice       int64
	BestDealPrice   int64
	PeakSeasonPrice int64
	Currency        string
	IdempotencyKeyV string
}

func (c UpdateProfileCommand) Key() string { return updateProfileKey }

func (c UpdateProfileCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c UpdateProfileCommand) ResultPrototype() any { return &UpdateProfileResult{} }

func (c UpdateProfileCommand) Validate() error {
	if c.ScopeID == "" {
		return ErrScopeRequired
	}
	profile, err := c.profile()
	if err != nil {
		return err
	}
	return profile.Validate()
}

func (c UpdateProfileCommand) profile() (pricing.Profile, error) {
	base, err := money.New(c.BasePrice, c.Currency)
	if err != nil {
		return pricing.Profile{}, err
	}
	deal, err := money.New(c.BestDealPrice, c.Currency)
	if err != nil {
		return pricing.Profile{}, err
	}
	peak, err := money.New(c.PeakSeasonPrice, c.Currency)
	if err != nil {
		return pricing.Profile{}, err
	}
	return pricing.Profile{Base: base, BestDeal: deal, PeakSeason: peak}, nil
}

type UpdateProfileResult struct {
	Profile dto.Profile `json:"profile"`
}

type UpdateProfileHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	if cmd.ScopeID == "" {
		return nil, ErrScopeRequired
	}
	profile, err := cmd.profile()
	if err != nil {
		return nil, err
	}

	unit, execCtx, managed, err := handlersupport.BeginWriteUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	committed := false
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(execCtx)
			}
		}()
	}

	scope := domainavailability.ScopeID(cmd.ScopeID)
	now := time.Now().UTC()

	calendar, err := unit.Calendars().Calendar(execCtx, scope)
	if errors.Is(err, domainavailability.ErrCalendarNotFound) {
		calendar, err = domainavailability.NewCalendar(scope, profile)
		if err != nil {
			return nil, err
		}
		calendar.Record(domainavailability.ProfileUpdatedEvent(scope, profile, now))
	} else if err != nil {
		return nil, err
	} else if err := calendar.SetProfile(profile, now); err != nil {
		return nil, err
	}

	if err := unit.Calendars().Save(execCtx, calendar); err != nil {
		return nil, err
	}

	pending := calendar.PendingEvents()
	calendar.ClearEvents()
	if err := outbox.RecordDomainEvents(execCtx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(execCtx); err != nil {
			return nil, err
		}
		committed = true
	}
	return &UpdateProfileResult{Profile: dto.MapProfile(scope, profile)}, nil
}

func (h *UpdateProfileHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[UpdateProfileCommand, *UpdateProfileResult] = (*UpdateProfileHandler)(nil)
