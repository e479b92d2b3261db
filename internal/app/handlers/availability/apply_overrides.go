package availability

import (
	"context"
	"errors"
	"time"

	"stayquote/internal/app/commands"
	handlersupport "stayquote/internal/app/handlers/support"
	"stayquote/internal/app/outbox"
	"stayquote/internal/app/uow"
	domainavailability "stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
	domainrange "stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
)

const applyOverridesKey = "availability.apply_overrides"

var ErrNoOverrides = errors.New("availability: at least one override entry is required")

// OverrideEntry is one raw override row as submitted by a pricing-management
// flow. Price is optional; when absent the tier price derived from Type
// applies at resolution time.
type OverrideEntry struct {
	Date  string
	Type  string
	Price *int64
}

// ApplyOverridesCommand appends a batch of per-date overrides to a scope's
// calendar. Duplicate dates within or across batches are legal; the calendar
// resolves them last-write-wins.
type ApplyOverridesCommand struct {
	CommandID       string
	ScopeID         string
	Entries         []OverrideEntry
	IdempotencyKeyV string
}

func (c ApplyOverridesCommand) Key() string { return applyOverridesKey }

func (c ApplyOverridesCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ApplyOverridesCommand) ResultPrototype() any { return &ApplyOverridesResult{} }

func (c ApplyOverridesCommand) Validate() error {
	if c.ScopeID == "" {
		return ErrScopeRequired
	}
	if len(c.Entries) == 0 {
		return ErrNoOverrides
	}
	return nil
}

type ApplyOverridesResult struct {
	ScopeID string `json:"scope_id"`
	Applied int    `json:"applied"`
}

type ApplyOverridesHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *ApplyOverridesHandler) Handle(ctx context.Context, cmd ApplyOverridesCommand) (*ApplyOverridesResult, error) {
	if err := cmd.Validate(); err != nil {
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

	calendar, err := unit.Calendars().Calendar(execCtx, domainavailability.ScopeID(cmd.ScopeID))
	if err != nil {
		return nil, err
	}

	batch := make([]domainavailability.Override, 0, len(cmd.Entries))
	for _, entry := range cmd.Entries {
		override, err := toOverride(entry, calendar.Profile.Base.Currency)
		if err != nil {
			return nil, err
		}
		batch = append(batch, override)
	}

	now := time.Now().UTC()
	if err := calendar.ApplyBulk(batch, now); err != nil {
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
	return &ApplyOverridesResult{ScopeID: cmd.ScopeID, Applied: len(batch)}, nil
}

func (h *ApplyOverridesHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func toOverride(entry OverrideEntry, currency string) (domainavailability.Override, error) {
	date, err := domainrange.ParseDate(entry.Date)
	if err != nil {
		return domainavailability.Override{}, err
	}
	override := domainavailability.Override{
		Date: date,
		Type: pricing.PriceType(entry.Type),
	}
	if entry.Price != nil {
		price, err := money.New(*entry.Price, currency)
		if err != nil {
			return domainavailability.Override{}, err
		}
		override.Price = &price
	}
	return override, nil
}

var _ commands.Handler[ApplyOverridesCommand, *ApplyOverridesResult] = (*ApplyOverridesHandler)(nil)
