package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayquote/internal/app/commands"
	"stayquote/internal/app/dto"
	availabilityapp "stayquote/internal/app/handlers/availability"
	"stayquote/internal/app/queries"
)

type CalendarHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
}

func (h CalendarHandler) Calendar(c *gin.Context) {
	query := availabilityapp.GetCalendarQuery{
		ScopeID: c.Param("id"),
		From:    c.Query("from"),
		To:      c.Query("to"),
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type overrideRequest struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Price *int64 `json:"price"`
}

type applyOverridesRequest struct {
	Overrides []overrideRequest `json:"overrides"`
}

func (h CalendarHandler) ApplyOverrides(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req applyOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entries := make([]availabilityapp.OverrideEntry, 0, len(req.Overrides))
	for _, o := range req.Overrides {
		entries = append(entries, availabilityapp.OverrideEntry{Date: o.Date, Type: o.Type, Price: o.Price})
	}
	cmd := availabilityapp.ApplyOverridesCommand{
		CommandID:       uuid.NewString(),
		ScopeID:         c.Param("id"),
		Entries:         entries,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[availabilityapp.ApplyOverridesCommand, *availabilityapp.ApplyOverridesResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

var _ CalendarHTTP = CalendarHandler{}
