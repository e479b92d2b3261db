package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayquote/internal/app/commands"
	profilesapp "stayquote/internal/app/handlers/profiles"
)

type ProfileHandler struct {
	Commands        commands.Bus
	DefaultCurrency string
}

type updateProfileRequest struct {
	BasePrice       int64  `json:"base_price"`
	BestDealPrice   int64  `json:"best_deal_price"`
	PeakSeasonPrice int64  `json:"peak_season_price"`
	Currency        string `json:"currency"`
}

func (h ProfileHandler) Update(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = h.DefaultCurrency
	}
	cmd := profilesapp.UpdateProfileCommand{
		CommandID:       uuid.NewString(),
		ScopeID:         c.Param("id"),
		BasePrice:       req.BasePrice,
		BestDealPrice:   req.BestDealPrice,
		PeakSeasonPrice: req.PeakSeasonPrice,
		Currency:        currency,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[profilesapp.UpdateProfileCommand, *profilesapp.UpdateProfileResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ProfileHTTP = ProfileHandler{}
