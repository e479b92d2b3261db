package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityapp "stayquote/internal/app/handlers/availability"
	domainavailability "stayquote/internal/domain/availability"
	"stayquote/internal/domain/pricing"
	domainrange "stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
)

// respondError maps each engine error kind to its own status and message so
// clients can tell a malformed date from an inverted range from a broken
// profile without parsing prose.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainrange.ErrMalformedDate):
		c.JSON(http.StatusBadRequest, gin.H{"code": "malformed_date", "error": "dates must be real calendar dates in YYYY-MM-DD form"})
	case errors.Is(err, availabilityapp.ErrNoOverrides):
		c.JSON(http.StatusBadRequest, gin.H{"code": "empty_batch", "error": "the overrides batch must contain at least one entry"})
	case errors.Is(err, domainrange.ErrInvertedRange):
		c.JSON(http.StatusBadRequest, gin.H{"code": "inverted_range", "error": "checkout must be strictly after check-in"})
	case errors.Is(err, pricing.ErrNonPositivePrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "non_positive_price", "error": "all prices must be greater than zero"})
	case errors.Is(err, pricing.ErrInvalidBestDeal):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "invalid_best_deal", "error": "best deal price must be below the base price"})
	case errors.Is(err, pricing.ErrInvalidPeakSeason):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "invalid_peak_season", "error": "peak season price must be above the base price"})
	case errors.Is(err, pricing.ErrProfileInvalid):
		c.JSON(http.StatusConflict, gin.H{"code": "profile_invalid", "error": "the scope's pricing profile has not passed validation"})
	case errors.Is(err, domainavailability.ErrCalendarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "scope_not_found", "error": "no calendar exists for this scope"})
	case errors.Is(err, domainavailability.ErrInvalidOverride):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "invalid_override", "error": "overrides need a date and a known price type"})
	case errors.Is(err, money.ErrCurrencyMismatch), errors.Is(err, money.ErrInvalidCurrency):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "currency_error", "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
