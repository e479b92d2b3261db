package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayquote/internal/app/dto"
	quotesapp "stayquote/internal/app/handlers/quotes"
	"stayquote/internal/app/queries"
)

type QuoteHandler struct {
	Queries queries.Bus
}

func (h QuoteHandler) Quote(c *gin.Context) {
	query := quotesapp.GetQuoteQuery{
		ScopeID:  c.Param("id"),
		CheckIn:  c.Query("check_in"),
		CheckOut: c.Query("check_out"),
	}
	result, err := queries.Ask[quotesapp.GetQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
