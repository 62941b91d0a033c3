package routes

import (
	"net/http"

	"Paydue/internal/contracts"
	"Paydue/internal/domain/summary"

	"github.com/gin-gonic/gin"
)

// GetSummary godoc
// @Summary      Totais, contagem por status e series por mes e categoria
// @Tags         summary
// @Produce      json
// @Param        from         query     string  false  "Vencimento inicial (AAAA-MM-DD)"
// @Param        to           query     string  false  "Vencimento final (AAAA-MM-DD)"
// @Param        kind         query     string  false  "expense, income ou receivable"
// @Param        category_id  query     string  false  "Categoria"
// @Param        as_of        query     string  false  "Data de referencia (AAAA-MM-DD)"
// @Success      200          {object}  contracts.SummaryResponse
// @Failure      400          {object}  contracts.ErrorResponse
// @Router       /summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	from, err := parseOptionalDate(c, "from")
	if err != nil {
		h.respondError(c, err)
		return
	}
	to, err := parseOptionalDate(c, "to")
	if err != nil {
		h.respondError(c, err)
		return
	}
	categoryID, err := parseOptionalULID(c, "category_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	asOf, err := h.parseAsOf(c.Query("as_of"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter := summary.Filter{
		From:       from,
		To:         to,
		Kind:       parseOptionalKind(c),
		CategoryId: categoryID,
	}

	ctx := c.Request.Context()
	result, err := h.SummaryService.Summarize(ctx, filter, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.SummaryResponse{Summary: result})
}
