package routes

import (
	"net/http"

	"Paydue/internal/domain/report"
	"Paydue/internal/logger"

	"github.com/gin-gonic/gin"
)

// ExportPayments godoc
// @Summary      Exporta as parcelas filtradas em XLSX
// @Tags         payments
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from         query  string  false  "Vencimento inicial (AAAA-MM-DD)"
// @Param        to           query  string  false  "Vencimento final (AAAA-MM-DD)"
// @Param        kind         query  string  false  "expense, income ou receivable"
// @Param        status       query  string  false  "pending, overdue, paid ou received"
// @Param        as_of        query  string  false  "Data de referencia (AAAA-MM-DD)"
// @Success      200  {file}    file
// @Failure      400  {object}  contracts.ErrorResponse
// @Router       /payments/export [get]
func (h *Handler) ExportPayments(c *gin.Context) {
	filter, err := parsePaymentFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	asOf, err := h.parseAsOf(c.Query("as_of"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	f, err := h.ReportService.Export(ctx, filter, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="`+report.FileName(asOf)+`"`)
	c.Header("Content-Type", report.ContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		logger.Error().Err(err).Msg("Falha ao escrever planilha")
	}
}
