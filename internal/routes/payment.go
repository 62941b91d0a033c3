package routes

import (
	"net/http"

	"Paydue/internal/contracts"
	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
	"Paydue/internal/pkg"

	"github.com/gin-gonic/gin"
)

// ListPayments godoc
// @Summary      Lista parcelas com status derivado
// @Tags         payments
// @Produce      json
// @Param        obligation_id     query  string  false  "Obrigacao"
// @Param        from              query  string  false  "Vencimento inicial (AAAA-MM-DD)"
// @Param        to                query  string  false  "Vencimento final (AAAA-MM-DD)"
// @Param        kind              query  string  false  "expense, income ou receivable"
// @Param        category_id       query  string  false  "Categoria"
// @Param        status            query  string  false  "pending, overdue, paid ou received"
// @Param        include_orphaned  query  bool    false  "Inclui parcelas orfas"
// @Param        as_of             query  string  false  "Data de referencia (AAAA-MM-DD)"
// @Param        page              query  int     false  "Pagina"
// @Param        limit             query  int     false  "Itens por pagina"
// @Success      200  {object}  pkg.PaginatedResponse[obligation.PaymentView]
// @Failure      400  {object}  contracts.ErrorResponse
// @Router       /payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
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

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	payments, total, err := h.PaymentService.ListPayments(ctx, filter, asOf, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(payments, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

// GetPayment godoc
// @Summary      Busca uma parcela
// @Tags         payments
// @Produce      json
// @Param        id     path      string  true   "ID da parcela"
// @Param        as_of  query     string  false  "Data de referencia (AAAA-MM-DD)"
// @Success      200    {object}  contracts.PaymentSingleResponse
// @Failure      404    {object}  contracts.ErrorResponse
// @Router       /payments/{id} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	id, err := parseIDParam(c)
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
	view, err := h.PaymentService.GetPayment(ctx, id, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PaymentSingleResponse{Payment: view})
}

// SettlePayment godoc
// @Summary      Marca uma parcela como paga ou recebida
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true   "ID da parcela"
// @Param        body  body      contracts.SettlementRequest  false  "Data da quitacao"
// @Success      200   {object}  contracts.PaymentSettlementResponse
// @Failure      404   {object}  contracts.ErrorResponse
// @Router       /payments/{id}/settle [post]
func (h *Handler) SettlePayment(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.SettlementRequest
	if err := bindOptionalJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	asOf, err := h.parseAsOf(body.AsOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	view, err := h.PaymentService.Settle(ctx, id, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PaymentSettlementResponse{
		Message: "Parcela quitada com sucesso",
		Payment: view,
	})
}

// UnsettlePayment godoc
// @Summary      Desfaz a quitacao de uma parcela
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true   "ID da parcela"
// @Param        body  body      contracts.SettlementRequest  false  "Data de referencia"
// @Success      200   {object}  contracts.PaymentSettlementResponse
// @Failure      400   {object}  contracts.ErrorResponse
// @Failure      404   {object}  contracts.ErrorResponse
// @Router       /payments/{id}/unsettle [post]
func (h *Handler) UnsettlePayment(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.SettlementRequest
	if err := bindOptionalJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	asOf, err := h.parseAsOf(body.AsOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	view, err := h.PaymentService.Unsettle(ctx, id, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PaymentSettlementResponse{
		Message: "Quitacao desfeita com sucesso",
		Payment: view,
	})
}

// ReconcilePayments godoc
// @Summary      Recalcula o status de todas as parcelas ativas
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      contracts.SettlementRequest  false  "Data de referencia"
// @Success      200   {object}  contracts.ReconcileResponse
// @Router       /payments/reconcile [post]
func (h *Handler) ReconcilePayments(c *gin.Context) {
	var body contracts.SettlementRequest
	if err := bindOptionalJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	asOf, err := h.parseAsOf(body.AsOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.PaymentService.ReconcileAll(ctx, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ReconcileResponse{Reconciliation: result})
}

// ListReminders godoc
// @Summary      Lista lembretes de parcelas proximas do vencimento
// @Tags         payments
// @Produce      json
// @Param        as_of  query     string  false  "Data de referencia (AAAA-MM-DD)"
// @Success      200    {object}  contracts.RemindersResponse
// @Router       /payments/reminders [get]
func (h *Handler) ListReminders(c *gin.Context) {
	asOf, err := h.parseAsOf(c.Query("as_of"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	reminders, err := h.PaymentService.UpcomingReminders(ctx, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RemindersResponse{
		AsOf:      asOf.Format(pkg.DateLayout),
		Reminders: reminders,
	})
}

func parsePaymentFilter(c *gin.Context) (payment.ListFilter, error) {
	var filter payment.ListFilter

	obligationID, err := parseOptionalULID(c, "obligation_id")
	if err != nil {
		return filter, err
	}
	categoryID, err := parseOptionalULID(c, "category_id")
	if err != nil {
		return filter, err
	}
	from, err := parseOptionalDate(c, "from")
	if err != nil {
		return filter, err
	}
	to, err := parseOptionalDate(c, "to")
	if err != nil {
		return filter, err
	}
	includeOrphaned, err := parseBoolQuery(c, "include_orphaned")
	if err != nil {
		return filter, err
	}

	filter.ObligationId = obligationID
	filter.CategoryId = categoryID
	filter.From = from
	filter.To = to
	filter.Kind = parseOptionalKind(c)
	filter.IncludeOrphaned = includeOrphaned
	if raw := c.Query("status"); raw != "" {
		status := obligation.Status(raw)
		filter.Status = &status
	}
	return filter, nil
}
