package routes

import (
	"net/http"

	"Paydue/internal/contracts"
	"Paydue/internal/domain/obligation"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/pkg"

	"github.com/gin-gonic/gin"
)

// CreateObligation godoc
// @Summary      Cria uma obrigacao e gera suas parcelas
// @Tags         obligations
// @Accept       json
// @Produce      json
// @Param        body  body      contracts.ObligationCreateRequest  true  "Obrigacao"
// @Success      201   {object}  contracts.ObligationCreateResponse
// @Failure      400   {object}  contracts.ErrorResponse
// @Router       /obligations [post]
func (h *Handler) CreateObligation(c *gin.Context) {
	var body contracts.ObligationCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato invalido"))
		return
	}

	startDate, err := pkg.ParseDate(body.StartDate)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("start_date", err.Error()))
		return
	}

	req := &obligation.CreateRequest{
		CategoryId:         categoryID,
		Kind:               obligation.Kind(body.Kind),
		Title:              body.Title,
		Amount:             body.Amount,
		OccurrenceCount:    body.OccurrenceCount,
		StartDate:          startDate,
		ScheduleKind:       obligation.ScheduleKind(body.ScheduleKind),
		ReminderDaysBefore: body.ReminderDaysBefore,
	}
	if req.ScheduleKind == obligation.ScheduleOnce && req.OccurrenceCount == 0 {
		req.OccurrenceCount = 1
	}

	ctx := c.Request.Context()
	ob, err := h.ObligationService.Create(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ObligationCreateResponse{
		Message:    "Obrigacao criada com sucesso",
		Obligation: ob,
	})
}

// ListObligations godoc
// @Summary      Lista obrigacoes
// @Tags         obligations
// @Produce      json
// @Param        kind              query  string  false  "expense, income ou receivable"
// @Param        category_id       query  string  false  "Categoria"
// @Param        include_inactive  query  bool    false  "Inclui obrigacoes desativadas"
// @Param        page              query  int     false  "Pagina"
// @Param        limit             query  int     false  "Itens por pagina"
// @Success      200  {object}  pkg.PaginatedResponse[obligation.Obligation]
// @Router       /obligations [get]
func (h *Handler) ListObligations(c *gin.Context) {
	categoryID, err := parseOptionalULID(c, "category_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	includeInactive, err := parseBoolQuery(c, "include_inactive")
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter := obligation.ListFilter{
		Kind:            parseOptionalKind(c),
		CategoryId:      categoryID,
		IncludeInactive: includeInactive,
	}
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	obligations, total, err := h.ObligationService.List(ctx, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(obligations, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

// GetObligation godoc
// @Summary      Busca uma obrigacao
// @Tags         obligations
// @Produce      json
// @Param        id   path      string  true  "ID da obrigacao"
// @Success      200  {object}  contracts.ObligationSingleResponse
// @Failure      404  {object}  contracts.ErrorResponse
// @Router       /obligations/{id} [get]
func (h *Handler) GetObligation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	ob, err := h.ObligationService.Get(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ObligationSingleResponse{Obligation: ob})
}

// UpdateObligation godoc
// @Summary      Atualiza uma obrigacao
// @Description  Mudancas de valor, quantidade, data inicial ou tipo de agendamento regeneram as parcelas em aberto.
// @Tags         obligations
// @Accept       json
// @Produce      json
// @Param        id    path      string                             true  "ID da obrigacao"
// @Param        body  body      contracts.ObligationUpdateRequest  true  "Campos alterados"
// @Success      200   {object}  contracts.ObligationCreateResponse
// @Failure      400   {object}  contracts.ErrorResponse
// @Failure      404   {object}  contracts.ErrorResponse
// @Router       /obligations/{id} [patch]
func (h *Handler) UpdateObligation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.ObligationUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req, err := toUpdateRequest(&body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	ob, err := h.ObligationService.Update(ctx, id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ObligationCreateResponse{
		Message:    "Obrigacao atualizada com sucesso",
		Obligation: ob,
	})
}

// DeleteObligation godoc
// @Summary      Desativa uma obrigacao e suas parcelas em aberto
// @Tags         obligations
// @Produce      json
// @Param        id   path      string  true  "ID da obrigacao"
// @Success      200  {object}  contracts.MessageResponse
// @Failure      404  {object}  contracts.ErrorResponse
// @Router       /obligations/{id} [delete]
func (h *Handler) DeleteObligation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.ObligationService.Deactivate(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Obrigacao removida com sucesso"})
}

// ListObligationPayments godoc
// @Summary      Lista as parcelas de uma obrigacao
// @Tags         obligations
// @Produce      json
// @Param        id     path      string  true   "ID da obrigacao"
// @Param        as_of  query     string  false  "Data de referencia (AAAA-MM-DD)"
// @Success      200    {object}  contracts.ObligationPaymentsResponse
// @Failure      404    {object}  contracts.ErrorResponse
// @Router       /obligations/{id}/payments [get]
func (h *Handler) ListObligationPayments(c *gin.Context) {
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
	payments, err := h.PaymentService.ListObligationPayments(ctx, id, asOf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ObligationPaymentsResponse{
		ObligationId: id.String(),
		AsOf:         asOf.Format(pkg.DateLayout),
		Payments:     payments,
	})
}

func toUpdateRequest(body *contracts.ObligationUpdateRequest) (*obligation.UpdateRequest, error) {
	req := &obligation.UpdateRequest{
		Title:              body.Title,
		Amount:             body.Amount,
		OccurrenceCount:    body.OccurrenceCount,
		ReminderDaysBefore: body.ReminderDaysBefore,
		ClearReminderDays:  body.ClearReminderDays,
	}

	if body.CategoryId != nil {
		categoryID, err := pkg.ParseULID(*body.CategoryId)
		if err != nil {
			return nil, appErrors.NewValidationError("category_id", "formato invalido")
		}
		req.CategoryId = &categoryID
	}
	if body.Kind != nil {
		kind := obligation.Kind(*body.Kind)
		req.Kind = &kind
	}
	if body.ScheduleKind != nil {
		scheduleKind := obligation.ScheduleKind(*body.ScheduleKind)
		req.ScheduleKind = &scheduleKind
		if scheduleKind == obligation.ScheduleOnce && req.OccurrenceCount == nil {
			one := 1
			req.OccurrenceCount = &one
		}
	}
	if body.StartDate != nil {
		startDate, err := pkg.ParseDate(*body.StartDate)
		if err != nil {
			return nil, appErrors.NewValidationError("start_date", err.Error())
		}
		req.StartDate = &startDate
	}

	return req, nil
}
