package routes

import (
	"errors"
	"io"
	"strconv"
	"time"

	"Paydue/internal/domain/category"
	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
	"Paydue/internal/domain/report"
	"Paydue/internal/domain/settings"
	"Paydue/internal/domain/summary"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/logger"
	"Paydue/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	ObligationService *obligation.Service
	PaymentService    *payment.Service
	SummaryService    *summary.Service
	CategoryService   *category.Service
	SettingsService   *settings.Service
	ReportService     *report.Service
	// Today resolves the default reference date when a request omits as_of.
	Today func() time.Time
}

func (h *Handler) today() time.Time {
	if h.Today != nil {
		return pkg.Date(h.Today())
	}
	return pkg.Today()
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "20")

	var pageNum, limitNum int
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	} else {
		pageNum = 1
	}

	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	} else {
		limitNum = 20
	}

	return &pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	}
}

// parseAsOf reads a YYYY-MM-DD reference date, falling back to today.
func (h *Handler) parseAsOf(raw string) (time.Time, error) {
	asOf, err := pkg.ParseOptionalDate(raw, h.today())
	if err != nil {
		return time.Time{}, appErrors.NewValidationError("as_of", err.Error())
	}
	return asOf, nil
}

// bindOptionalJSON binds the body when there is one. An empty body is not an
// error for endpoints whose fields are all optional.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.ParseValidationErrors(err)
	}
	return nil
}

func parseIDParam(c *gin.Context) (ulid.ULID, error) {
	id, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError("id", "formato invalido")
	}
	return id, nil
}

func parseOptionalULID(c *gin.Context, key string) (*ulid.ULID, error) {
	raw := c.Query(key)
	id, err := pkg.MustParseULIDPtr(&raw)
	if err != nil {
		return nil, appErrors.NewValidationError(key, "formato invalido")
	}
	return id, nil
}

func parseOptionalDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := pkg.ParseDate(raw)
	if err != nil {
		return nil, appErrors.NewValidationError(key, err.Error())
	}
	return &d, nil
}

func parseOptionalKind(c *gin.Context) *obligation.Kind {
	raw := c.Query("kind")
	if raw == "" {
		return nil
	}
	kind := obligation.Kind(raw)
	return &kind
}

func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, appErrors.NewValidationError(key, "deve ser true ou false")
	}
	return v, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
