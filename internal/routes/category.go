package routes

import (
	"net/http"

	"Paydue/internal/contracts"
	"Paydue/internal/domain/category"
	"Paydue/internal/domain/obligation"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/pkg"

	"github.com/gin-gonic/gin"
)

// CreateCategory godoc
// @Summary      Cria uma categoria
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      contracts.CategoryCreateRequest  true  "Categoria"
// @Success      201   {object}  contracts.CategoryCreateResponse
// @Failure      409   {object}  contracts.ErrorResponse
// @Router       /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var body contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cat := &category.Category{
		Name: body.Name,
		Icon: body.Icon,
		Kind: obligation.Kind(body.Kind),
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.Create(ctx, cat); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryCreateResponse{
		Message:  "Categoria criada com sucesso",
		Category: cat,
	})
}

// ListCategories godoc
// @Summary      Lista categorias ativas
// @Tags         categories
// @Produce      json
// @Param        page   query  int  false  "Pagina"
// @Param        limit  query  int  false  "Itens por pagina"
// @Success      200  {object}  pkg.PaginatedResponse[category.Category]
// @Router       /categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	categories, total, err := h.CategoryService.List(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(categories, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	cat, err := h.CategoryService.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategorySingleResponse{Category: cat})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cat := &category.Category{
		Id:   id,
		Name: body.Name,
		Icon: body.Icon,
	}

	ctx := c.Request.Context()
	if err := h.CategoryService.Update(ctx, cat); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategorySingleResponse{Category: cat})
}
