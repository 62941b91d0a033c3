package routes

import (
	"net/http"

	"Paydue/internal/contracts"

	"github.com/gin-gonic/gin"
)

// Register mounts every API endpoint on api.
func (h *Handler) Register(api *gin.RouterGroup) {
	obligations := api.Group("/obligations")
	{
		obligations.POST("", h.CreateObligation)
		obligations.GET("", h.ListObligations)
		obligations.GET("/:id", h.GetObligation)
		obligations.PATCH("/:id", h.UpdateObligation)
		obligations.DELETE("/:id", h.DeleteObligation)
		obligations.GET("/:id/payments", h.ListObligationPayments)
	}

	payments := api.Group("/payments")
	{
		payments.GET("", h.ListPayments)
		payments.GET("/reminders", h.ListReminders)
		payments.GET("/export", h.ExportPayments)
		payments.POST("/reconcile", h.ReconcilePayments)
		payments.GET("/:id", h.GetPayment)
		payments.POST("/:id/settle", h.SettlePayment)
		payments.POST("/:id/unsettle", h.UnsettlePayment)
	}

	api.GET("/summary", h.GetSummary)

	categories := api.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.PATCH("/:id", h.UpdateCategory)
	}

	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, contracts.HealthResponse{Status: "ok"})
}
