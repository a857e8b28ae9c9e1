package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/coinkeep/coinkeep_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("/:id", h.getBudget)
		budgets.GET("", h.listBudgets)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
		budgets.GET("/:id/evaluation", h.evaluateBudget)
	}
}

func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		}
		return
	}

	logger.Info("Budget created successfully", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to get budget from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBudgets", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list budgets from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budgets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": dto.ToListBudgetResponse(budgets)})
}

func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), budgetID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found for update", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		}
		return
	}

	logger.Info("Budget updated successfully", slog.String("budget_id", budgetID))
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	if err := h.budgetService.DeleteBudget(c.Request.Context(), budgetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found for deletion", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to delete budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		}
		return
	}

	logger.Info("Budget deleted successfully", slog.String("budget_id", budgetID))
	c.Status(http.StatusNoContent)
}

func (h *budgetHandler) evaluateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	eval, err := h.budgetService.EvaluateBudget(c.Request.Context(), budgetID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found for evaluation", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to evaluate budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate budget"})
		}
		return
	}

	c.JSON(http.StatusOK, eval)
}
