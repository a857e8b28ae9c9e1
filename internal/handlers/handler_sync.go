package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/coinkeep/coinkeep_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler handles HTTP requests driving the sync lifecycle.
type syncHandler struct {
	syncService        portssvc.SyncSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade, ts portssvc.TransactionSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss, transactionService: ts}
}

// registerSyncRoutes registers routes related to synchronization.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newSyncHandler(syncService, transactionService)

	sync := rg.Group("/sync")
	{
		sync.POST("/run", h.runSync)
		sync.POST("/remote-changes", h.applyRemoteChange)
		sync.POST("/transactions/:id/queue", h.queueTransaction)
		sync.POST("/transactions/:id/resolve", h.resolveConflict)
		sync.GET("/transactions/:id", h.getSyncStatus)
	}
}

// runSync performs one upload pass over every unsynced transaction.
func (h *syncHandler) runSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to run a sync pass")

	if err := h.syncService.SyncOnce(c.Request.Context()); err != nil {
		logger.Error("Sync pass failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync pass failed"})
		return
	}

	logger.Info("Sync pass completed")
	c.Status(http.StatusNoContent)
}

// applyRemoteChange ingests one record from the remote change feed.
func (h *syncHandler) applyRemoteChange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var remote dto.RemoteTransaction
	if err := c.ShouldBindJSON(&remote); err != nil {
		logger.Warn("Failed to bind JSON for ApplyRemoteChange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("transaction_id", remote.TransactionID))
	logger.Info("Received remote change")

	if err := h.syncService.ApplyRemoteChange(c.Request.Context(), remote); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error applying remote change", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to apply remote change", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply remote change"})
		}
		return
	}

	logger.Info("Remote change applied")
	c.Status(http.StatusNoContent)
}

// queueTransaction marks a transaction for upload (LOCAL -> PENDING).
func (h *syncHandler) queueTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	if err := h.syncService.MarkPending(c.Request.Context(), transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for queueing", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, domain.ErrInvalidSyncTransition) {
			logger.Warn("Transaction cannot be queued", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to queue transaction for sync", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue transaction"})
		}
		return
	}

	logger.Info("Transaction queued for sync", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// resolveConflict closes a conflicted transaction with the caller's verdict.
func (h *syncHandler) resolveConflict(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveConflict", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID), slog.String("resolution", string(req.Resolution)))
	logger.Info("Received request to resolve conflict")

	txn, err := h.syncService.ResolveConflict(c.Request.Context(), transactionID, req.Resolution)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for conflict resolution")
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, domain.ErrInvalidSyncTransition) {
			logger.Warn("Transaction is not in a resolvable state", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve conflict"})
		}
		return
	}

	logger.Info("Conflict resolved")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getSyncStatus reports a transaction's sync lifecycle position.
func (h *syncHandler) getSyncStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for sync status", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction for sync status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sync status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SyncStatusResponse{
		TransactionID: txn.TransactionID,
		SyncStatus:    txn.SyncStatus,
		RemoteVersion: txn.RemoteVersion,
	})
}
