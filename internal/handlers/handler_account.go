package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dafterhq/fulus/internal/apperrors"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/dto"
	"github.com/dafterhq/fulus/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts and their
// transactions.
type accountHandler struct {
	ledger portssvc.LedgerSvc
}

func newAccountHandler(ledger portssvc.LedgerSvc) *accountHandler {
	return &accountHandler{ledger: ledger}
}

func registerAccountRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvc) {
	h := newAccountHandler(ledger)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountNumber", h.getAccountSummary)
		accounts.GET("/:accountNumber/transactions", h.getTransactionsByDateRange)
		accounts.DELETE("/:accountNumber", h.deleteAccount)
	}
	rg.POST("/transactions", h.createTransaction)
}

// createAccount creates an account, or returns the existing one when the
// account number is already known.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledger.CreateAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account not created"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts returns summaries for every known account.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summaries, err := h.ledger.ListAccountSummaries(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list account summaries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	out := make([]dto.SummaryResponse, len(summaries))
	for i := range summaries {
		out[i] = dto.ToSummaryResponse(&summaries[i])
	}
	c.JSON(http.StatusOK, out)
}

// getAccountSummary returns aggregates plus the transaction list for one
// account.
func (h *accountHandler) getAccountSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	summary, err := h.ledger.GetAccountSummary(c.Request.Context(), accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account " + accountNumber + " not found"})
			return
		}
		logger.Error("Failed to get account summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get account summary"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getTransactionsByDateRange returns transactions between inclusive start
// and end bounds, newest first. An unknown account yields an empty list.
func (h *accountHandler) getTransactionsByDateRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	start, err := parseTimeParam(c.Query("start"), time.Time{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start: " + err.Error()})
		return
	}
	end, err := parseTimeParam(c.Query("end"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end: " + err.Error()})
		return
	}

	transactions, err := h.ledger.GetTransactionsByDateRange(c.Request.Context(), accountNumber, start, end)
	if err != nil {
		logger.Error("Failed to get transactions by date range", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
}

// deleteAccount removes an account and, by cascade, its transactions.
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	if err := h.ledger.DeleteAccount(c.Request.Context(), accountNumber); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account " + accountNumber + " not found"})
			return
		}
		logger.Error("Failed to delete account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.Status(http.StatusNoContent)
}

// createTransaction stores a manually entered transaction through the same
// idempotent path as parsed emails.
func (h *accountHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, created, err := h.ledger.CreateTransaction(c.Request.Context(), req.ToParsedTransaction())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction not created"})
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK // duplicate: prior record, nothing inserted
	}
	c.JSON(status, dto.ToTransactionResponse(txn))
}

// parseTimeParam accepts RFC 3339 timestamps or plain dates.
func parseTimeParam(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
