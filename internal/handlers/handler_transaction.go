package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
	"github.com/finoffice/finoffice_backend/internal/middleware"
)

// transactionHandler handles HTTP requests for the ledger surface.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	accountService     portssvc.AccountSvcFacade
	categoryService    portssvc.CategorySvcFacade
	currencyService    portssvc.CurrencySvcFacade
	contractorService  portssvc.ContractorSvc
}

func newTransactionHandler(
	ts portssvc.TransactionSvcFacade,
	as portssvc.AccountSvcFacade,
	cs portssvc.CategorySvcFacade,
	curs portssvc.CurrencySvcFacade,
	cons portssvc.ContractorSvc,
) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		accountService:     as,
		categoryService:    cs,
		currencyService:    curs,
		contractorService:  cons,
	}
}

// RegisterTransactionRoutes registers the ledger routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTransactionHandler(
		services.Transaction,
		services.Account,
		services.Category,
		services.Currency,
		services.Contractor,
	)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/new", h.newTransactionForm)
		transactions.GET("/:id", h.getTransaction)
		transactions.PATCH("/:id/status", h.updateStatus)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.DELETE("", h.deleteTransactions)
	}

	rg.GET("/contractors", h.listContractors)
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.transactionService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns, time.Now()),
	})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn, time.Now()))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListTransactionsParams{}
	if v := c.Query("period_from"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_from, want YYYY-MM-DD"})
			return
		}
		params.PeriodFrom = &t
	}
	if v := c.Query("period_to"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_to, want YYYY-MM-DD"})
			return
		}
		params.PeriodTo = &t
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		params.Limit = limit
	}
	if v := c.Query("next_token"); v != "" {
		params.NextToken = &v
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transactionService.UpdateStatus(c.Request.Context(), transactionID, req, actorUserID); err != nil {
		respondTransactionError(c, logger, err, "Failed to update transaction status")
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{Result: true, Message: "status updated"})
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondTransactionError(c, logger, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{Result: true, Message: "transaction deleted"})
}

func (h *transactionHandler) deleteTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DeleteTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.transactionService.DeleteTransactions(c.Request.Context(), req.IDs); err != nil {
		respondTransactionError(c, logger, err, "Failed to delete transactions")
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{Result: true, Message: "transactions deleted"})
}

// newTransactionForm bundles the reference data the creation form needs.
func (h *transactionHandler) newTransactionForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	accounts, err := h.accountService.ListAccounts(ctx)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to load accounts")
		return
	}
	categories, err := h.categoryService.ListCategories(ctx)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to load categories")
		return
	}
	currencies, err := h.currencyService.ListCurrencies(ctx)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to load currencies")
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionFormResponse{
		Accounts:   dto.ToAccountResponses(accounts),
		Categories: dto.ToCategoryResponses(categories),
		Currencies: dto.ToCurrencyResponses(currencies),
	})
}

// listContractors serves the creation form's counter-party autocomplete.
// The widget query parameter names the category widget being filled.
func (h *transactionHandler) listContractors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	widget := domain.CategoryWidget(c.Query("widget"))
	kind, ok := kindForWidgetParam(widget)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown widget"})
		return
	}

	contractors, err := h.contractorService.ListContractors(c.Request.Context(), kind)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to list contractors")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractorResponses(contractors))
}

func kindForWidgetParam(widget domain.CategoryWidget) (domain.EntityKind, bool) {
	switch widget {
	case domain.WidgetOffice:
		return domain.EntityOffice, true
	case domain.WidgetCustomer:
		return domain.EntityCustomer, true
	case domain.WidgetUser:
		return domain.EntityUser, true
	default:
		return "", false
	}
}

// respondTransactionError maps service errors onto HTTP statuses.
func respondTransactionError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		logger.Warn("Invalid status transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrCurrencyMismatch):
		logger.Warn("Currency mismatch", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
