package handlers

import (
	"net/http"

	"github.com/fintracker/finance-tracker/internal/api/middleware"
	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var input models.TransactionCreate
	if !bindJSON(c, &input) {
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), middleware.GetUserID(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) List(c *gin.Context) {
	filter := &models.TransactionFilter{}

	if t := c.Query("type"); t != "" {
		txType := models.TransactionType(t)
		filter.Type = &txType
	}
	if s := c.Query("startDate"); s != "" {
		t, err := models.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate: " + err.Error()})
			return
		}
		filter.StartDate = &t
	}
	if e := c.Query("endDate"); e != "" {
		t, err := models.ParseDate(e)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate: " + err.Error()})
			return
		}
		filter.EndDate = &t
	}

	transactions, err := h.transactionService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
