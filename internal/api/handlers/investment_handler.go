package handlers

import (
	"net/http"

	"github.com/fintracker/finance-tracker/internal/api/middleware"
	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	investmentService service.InvestmentService
}

func NewInvestmentHandler(investmentService service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	var input models.InvestmentCreate
	if !bindJSON(c, &input) {
		return
	}

	inv, err := h.investmentService.Create(c.Request.Context(), middleware.GetUserID(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *InvestmentHandler) List(c *gin.Context) {
	var investmentType *string
	if t := c.Query("type"); t != "" {
		investmentType = &t
	}

	investments, err := h.investmentService.List(c.Request.Context(), middleware.GetUserID(c), investmentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, investments)
}

func (h *InvestmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "investment")
	if !ok {
		return
	}

	var input models.InvestmentUpdate
	if !bindJSON(c, &input) {
		return
	}

	inv, err := h.investmentService.Update(c.Request.Context(), middleware.GetUserID(c), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *InvestmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "investment")
	if !ok {
		return
	}

	if err := h.investmentService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted"})
}
