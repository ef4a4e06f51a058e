package handlers

import (
	"net/http"

	"github.com/fintracker/finance-tracker/internal/api/middleware"
	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var input models.GoalCreate
	if !bindJSON(c, &input) {
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var status *models.GoalStatus
	if s := c.Query("status"); s != "" {
		st := models.GoalStatus(s)
		status = &st
	}

	goals, err := h.goalService.List(c.Request.Context(), userID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.goalService.Categories())
}

func (h *GoalHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "goal")
	if !ok {
		return
	}

	goal, err := h.goalService.GetByID(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "goal")
	if !ok {
		return
	}

	var input models.GoalUpdate
	if !bindJSON(c, &input) {
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), middleware.GetUserID(c), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "goal")
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}

func (h *GoalHandler) AddFunds(c *gin.Context) {
	id, ok := parseID(c, "goal")
	if !ok {
		return
	}

	var input models.AddFundsRequest
	if !bindJSON(c, &input) {
		return
	}

	goal, err := h.goalService.AddFunds(c.Request.Context(), middleware.GetUserID(c), id, *input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Seed(c *gin.Context) {
	count, err := h.goalService.SeedSamples(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SeedResult{
		Message: "Sample goals seeded successfully",
		Count:   count,
	})
}
