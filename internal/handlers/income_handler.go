package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dalbhaat-backend/internal/repository"
)

type IncomeHandler struct {
	income *repository.IncomeRepository
}

func NewIncomeHandler(income *repository.IncomeRepository) *IncomeHandler {
	return &IncomeHandler{income: income}
}

func (h *IncomeHandler) Total(c *gin.Context) {
	total, err := h.income.Total(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalIncome": total})
}
