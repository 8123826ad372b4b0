package handler

import (
	reportapp "github.com/billcraft/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type reportQuery struct {
	Refresh bool `form:"refresh"`
	Months  int  `form:"months" binding:"omitempty,min=1,max=36"`
}

// StatusBreakdown serves the per-status quote aggregate
func (h *ReportHandler) StatusBreakdown(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	breakdown, err := h.reportService.StatusBreakdown(c.Request.Context(), companyID, q.Refresh)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, breakdown)
}

// MonthlyRevenue serves the trailing-months revenue aggregate
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	revenue, err := h.reportService.MonthlyRevenue(c.Request.Context(), companyID, q.Months, q.Refresh)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, revenue)
}
