package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records/internal/service"
	"github.com/noah-isme/campus-records/pkg/response"
)

// StatisticsHandler exposes enrollment statistics.
type StatisticsHandler struct {
	statistics *service.StatisticsService
}

// NewStatisticsHandler constructs StatisticsHandler.
func NewStatisticsHandler(statistics *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// Summary godoc
// @Summary Campus statistics
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics [get]
func (h *StatisticsHandler) Summary(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.statistics.Summary(c.Request.Context()))
}

// Terms godoc
// @Summary Enrollment counts per term
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/terms [get]
func (h *StatisticsHandler) Terms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.statistics.TermCounts(c.Request.Context()))
}

// Courses godoc
// @Summary Enrollment counts per course
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/courses [get]
func (h *StatisticsHandler) Courses(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.statistics.CourseCounts(c.Request.Context()))
}
