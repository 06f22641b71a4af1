package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records/internal/models"
	"github.com/noah-isme/campus-records/internal/service"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
	"github.com/noah-isme/campus-records/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type gradePayload struct {
	Grade string `json:"grade" binding:"required"`
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var enrollments []models.Enrollment
	if studentID := c.Query("studentId"); studentID != "" {
		enrollments = h.enrollments.ListByStudent(ctx, studentID)
	} else {
		enrollments = h.enrollments.List(ctx)
	}
	response.List(c, enrollments, len(enrollments))
}

// Create godoc
// @Summary Enroll student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Term = models.Term(strings.ToUpper(string(req.Term)))
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// RecordGrade godoc
// @Summary Record grade for an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param courseCode path string true "Course code"
// @Param term path string true "Term (FALL, WINTER)"
// @Param payload body gradePayload true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{studentId}/{courseCode}/{term}/grade [put]
func (h *EnrollmentHandler) RecordGrade(c *gin.Context) {
	var payload gradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req := service.RecordGradeRequest{
		StudentID:  c.Param("studentId"),
		CourseCode: c.Param("courseCode"),
		Term:       models.Term(strings.ToUpper(c.Param("term"))),
		Grade:      models.Grade(strings.ToUpper(payload.Grade)),
	}
	enrollment, err := h.enrollments.RecordGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}
