package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/response"
	"github.com/tutorium/tutorium-backend/internal/service"
	"github.com/tutorium/tutorium-backend/internal/validator"
)

// ClassHandler exposes class management endpoints: CRUD, rosters, weekly
// slots and price overrides.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List godoc
// GET /api/v1/admin/classes
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// Get godoc
// GET /api/v1/admin/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Create godoc
// POST /api/v1/admin/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		Name:                 req.Name,
		SubjectID:            req.SubjectID,
		TeacherName:          req.TeacherName,
		PricingMode:          req.PricingMode,
		PerStudentCents:      req.PerStudentCents,
		FixedTotalCents:      req.FixedTotalCents,
		TeacherFixedPayCents: req.TeacherFixedPayCents,
	}
	if err := h.classService.Create(c.Request.Context(), class); err != nil {
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// Update godoc
// PUT /api/v1/admin/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		ID:                   id,
		Name:                 req.Name,
		SubjectID:            req.SubjectID,
		TeacherName:          req.TeacherName,
		PricingMode:          req.PricingMode,
		PerStudentCents:      req.PerStudentCents,
		FixedTotalCents:      req.FixedTotalCents,
		TeacherFixedPayCents: req.TeacherFixedPayCents,
	}
	if err := h.classService.Update(c.Request.Context(), class); err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Delete godoc
// DELETE /api/v1/admin/classes/:id
// Classes referenced by invoice line items cannot be deleted.
func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListStudents godoc
// GET /api/v1/admin/classes/:id/students
func (h *ClassHandler) ListStudents(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	studentIDs, err := h.classService.ListEnrolledStudentIDs(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student_ids": studentIDs})
}

// Enroll godoc
// POST /api/v1/admin/classes/:id/students
func (h *ClassHandler) Enroll(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.EnrollStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classService.Enroll(c.Request.Context(), id, req.StudentID); err != nil {
		if isPgErrCode(err, "23505") {
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
			return
		}
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"enrolled": true})
}

// Unenroll godoc
// DELETE /api/v1/admin/classes/:id/students/:studentId
func (h *ClassHandler) Unenroll(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	studentID, ok := parseIntParam(c, "studentId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	affected, err := h.classService.Unenroll(c.Request.Context(), id, studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if affected == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotEnrolled)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unenrolled": true})
}

// ListTimes godoc
// GET /api/v1/admin/classes/:id/times
func (h *ClassHandler) ListTimes(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	times, err := h.classService.ListTimes(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"times": times})
}

// CreateTime godoc
// POST /api/v1/admin/classes/:id/times
func (h *ClassHandler) CreateTime(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassTimeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	t := &model.ClassTime{
		ClassID:      id,
		DayOfWeek:    req.DayOfWeek,
		StartMinutes: req.StartMinutes,
		EndMinutes:   req.EndMinutes,
	}
	if err := h.classService.CreateTime(c.Request.Context(), t); err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidTimeRange)
			return
		}
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"time": t})
}

// UpdateTime godoc
// PUT /api/v1/admin/classes/:id/times/:timeId
func (h *ClassHandler) UpdateTime(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	timeID, ok := parseIntParam(c, "timeId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassTimeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	t := &model.ClassTime{
		ID:           timeID,
		ClassID:      id,
		DayOfWeek:    req.DayOfWeek,
		StartMinutes: req.StartMinutes,
		EndMinutes:   req.EndMinutes,
	}
	if err := h.classService.UpdateTime(c.Request.Context(), t); err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidTimeRange)
			return
		}
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"time": t})
}

// DeleteTime godoc
// DELETE /api/v1/admin/classes/:id/times/:timeId
func (h *ClassHandler) DeleteTime(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	timeID, ok := parseIntParam(c, "timeId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.DeleteTime(c.Request.Context(), id, timeID); err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListOverrides godoc
// GET /api/v1/admin/classes/:id/overrides
func (h *ClassHandler) ListOverrides(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	overrides, err := h.classService.ListOverrides(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"overrides": overrides})
}

// SetOverride godoc
// PUT /api/v1/admin/classes/:id/overrides
// Creates or replaces one student's override in the class.
func (h *ClassHandler) SetOverride(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SetPriceOverrideRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	o := &model.PriceOverride{
		ClassID:       id,
		StudentID:     req.StudentID,
		OverrideCents: req.OverrideCents,
	}
	if err := h.classService.SetOverride(c.Request.Context(), o); err != nil {
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"override": o})
}

// DeleteOverride godoc
// DELETE /api/v1/admin/classes/:id/overrides/:studentId
func (h *ClassHandler) DeleteOverride(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	studentID, ok := parseIntParam(c, "studentId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.DeleteOverride(c.Request.Context(), id, studentID); err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
