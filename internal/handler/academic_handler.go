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

// AcademicHandler exposes the level/track/subject hierarchy endpoints.
type AcademicHandler struct {
	academicService *service.AcademicService
}

// NewAcademicHandler creates a new AcademicHandler.
func NewAcademicHandler(academicService *service.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicService: academicService}
}

// ListLevels godoc
// GET /api/v1/admin/levels
func (h *AcademicHandler) ListLevels(c *gin.Context) {
	levels, err := h.academicService.ListLevels(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"levels": levels})
}

// CreateLevel godoc
// POST /api/v1/admin/levels
func (h *AcademicHandler) CreateLevel(c *gin.Context) {
	var req model.CreateLevelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	level := &model.Level{Name: req.Name, SortOrder: req.SortOrder}
	if err := h.academicService.CreateLevel(c.Request.Context(), level); err != nil {
		if isPgErrCode(err, "23505") {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"level": level})
}

// UpdateLevel godoc
// PUT /api/v1/admin/levels/:id
func (h *AcademicHandler) UpdateLevel(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateLevelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	level := &model.Level{ID: id, Name: req.Name, SortOrder: req.SortOrder}
	if err := h.academicService.UpdateLevel(c.Request.Context(), level); err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"level": level})
}

// DeleteLevel godoc
// DELETE /api/v1/admin/levels/:id
func (h *AcademicHandler) DeleteLevel(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.academicService.DeleteLevel(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNodeInUse) {
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

// ListTracks godoc
// GET /api/v1/admin/tracks
func (h *AcademicHandler) ListTracks(c *gin.Context) {
	tracks, err := h.academicService.ListTracks(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tracks": tracks})
}

// CreateTrack godoc
// POST /api/v1/admin/tracks
func (h *AcademicHandler) CreateTrack(c *gin.Context) {
	var req model.CreateTrackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	track := &model.Track{LevelID: req.LevelID, Name: req.Name}
	if err := h.academicService.CreateTrack(c.Request.Context(), track); err != nil {
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		if isPgErrCode(err, "23505") {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"track": track})
}

// UpdateTrack godoc
// PUT /api/v1/admin/tracks/:id
func (h *AcademicHandler) UpdateTrack(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateTrackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	track := &model.Track{ID: id, LevelID: req.LevelID, Name: req.Name}
	if err := h.academicService.UpdateTrack(c.Request.Context(), track); err != nil {
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
	response.Success(c, http.StatusOK, gin.H{"track": track})
}

// DeleteTrack godoc
// DELETE /api/v1/admin/tracks/:id
func (h *AcademicHandler) DeleteTrack(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.academicService.DeleteTrack(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNodeInUse) {
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

// ListSubjects godoc
// GET /api/v1/admin/subjects
func (h *AcademicHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.academicService.ListSubjects(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// CreateSubject godoc
// POST /api/v1/admin/subjects
func (h *AcademicHandler) CreateSubject(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{TrackID: req.TrackID, Name: req.Name}
	if err := h.academicService.CreateSubject(c.Request.Context(), subject); err != nil {
		if isPgErrCode(err, "23503") {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		if isPgErrCode(err, "23505") {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subject": subject})
}

// UpdateSubject godoc
// PUT /api/v1/admin/subjects/:id
func (h *AcademicHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{ID: id, TrackID: req.TrackID, Name: req.Name}
	if err := h.academicService.UpdateSubject(c.Request.Context(), subject); err != nil {
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
	response.Success(c, http.StatusOK, gin.H{"subject": subject})
}

// DeleteSubject godoc
// DELETE /api/v1/admin/subjects/:id
func (h *AcademicHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.academicService.DeleteSubject(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNodeInUse) {
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
