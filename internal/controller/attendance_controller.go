package controller

import (
	"errors"

	"mentorhub_backend/internal/service"
	"mentorhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	AttendanceService *service.AttendanceService
}

func NewAttendanceController(attendanceService *service.AttendanceService) *AttendanceController {
	return &AttendanceController{AttendanceService: attendanceService}
}

// GetRoster godoc
// @Summary Attendance sheet for a session
// @Description Lists registered students with their current presence flags
// @Tags attendance
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=object} "success"
// @Failure 403 {object} util.Response "not the owner"
// @Failure 404 {object} util.Response "not found"
// @Router /api/sessions/{id}/attendance [get]
func (c *AttendanceController) GetRoster(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	roster, err := c.AttendanceService.GetRoster(user.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.replyError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"attendanceData": roster})
}

type MarkAttendanceRequest struct {
	// PresentIDs may be empty: submitting an empty sheet clears all flags.
	PresentIDs []uint `json:"presentIds"`
}

// Mark godoc
// @Summary Submit attendance
// @Description Replaces the presence set for the session with the given student ids
// @Tags attendance
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Param   body body MarkAttendanceRequest true "present student ids"
// @Success 200 {object} util.Response "success"
// @Failure 400 {object} util.Response "unknown student ids"
// @Failure 403 {object} util.Response "not the owner"
// @Router /api/sessions/{id}/attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	if err := c.AttendanceService.Mark(user.UserID, sessionID, req.PresentIDs); err != nil {
		c.replyError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"marked": len(req.PresentIDs)})
}

func (c *AttendanceController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, "Session not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidParticipants):
		util.BadRequest(ctx, "Some selected students are not registered for this session")
	default:
		util.LogInternalError(ctx, err)
	}
}
