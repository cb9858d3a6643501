package controller

import (
	"errors"
	"time"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/service"
	"mentorhub_backend/internal/util"
	"mentorhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
	StorageService *service.StorageService
}

func NewSessionController(sessionService *service.SessionService, storageService *service.StorageService) *SessionController {
	return &SessionController{
		SessionService: sessionService,
		StorageService: storageService,
	}
}

// swagger:model CreateSessionRequest
type CreateSessionRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	CourseName      string    `json:"courseName"`
	Date            time.Time `json:"date" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
	Capacity        int       `json:"capacity" binding:"required,min=1"`
	ZoomLink        string    `json:"zoomLink"`
}

// Create godoc
// @Summary Create a session
// @Tags sessions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateSessionRequest true "session details"
// @Success 201 {object} util.Response{data=model.Session} "created"
// @Failure 400 {object} util.Response "invalid request"
// @Router /api/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Create(user.UserID, service.CreateSessionInput{
		Title:           req.Title,
		Description:     req.Description,
		CourseName:      req.CourseName,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		ZoomLink:        req.ZoomLink,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// Get godoc
// @Summary Fetch one session
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=model.Session} "success"
// @Failure 404 {object} util.Response "not found"
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	session, err := c.SessionService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// swagger:model UpdateSessionRequest
type UpdateSessionRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	CourseName      *string    `json:"courseName"`
	Date            *time.Time `json:"date"`
	DurationMinutes *int       `json:"durationMinutes"`
	Capacity        *int       `json:"capacity"`
	ZoomLink        *string    `json:"zoomLink"`
}

// Update godoc
// @Summary Edit a session
// @Tags sessions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Param   body body UpdateSessionRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Session} "success"
// @Failure 403 {object} util.Response "not the owner"
// @Failure 404 {object} util.Response "not found"
// @Router /api/sessions/{id} [put]
func (c *SessionController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Update(user.UserID, util.MustParseUint(ctx.Param("id")), service.UpdateSessionInput{
		Title:           req.Title,
		Description:     req.Description,
		CourseName:      req.CourseName,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		ZoomLink:        req.ZoomLink,
	})
	if err != nil {
		c.replyError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// Delete godoc
// @Summary Delete a session
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response "success"
// @Failure 403 {object} util.Response "not the owner"
// @Failure 404 {object} util.Response "not found"
// @Router /api/sessions/{id} [delete]
func (c *SessionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SessionService.Delete(user.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Start godoc
// @Summary Start a session
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=model.Session} "success"
// @Failure 400 {object} util.Response "invalid transition"
// @Router /api/sessions/{id}/start [post]
func (c *SessionController) Start(ctx *gin.Context) {
	c.transition(ctx, model.SessionOngoing)
}

// End godoc
// @Summary End a session
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=model.Session} "success"
// @Failure 400 {object} util.Response "invalid transition"
// @Router /api/sessions/{id}/end [post]
func (c *SessionController) End(ctx *gin.Context) {
	c.transition(ctx, model.SessionCompleted)
}

// Cancel godoc
// @Summary Cancel a session
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=model.Session} "success"
// @Failure 400 {object} util.Response "invalid transition"
// @Router /api/sessions/{id}/cancel [post]
func (c *SessionController) Cancel(ctx *gin.Context) {
	c.transition(ctx, model.SessionCanceled)
}

func (c *SessionController) transition(ctx *gin.Context, target model.SessionStatus) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.Transition(user.UserID, util.MustParseUint(ctx.Param("id")), target)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Register godoc
// @Summary Book a session
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response "success"
// @Failure 400 {object} util.Response "session full or already booked"
// @Failure 404 {object} util.Response "not found or canceled"
// @Router /api/sessions/{id}/register [post]
func (c *SessionController) Register(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SessionService.Register(user.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		monitoring.RegistrationCounter.WithLabelValues(registrationOutcome(err)).Inc()
		c.replyError(ctx, err)
		return
	}
	monitoring.RegistrationCounter.WithLabelValues("booked").Inc()
	util.Success(ctx, nil)
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, util.ErrSessionFull):
		return "full"
	case errors.Is(err, util.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, util.ErrSessionStarted):
		return "too_late"
	case errors.Is(err, util.ErrSessionNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// Unregister godoc
// @Summary Cancel a booking
// @Tags sessions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response "success"
// @Failure 404 {object} util.Response "not registered"
// @Router /api/sessions/{id}/unregister [post]
func (c *SessionController) Unregister(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SessionService.Unregister(user.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadRecording godoc
// @Summary Attach a recording
// @Description Uploads and probes a recording, then publishes its URL on the session
// @Tags sessions
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Param   file formData file true "recording file"
// @Success 200 {object} util.Response{data=model.Session} "success"
// @Failure 400 {object} util.Response "bad file or session not completed"
// @Router /api/sessions/{id}/recording [post]
func (c *SessionController) UploadRecording(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "recording file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	sessionID := util.MustParseUint(ctx.Param("id"))
	url, info, err := c.StorageService.UploadRecording(
		ctx.Request.Context(),
		sessionID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.AttachRecording(user.UserID, sessionID, url)
	if err != nil {
		c.replyError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"session": session, "recording": info})
}

// replyError maps service sentinels onto the client-facing error taxonomy.
func (c *SessionController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, "Session not found")
	case errors.Is(err, util.ErrRegistrationNotFound):
		util.NotFound(ctx, "Registration not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionFull):
		util.BadRequest(ctx, "Session is full")
	case errors.Is(err, util.ErrAlreadyRegistered):
		util.BadRequest(ctx, "You are already registered for this session")
	case errors.Is(err, util.ErrSessionStarted):
		util.BadRequest(ctx, "Session has already started")
	case errors.Is(err, util.ErrInvalidTransition):
		util.BadRequest(ctx, "Session cannot change to that status")
	default:
		util.LogInternalError(ctx, err)
	}
}
