package controller

import (
	"errors"
	"time"

	"mentorhub_backend/internal/service"
	"mentorhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetStudentDashboard godoc
// @Summary Student dashboard bundle
// @Description This week's sessions bucketed by time, the student's registrations, and weekly stats
// @Tags dashboard
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard} "success"
// @Router /api/sessions/student-dashboard [get]
func (c *DashboardController) GetStudentDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetStudentDashboard(user.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// GetMentorDashboard godoc
// @Summary Mentor dashboard bundle
// @Description This week's own sessions bucketed by time plus mentoring stats
// @Tags dashboard
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.MentorDashboard} "success"
// @Router /api/sessions/mentor-dashboard [get]
func (c *DashboardController) GetMentorDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetMentorDashboard(user.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

type WeeklyGoalRequest struct {
	// No binding rule here: zero must reach the service so an explicit
	// {"weeklyGoal": 0} gets the range message, not a validator error.
	WeeklyGoal int `json:"weeklyGoal"`
}

// UpdateWeeklyGoal godoc
// @Summary Set the weekly session goal
// @Description Accepts a target between 1 and 10 attended sessions per week
// @Tags dashboard
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body WeeklyGoalRequest true "new goal"
// @Success 200 {object} util.Response "success"
// @Failure 400 {object} util.Response "goal out of range"
// @Router /api/sessions/weekly-goal [put]
func (c *DashboardController) UpdateWeeklyGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req WeeklyGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.DashboardService.UpdateWeeklyGoal(user.UserID, req.WeeklyGoal); err != nil {
		if errors.Is(err, util.ErrInvalidWeeklyGoal) {
			util.BadRequest(ctx, "Weekly goal must be between 1 and 10")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"weeklyGoal": req.WeeklyGoal})
}
