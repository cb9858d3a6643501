package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/service"
	"mentorhub_backend/internal/util"
	"mentorhub_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the real schema, mirroring
// the service test harness.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get raw connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func seedStudent(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	student := &model.User{
		FirstName:  "Jordan",
		LastName:   "Reyes",
		Email:      "jordan@example.com",
		Password:   "hashed",
		Role:       model.Student,
		Bio:        "Learning Go",
		WeeklyGoal: 3,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to seed student: %v", err)
	}
	return student
}

// asUser stands in for the auth middleware, planting the claims the
// handlers read from the request context.
func asUser(user *model.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("user", &util.Claims{UserID: user.ID, Role: user.Role, Email: user.Email})
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var resp util.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return resp
}

func newGoalRouter(t *testing.T) (*gin.Engine, *gorm.DB, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	student := seedStudent(t, db)

	svc := service.NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		repository.NewRegistrationRepository(db),
	)
	ctrl := NewDashboardController(svc)

	router := gin.New()
	router.PUT("/api/sessions/weekly-goal", asUser(student), ctrl.UpdateWeeklyGoal)
	return router, db, student
}

func TestUpdateWeeklyGoalZeroGetsRangeMessage(t *testing.T) {
	router, _, _ := newGoalRouter(t)

	// An explicit zero must reach the range check, not die in binding
	// with a validator message.
	for _, body := range []string{`{"weeklyGoal": 0}`, `{"weeklyGoal": 11}`, `{}`} {
		w := doJSON(t, router, http.MethodPut, "/api/sessions/weekly-goal", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
		resp := decodeResponse(t, w)
		if resp.Message != "Weekly goal must be between 1 and 10" {
			t.Errorf("%s: message = %q, want the range message", body, resp.Message)
		}
	}
}

func TestUpdateWeeklyGoalPersists(t *testing.T) {
	router, db, student := newGoalRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/sessions/weekly-goal", `{"weeklyGoal": 7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var saved model.User
	if err := db.First(&saved, student.ID).Error; err != nil {
		t.Fatalf("failed to reload student: %v", err)
	}
	if saved.WeeklyGoal != 7 {
		t.Errorf("weeklyGoal = %d, want 7", saved.WeeklyGoal)
	}
}

// The profile endpoints share one envelope: data is the user object
// itself on both the read and the write path.
func TestProfileEnvelopeConsistent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	student := seedStudent(t, db)

	ctrl := NewUserController(service.NewUserService(repository.NewUserRepository(db)), nil)

	router := gin.New()
	router.GET("/api/users/profile", asUser(student), ctrl.GetProfile)
	router.PUT("/api/users/profile", asUser(student), ctrl.UpdateProfile)

	decodeUser := func(t *testing.T, w *httptest.ResponseRecorder) model.User {
		t.Helper()
		resp := decodeResponse(t, w)
		raw, err := json.Marshal(resp.Data)
		if err != nil {
			t.Fatalf("failed to re-marshal data: %v", err)
		}
		var user model.User
		if err := json.Unmarshal(raw, &user); err != nil {
			t.Fatalf("data is not a user object: %v", err)
		}
		return user
	}

	w := doJSON(t, router, http.MethodGet, "/api/users/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := decodeUser(t, w); got.Email != student.Email {
		t.Errorf("get profile returned email %q, want %q", got.Email, student.Email)
	}

	w = doJSON(t, router, http.MethodPut, "/api/users/profile", `{"bio": "Now mentoring"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := decodeUser(t, w); got.Bio != "Now mentoring" {
		t.Errorf("update profile returned bio %q, want %q", got.Bio, "Now mentoring")
	}
}
