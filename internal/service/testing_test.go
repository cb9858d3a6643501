package service

import (
	"fmt"
	"testing"
	"time"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the real schema. A single
// connection is enforced so every goroutine in a test sees the same
// in-memory database.
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
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedMentor(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	mentor := &model.User{
		FirstName: "Maya",
		LastName:  "Okafor",
		Email:     fmt.Sprintf("mentor%d@example.com", time.Now().UnixNano()),
		Password:  "hashed",
		Role:      model.Mentor,
		ZoomLink:  "https://zoom.example.com/maya",
	}
	if err := db.Create(mentor).Error; err != nil {
		t.Fatalf("failed to seed mentor: %v", err)
	}
	return mentor
}

func seedStudent(t *testing.T, db *gorm.DB, n int) *model.User {
	t.Helper()
	student := &model.User{
		FirstName:  fmt.Sprintf("Student%d", n),
		LastName:   "Test",
		Email:      fmt.Sprintf("student%d-%d@example.com", n, time.Now().UnixNano()),
		Password:   "hashed",
		Role:       model.Student,
		WeeklyGoal: 3,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to seed student: %v", err)
	}
	return student
}

func seedSession(t *testing.T, db *gorm.DB, mentorID uint, capacity int, date time.Time) *model.Session {
	t.Helper()
	session := &model.Session{
		Title:           "Intro to Goroutines",
		CourseName:      "Go Fundamentals",
		Date:            date,
		DurationMinutes: 60,
		Capacity:        capacity,
		MentorID:        mentorID,
		Status:          model.SessionScheduled,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func newSessionService(db *gorm.DB) *SessionService {
	return NewSessionService(
		repository.NewSessionRepository(db),
		repository.NewRegistrationRepository(db),
		repository.NewUserRepository(db),
	)
}

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		repository.NewRegistrationRepository(db),
	)
}

func newAttendanceService(db *gorm.DB) *AttendanceService {
	return NewAttendanceService(
		repository.NewSessionRepository(db),
		repository.NewRegistrationRepository(db),
	)
}
