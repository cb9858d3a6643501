package model

import (
	"strings"
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Mentor  UserRole = "mentor"
)

// swagger:model User
type User struct {
	BaseModel
	FirstName  string   `gorm:"size:100;not null" json:"firstName"`
	LastName   string   `gorm:"size:100" json:"lastName"`
	Email      string   `gorm:"size:100;unique;not null" json:"email"`
	Password   string   `gorm:"size:100;not null" json:"-"`
	Role       UserRole `gorm:"size:20;default:'student';index" json:"role"`
	Bio        string   `gorm:"type:text" json:"bio"`
	Avatar     string   `gorm:"size:255" json:"avatarUrl"`
	ZoomLink   string   `gorm:"size:255" json:"zoomLink,omitempty"`
	WeeklyGoal int      `gorm:"default:3" json:"weeklyGoal"`
	LastLogin  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Name joins the first and last name for display.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsMentor() bool {
	return u.Role == Mentor
}

func (u *User) IsStudent() bool {
	return u.Role == Student
}
