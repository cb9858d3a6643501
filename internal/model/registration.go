package model

import "time"

// Registration joins a student to a session and carries the attendance
// record the mentor fills in afterwards.
type Registration struct {
	SessionID          uint       `gorm:"primaryKey" json:"sessionId"`
	UserID             uint       `gorm:"primaryKey" json:"userId"`
	CreatedAt          time.Time  `json:"createdAt"`
	Attended           bool       `gorm:"default:false" json:"attended"`
	AttendanceMarkedAt *time.Time `json:"attendanceMarkedAt,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}
