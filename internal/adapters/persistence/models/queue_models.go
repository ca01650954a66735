package models

import (
	"time"
)

// ============================================================
// Queue & Appointment Tables
// ============================================================

// Token status values
const (
	TokenStatusWaiting   = "waiting"
	TokenStatusCalled    = "called"
	TokenStatusServing   = "serving"
	TokenStatusCompleted = "completed"
	TokenStatusSkipped   = "skipped"
	TokenStatusCancelled = "cancelled"
)

// ActiveTokenStatuses are the statuses that occupy a slot in a
// department's daily queue.
var ActiveTokenStatuses = []string{TokenStatusWaiting, TokenStatusCalled, TokenStatusServing}

// Appointment status values
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Notification channel and status values
const (
	NotificationChannelSMS   = "sms"
	NotificationChannelPush  = "push"
	NotificationChannelEmail = "email"

	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

type Department struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"size:255" json:"description"`
	IsOpen       bool      `gorm:"default:true" json:"is_open"`
	MaxQueueSize int       `gorm:"default:50" json:"max_queue_size"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// Token is one patient's place in a department's walk-in queue for a day.
// TokenNumber is unique per (department, calendar day).
type Token struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TokenNumber  string     `gorm:"size:20;not null;index" json:"token_number"`
	PatientID    uint       `gorm:"not null;index" json:"patient_id"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	DoctorID     *uint      `gorm:"index" json:"doctor_id"`
	Status       string     `gorm:"size:15;default:'waiting';index" json:"status"`
	Priority     bool       `gorm:"default:false" json:"priority"`
	Counter      string     `gorm:"size:50" json:"counter"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CalledAt     *time.Time `json:"called_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	Patient      Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Department   Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Doctor       *Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Token) TableName() string {
	return "tokens"
}

// IsTerminal reports whether no further transition is allowed from the
// token's current status.
func (t *Token) IsTerminal() bool {
	switch t.Status {
	case TokenStatusCompleted, TokenStatusSkipped, TokenStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PatientID       uint       `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint       `gorm:"not null;index" json:"doctor_id"`
	DepartmentID    uint       `gorm:"not null;index" json:"department_id"`
	AppointmentDate time.Time  `gorm:"not null;index" json:"appointment_date"`
	TimeSlot        string     `gorm:"size:20;not null" json:"time_slot"`
	Status          string     `gorm:"size:15;default:'scheduled'" json:"status"`
	Reason          string     `gorm:"size:255" json:"reason"`
	Notes           string     `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Patient         Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor          Doctor     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department      Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Notification is an outbound message record. It is written once when the
// triggering event happens and updated only to record the delivery outcome.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PatientID uint       `gorm:"not null;index" json:"patient_id"`
	TokenID   *uint      `gorm:"index" json:"token_id"`
	Message   string     `gorm:"size:500;not null" json:"message"`
	Channel   string     `gorm:"size:10;default:'push'" json:"channel"`
	Status    string     `gorm:"size:10;default:'pending'" json:"status"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Patient   Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
