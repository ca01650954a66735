package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Reference Tables
// ============================================================

// User represents staff accounts (admin, receptionist, doctor login)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Role      string         `gorm:"size:20;default:'receptionist'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// Patient represents patients table
type Patient struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Phone          string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email          string    `gorm:"size:100" json:"email"`
	Age            int       `json:"age"`
	Gender         string    `gorm:"size:10" json:"gender"`
	Address        string    `gorm:"size:255" json:"address"`
	MedicalHistory string    `gorm:"type:text" json:"medical_history"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Doctor represents doctors table
type Doctor struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Specialization string     `gorm:"size:100;not null" json:"specialization"`
	DepartmentID   uint       `gorm:"not null;index" json:"department_id"`
	Phone          string     `gorm:"size:20" json:"phone"`
	Email          string     `gorm:"size:100" json:"email"`
	IsAvailable    bool       `gorm:"default:true" json:"is_available"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Department     Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Shift represents a doctor's weekly duty slot
type Shift struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	DoctorID     uint       `gorm:"not null;index" json:"doctor_id"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	DayOfWeek    string     `gorm:"size:10;not null" json:"day_of_week"`
	StartTime    string     `gorm:"size:10;not null" json:"start_time"`
	EndTime      string     `gorm:"size:10;not null" json:"end_time"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Department   Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Shift) TableName() string {
	return "shifts"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Patient{},
		&Department{},
		&Doctor{},
		&Shift{},
		&Token{},
		&Appointment{},
		&Notification{},
	)
}
