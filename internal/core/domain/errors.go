package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Queue errors
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentClosed   = errors.New("department is closed")
	ErrQueueFull          = errors.New("queue is full")
	ErrTicketNotFound     = errors.New("queue token not found")
	ErrInvalidTransition  = errors.New("token status does not allow this action")
	ErrNoWaitingToken     = errors.New("no waiting tokens")
)

// Patient / Doctor / Appointment errors
var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// UserErrors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)
