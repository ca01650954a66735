package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

// TokenService handles the front-desk queue lifecycle
type TokenService struct {
	tokenRepo      repositories.TokenRepository
	departmentRepo repositories.DepartmentRepository
	patientRepo    repositories.PatientRepository
	notifier       *NotifierService
	hub            *LiveHub
	now            func() time.Time

	// deptLocks serializes number allocation per department so two
	// concurrent requests can never draw the same sequence.
	mu        sync.Mutex
	deptLocks map[uint]*sync.Mutex
}

// NewTokenService creates a new token service
func NewTokenService(
	tokenRepo repositories.TokenRepository,
	departmentRepo repositories.DepartmentRepository,
	patientRepo repositories.PatientRepository,
	notifier *NotifierService,
	hub *LiveHub,
) *TokenService {
	return &TokenService{
		tokenRepo:      tokenRepo,
		departmentRepo: departmentRepo,
		patientRepo:    patientRepo,
		notifier:       notifier,
		hub:            hub,
		now:            time.Now,
		deptLocks:      make(map[uint]*sync.Mutex),
	}
}

func (s *TokenService) lockDepartment(departmentID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.deptLocks[departmentID]
	if !ok {
		lock = &sync.Mutex{}
		s.deptLocks[departmentID] = lock
	}
	return lock
}

// dayStart returns local midnight, the boundary of the current queue day.
func (s *TokenService) dayStart() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// tokenPrefix derives the department code: first three letters, uppercased.
// Shorter names use the whole name.
func tokenPrefix(name string) string {
	runes := []rune(strings.ToUpper(strings.TrimSpace(name)))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// nextSequence picks the sequence after the latest token of the day.
// The latest token counts even when it is already completed or cancelled,
// so numbers are never reused within a day.
func nextSequence(latest *models.Token) int {
	if latest == nil {
		return 1
	}
	parts := strings.Split(latest.TokenNumber, "-")
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 1
	}
	return seq + 1
}

// ============================================================
// Issue
// ============================================================

// IssueTokenInput represents a token issue request
type IssueTokenInput struct {
	PatientID    uint  `json:"patient_id" validate:"required"`
	DepartmentID uint  `json:"department_id" validate:"required"`
	DoctorID     *uint `json:"doctor_id"`
	Priority     bool  `json:"priority"`
}

// IssueToken creates a new queue token for a patient
func (s *TokenService) IssueToken(ctx context.Context, input *IssueTokenInput) (*models.Token, error) {
	// 1. Validate input
	if input == nil || input.PatientID == 0 || input.DepartmentID == 0 {
		return nil, domain.ErrInvalidInput
	}

	// 2. Validate department
	department, err := s.departmentRepo.GetByID(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.ErrDepartmentNotFound
	}
	if !department.IsOpen {
		return nil, domain.ErrDepartmentClosed
	}

	// 3. Validate patient
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrPatientNotFound
	}

	// 4. Allocate number under the department lock
	lock := s.lockDepartment(input.DepartmentID)
	lock.Lock()
	defer lock.Unlock()

	since := s.dayStart()

	active, err := s.tokenRepo.CountActive(ctx, input.DepartmentID, since)
	if err != nil {
		return nil, err
	}
	if active >= int64(department.MaxQueueSize) {
		return nil, domain.ErrQueueFull
	}

	latest, err := s.tokenRepo.GetLatest(ctx, input.DepartmentID, since)
	if err != nil {
		return nil, err
	}
	tokenNumber := fmt.Sprintf("%s-%03d", tokenPrefix(department.Name), nextSequence(latest))

	// 5. Create token
	token := &models.Token{
		TokenNumber:  tokenNumber,
		PatientID:    input.PatientID,
		DepartmentID: input.DepartmentID,
		DoctorID:     input.DoctorID,
		Status:       models.TokenStatusWaiting,
		Priority:     input.Priority,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// 6. Reload with relations
	if loaded, err := s.tokenRepo.GetByID(ctx, token.ID); err == nil && loaded != nil {
		token = loaded
	}

	log.Printf("✅ Token issued: %s (patient=%d, department=%s)", tokenNumber, input.PatientID, department.Name)

	// 7. Confirmation + live update
	message := fmt.Sprintf("Your token %s has been generated for %s", tokenNumber, department.Name)
	s.notifier.NotifyPatient(ctx, patient, &token.ID, message)
	s.hub.Broadcast(LiveEvent{Event: EventTokenCreated, Data: token})

	return token, nil
}

// ============================================================
// Queries
// ============================================================

// ListTokens returns today's tokens, priority first, then oldest first
func (s *TokenService) ListTokens(ctx context.Context, departmentID uint, status string) ([]models.Token, error) {
	return s.tokenRepo.List(ctx, repositories.TokenFilter{
		DepartmentID: departmentID,
		Status:       status,
		Since:        s.dayStart(),
	})
}

// GetToken returns a single token by ID
func (s *TokenService) GetToken(ctx context.Context, id uint) (*models.Token, error) {
	token, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTicketNotFound
	}
	return token, nil
}

// NextToken returns the token that would be called next for a department
func (s *TokenService) NextToken(ctx context.Context, departmentID uint) (*models.Token, error) {
	if departmentID == 0 {
		return nil, domain.ErrInvalidInput
	}
	token, err := s.tokenRepo.GetNextWaiting(ctx, departmentID, s.dayStart())
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrNoWaitingToken
	}
	return token, nil
}

// NowServing returns the most recently called or serving token for a department
func (s *TokenService) NowServing(ctx context.Context, departmentID uint) (*models.Token, error) {
	if departmentID == 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.tokenRepo.GetNowServing(ctx, departmentID, s.dayStart())
}

// ============================================================
// Lifecycle transitions
// ============================================================

// CallTokenInput represents a call request
type CallTokenInput struct {
	Counter  string `json:"counter" validate:"required"`
	DoctorID *uint  `json:"doctor_id"`
}

// CallToken moves a waiting token to called and announces the counter
func (s *TokenService) CallToken(ctx context.Context, id uint, input *CallTokenInput) (*models.Token, error) {
	if input == nil || strings.TrimSpace(input.Counter) == "" {
		return nil, domain.ErrInvalidInput
	}

	token, err := s.getForTransition(ctx, id, ActionCall)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":    models.TokenStatusCalled,
		"called_at": now,
		"counter":   input.Counter,
	}
	if input.DoctorID != nil {
		updates["doctor_id"] = *input.DoctorID
	}

	token, err = s.applyTransition(ctx, token.ID, updates)
	if err != nil {
		return nil, err
	}

	log.Printf("📣 Token called: %s → counter %s", token.TokenNumber, input.Counter)

	message := fmt.Sprintf("Your token %s is being called. Please proceed to %s", token.TokenNumber, input.Counter)
	s.notifier.NotifyPatient(ctx, &token.Patient, &token.ID, message)
	s.hub.Broadcast(LiveEvent{Event: EventTokenCalled, Data: token})

	return token, nil
}

// ServeToken marks a called token as being attended
func (s *TokenService) ServeToken(ctx context.Context, id uint) (*models.Token, error) {
	token, err := s.getForTransition(ctx, id, ActionServe)
	if err != nil {
		return nil, err
	}

	token, err = s.applyTransition(ctx, token.ID, map[string]interface{}{
		"status": models.TokenStatusServing,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🩺 Token serving: %s", token.TokenNumber)
	s.hub.Broadcast(LiveEvent{Event: EventTokenUpdated, Data: token})

	return token, nil
}

// SkipToken sets a token aside without closing the visit
func (s *TokenService) SkipToken(ctx context.Context, id uint) (*models.Token, error) {
	token, err := s.getForTransition(ctx, id, ActionSkip)
	if err != nil {
		return nil, err
	}

	token, err = s.applyTransition(ctx, token.ID, map[string]interface{}{
		"status": models.TokenStatusSkipped,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("⏭️ Token skipped: %s", token.TokenNumber)
	s.hub.Broadcast(LiveEvent{Event: EventTokenUpdated, Data: token})

	return token, nil
}

// CompleteToken closes the visit for a called or serving token
func (s *TokenService) CompleteToken(ctx context.Context, id uint) (*models.Token, error) {
	token, err := s.getForTransition(ctx, id, ActionComplete)
	if err != nil {
		return nil, err
	}

	token, err = s.applyTransition(ctx, token.ID, map[string]interface{}{
		"status":       models.TokenStatusCompleted,
		"completed_at": s.now(),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token completed: %s", token.TokenNumber)
	s.hub.Broadcast(LiveEvent{Event: EventTokenUpdated, Data: token})

	return token, nil
}

// CancelToken removes an active token from the queue entirely
func (s *TokenService) CancelToken(ctx context.Context, id uint) error {
	token, err := s.getForTransition(ctx, id, ActionCancel)
	if err != nil {
		return err
	}

	deleted, err := s.tokenRepo.Delete(ctx, token.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTicketNotFound
	}

	log.Printf("🗑️ Token cancelled: %s", token.TokenNumber)
	s.hub.Broadcast(LiveEvent{Event: EventTokenDeleted, Data: map[string]interface{}{"id": token.ID}})

	return nil
}

// getForTransition loads a token and checks the action against its status.
func (s *TokenService) getForTransition(ctx context.Context, id uint, action string) (*models.Token, error) {
	token, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTicketNotFound
	}
	if !CanTransition(action, token.Status) {
		return nil, domain.ErrInvalidTransition
	}
	return token, nil
}

// applyTransition persists the updates and reloads the token with relations.
func (s *TokenService) applyTransition(ctx context.Context, id uint, updates map[string]interface{}) (*models.Token, error) {
	if err := s.tokenRepo.UpdateStatus(ctx, id, updates); err != nil {
		return nil, err
	}
	token, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTicketNotFound
	}
	return token, nil
}

