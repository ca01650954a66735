package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
)

// In-memory repositories matching the GORM implementations' semantics.

type fakeDepartmentRepo struct {
	mu          sync.Mutex
	seq         uint
	departments map[uint]*models.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[uint]*models.Department)}
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	department.ID = r.seq
	clone := *department
	r.departments[department.ID] = &clone
	return nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	department, ok := r.departments[id]
	if !ok {
		return nil, nil
	}
	clone := *department
	return &clone, nil
}

func (r *fakeDepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Department, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	department, ok := r.departments[id]
	if !ok {
		return nil
	}
	for k, v := range updates {
		switch k {
		case "name":
			department.Name = v.(string)
		case "description":
			department.Description = v.(string)
		case "is_open":
			department.IsOpen = v.(bool)
		case "max_queue_size":
			department.MaxQueueSize = v.(int)
		}
	}
	return nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	seq      uint
	patients map[uint]*models.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uint]*models.Patient)}
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	patient.ID = r.seq
	clone := *patient
	r.patients[patient.ID] = &clone
	return nil
}

func (r *fakePatientRepo) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patient, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	clone := *patient
	return &clone, nil
}

func (r *fakePatientRepo) GetByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.Phone == phone {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) List(ctx context.Context, phone string, offset, limit int) ([]models.Patient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		if phone != "" && p.Phone != phone {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeTokenRepo struct {
	mu          sync.Mutex
	seq         uint
	clock       time.Duration
	tokens      map[uint]*models.Token
	patients    *fakePatientRepo
	departments *fakeDepartmentRepo
}

func newFakeTokenRepo(patients *fakePatientRepo, departments *fakeDepartmentRepo) *fakeTokenRepo {
	return &fakeTokenRepo{
		tokens:      make(map[uint]*models.Token),
		patients:    patients,
		departments: departments,
	}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = r.seq
	if token.CreatedAt.IsZero() {
		// Monotonic timestamps keep ordering deterministic.
		r.clock += time.Millisecond
		token.CreatedAt = time.Now().Add(r.clock)
	}
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

// loadRelations mirrors the Preload calls in the GORM repository.
func (r *fakeTokenRepo) loadRelations(token *models.Token) {
	if r.patients != nil {
		if p, _ := r.patients.GetByID(context.Background(), token.PatientID); p != nil {
			token.Patient = *p
		}
	}
	if r.departments != nil {
		if d, _ := r.departments.GetByID(context.Background(), token.DepartmentID); d != nil {
			token.Department = *d
		}
	}
}

func (r *fakeTokenRepo) GetByID(ctx context.Context, id uint) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return nil, nil
	}
	clone := *token
	r.loadRelations(&clone)
	return &clone, nil
}

func (r *fakeTokenRepo) CountActive(ctx context.Context, departmentID uint, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, t := range r.tokens {
		if t.DepartmentID != departmentID || t.CreatedAt.Before(since) {
			continue
		}
		for _, s := range models.ActiveTokenStatuses {
			if t.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeTokenRepo) GetLatest(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Token
	for _, t := range r.tokens {
		if t.DepartmentID != departmentID || t.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) ||
			(t.CreatedAt.Equal(latest.CreatedAt) && t.ID > latest.ID) {
			latest = t
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeTokenRepo) List(ctx context.Context, filter repositories.TokenFilter) ([]models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Token, 0)
	for _, t := range r.tokens {
		if filter.DepartmentID != 0 && t.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if !filter.Since.IsZero() && t.CreatedAt.Before(filter.Since) {
			continue
		}
		clone := *t
		r.loadRelations(&clone)
		out = append(out, clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeTokenRepo) GetNextWaiting(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error) {
	waiting, err := r.List(ctx, repositories.TokenFilter{
		DepartmentID: departmentID,
		Status:       models.TokenStatusWaiting,
		Since:        since,
	})
	if err != nil || len(waiting) == 0 {
		return nil, err
	}
	return &waiting[0], nil
}

func (r *fakeTokenRepo) GetNowServing(ctx context.Context, departmentID uint, since time.Time) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var current *models.Token
	for _, t := range r.tokens {
		if t.DepartmentID != departmentID || t.CreatedAt.Before(since) {
			continue
		}
		if t.Status != models.TokenStatusCalled && t.Status != models.TokenStatusServing {
			continue
		}
		if current == nil || (t.CalledAt != nil && current.CalledAt != nil && t.CalledAt.After(*current.CalledAt)) {
			current = t
		}
	}
	if current == nil {
		return nil, nil
	}
	clone := *current
	r.loadRelations(&clone)
	return &clone, nil
}

func (r *fakeTokenRepo) UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return nil
	}
	for k, v := range updates {
		switch k {
		case "status":
			token.Status = v.(string)
		case "counter":
			token.Counter = v.(string)
		case "called_at":
			at := v.(time.Time)
			token.CalledAt = &at
		case "completed_at":
			at := v.(time.Time)
			token.CompletedAt = &at
		case "doctor_id":
			doctorID := v.(uint)
			token.DoctorID = &doctorID
		}
	}
	return nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[id]; !ok {
		return false, nil
	}
	delete(r.tokens, id)
	return true, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	seq           uint
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	notification.ID = r.seq
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) MarkOutcome(ctx context.Context, id uint, status string, sentAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Status = status
			n.SentAt = sentAt
		}
	}
	return nil
}

func (r *fakeNotificationRepo) ListByPatient(ctx context.Context, patientID uint, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, 0)
	for i := len(r.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.notifications[i].PatientID == patientID {
			out = append(out, *r.notifications[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, *n)
	}
	return out
}

type fakeDoctorRepo struct {
	mu      sync.Mutex
	seq     uint
	doctors map[uint]*models.Doctor
	shifts  []models.Shift
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uint]*models.Doctor)}
}

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	doctor.ID = r.seq
	clone := *doctor
	r.doctors[doctor.ID] = &clone
	return nil
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	clone := *doctor
	return &clone, nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, departmentID uint) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Doctor, 0)
	for _, d := range r.doctors {
		if departmentID != 0 && d.DepartmentID != departmentID {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[id]
	if !ok {
		return nil
	}
	for k, v := range updates {
		switch k {
		case "name":
			doctor.Name = v.(string)
		case "specialization":
			doctor.Specialization = v.(string)
		case "phone":
			doctor.Phone = v.(string)
		case "email":
			doctor.Email = v.(string)
		case "is_available":
			doctor.IsAvailable = v.(bool)
		case "department_id":
			doctor.DepartmentID = v.(uint)
		}
	}
	return nil
}

func (r *fakeDoctorRepo) ListShifts(ctx context.Context, doctorID uint) ([]models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Shift, 0)
	for _, s := range r.shifts {
		if s.DoctorID == doctorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) CreateShift(ctx context.Context, shift *models.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shift.ID = uint(len(r.shifts) + 1)
	r.shifts = append(r.shifts, *shift)
	return nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	seq          uint
	appointments map[uint]*models.Appointment
	patients     *fakePatientRepo
	doctors      *fakeDoctorRepo
}

func newFakeAppointmentRepo(patients *fakePatientRepo, doctors *fakeDoctorRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[uint]*models.Appointment),
		patients:     patients,
		doctors:      doctors,
	}
}

func (r *fakeAppointmentRepo) loadRelations(appointment *models.Appointment) {
	if r.patients != nil {
		if p, _ := r.patients.GetByID(context.Background(), appointment.PatientID); p != nil {
			appointment.Patient = *p
		}
	}
	if r.doctors != nil {
		if d, _ := r.doctors.GetByID(context.Background(), appointment.DoctorID); d != nil {
			appointment.Doctor = *d
		}
	}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	appointment.ID = r.seq
	clone := *appointment
	r.appointments[appointment.ID] = &clone
	return nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	r.loadRelations(&clone)
	return &clone, nil
}

// withinDay mirrors the repository's day-window query: the [start, end)
// bounds of the calendar day containing the given instant, in its location.
func withinDay(at, day time.Time) bool {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return !at.Before(start) && at.Before(end)
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filter repositories.AppointmentFilter, offset, limit int) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if filter.DoctorID != 0 && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != 0 && a.PatientID != filter.PatientID {
			continue
		}
		if filter.DepartmentID != 0 && a.DepartmentID != filter.DepartmentID {
			continue
		}
		if !filter.Date.IsZero() && !withinDay(a.AppointmentDate, filter.Date) {
			continue
		}
		clone := *a
		r.loadRelations(&clone)
		all = append(all, clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeAppointmentRepo) ListForDay(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if a.Status == models.AppointmentStatusCancelled {
			continue
		}
		if !withinDay(a.AppointmentDate, day) {
			continue
		}
		clone := *a
		r.loadRelations(&clone)
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil
	}
	for k, v := range updates {
		switch k {
		case "appointment_date":
			appointment.AppointmentDate = v.(time.Time)
		case "time_slot":
			appointment.TimeSlot = v.(string)
		case "status":
			appointment.Status = v.(string)
		case "notes":
			appointment.Notes = v.(string)
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return false, nil
	}
	delete(r.appointments, id)
	return true, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = r.seq
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

// Interface checks
var (
	_ repositories.TokenRepository        = (*fakeTokenRepo)(nil)
	_ repositories.DepartmentRepository   = (*fakeDepartmentRepo)(nil)
	_ repositories.PatientRepository      = (*fakePatientRepo)(nil)
	_ repositories.DoctorRepository       = (*fakeDoctorRepo)(nil)
	_ repositories.AppointmentRepository  = (*fakeAppointmentRepo)(nil)
	_ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)
	_ repositories.UserRepository         = (*fakeUserRepo)(nil)
)
