package service

import (
	"context"
	"sync"

	"github.com/Eljyoussef/POINTAGE-APP/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubAdminRepo struct {
	admins map[uuid.UUID]*model.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[uuid.UUID]*model.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *model.Admin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.admins[a.ID] = a
	return nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindOwned(_ context.Context, id, adminID uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.AdminID != adminID {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.AdminID == adminID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

// stubAreaMapRepo mirrors the unique index on user_id: Upsert keeps the
// surviving row's id when the agent already has a position. Ownership-scoped
// lookups delegate to the user stub, like the SQL join does.
type stubAreaMapRepo struct {
	mu    sync.Mutex
	maps  map[uuid.UUID]*model.AreaMap
	users *stubUserRepo
}

func newStubAreaMapRepo(users *stubUserRepo) *stubAreaMapRepo {
	return &stubAreaMapRepo{maps: make(map[uuid.UUID]*model.AreaMap), users: users}
}

func (r *stubAreaMapRepo) Upsert(_ context.Context, m *model.AreaMap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.maps {
		if existing.UserID == m.UserID {
			existing.Latitude = m.Latitude
			existing.Longitude = m.Longitude
			existing.Radius = m.Radius
			return nil
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.maps[m.ID] = m
	return nil
}

func (r *stubAreaMapRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.AreaMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.maps {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAreaMapRepo) FindOwned(ctx context.Context, id, adminID uuid.UUID) (*model.AreaMap, error) {
	r.mu.Lock()
	m, ok := r.maps[id]
	r.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if _, err := r.users.FindOwned(ctx, m.UserID, adminID); err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubAreaMapRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AreaMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AreaMap
	for _, m := range r.maps {
		if u, ok := r.users.users[m.UserID]; ok && u.AdminID == adminID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubAreaMapRepo) UpdateRadius(_ context.Context, id uuid.UUID, radius float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.maps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Radius = radius
	return nil
}

func (r *stubAreaMapRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.maps, id)
	return nil
}

type stubReportRepo struct {
	mu      sync.Mutex
	reports []*model.DailyReport
	users   *stubUserRepo
}

func newStubReportRepo(users *stubUserRepo) *stubReportRepo {
	return &stubReportRepo{users: users}
}

func (r *stubReportRepo) Create(_ context.Context, rep *model.DailyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	r.reports = append(r.reports, rep)
	return nil
}

func (r *stubReportRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.DailyReport
	for _, rep := range r.reports {
		if rep.UserID == userID {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *stubReportRepo) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]model.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.DailyReport
	for _, rep := range r.reports {
		if u, ok := r.users.users[rep.UserID]; ok && u.AdminID == adminID {
			out = append(out, *rep)
		}
	}
	return out, nil
}

// stubEnqueuer records welcome email jobs instead of touching Redis.
type stubEnqueuer struct {
	mu    sync.Mutex
	calls []enqueuedEmail
	fail  error
}

type enqueuedEmail struct {
	to, username, password string
}

func (e *stubEnqueuer) EnqueueWelcomeEmail(_ context.Context, toEmail, username, password string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail != nil {
		return e.fail
	}
	e.calls = append(e.calls, enqueuedEmail{to: toEmail, username: username, password: password})
	return nil
}
