package app

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"college_assistant_bot/internal/domain/group"
	"college_assistant_bot/internal/domain/news"
	"college_assistant_bot/internal/domain/student"
	"college_assistant_bot/internal/domain/teacher"
)

// ── Mock student repository ──

type mockStudentRepo struct {
	mu      sync.Mutex
	rows    map[int64]*student.Student
	nextID  int64
	upserts int

	// Injected failures by operation name.
	errs map[string]error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{rows: make(map[int64]*student.Student), errs: make(map[string]error)}
}

func (m *mockStudentRepo) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

func (m *mockStudentRepo) get(telegramID int64) (student.Student, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[telegramID]
	if !ok {
		return student.Student{}, false
	}
	return *s, true
}

func (m *mockStudentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *mockStudentRepo) GetByTelegramID(_ context.Context, telegramID int64) (*student.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["get"]; err != nil {
		return nil, err
	}
	s, ok := m.rows[telegramID]
	if !ok {
		return nil, student.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockStudentRepo) UpsertName(_ context.Context, telegramID int64, fullName string) (*student.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["upsert"]; err != nil {
		return nil, err
	}
	m.upserts++
	s, ok := m.rows[telegramID]
	if !ok {
		m.nextID++
		s = &student.Student{ID: m.nextID, TelegramID: telegramID}
		m.rows[telegramID] = s
	}
	s.FullName = fullName
	cp := *s
	return &cp, nil
}

func (m *mockStudentRepo) SetGroup(_ context.Context, telegramID int64, groupID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["set_group"]; err != nil {
		return err
	}
	s, ok := m.rows[telegramID]
	if !ok {
		return student.ErrNotFound
	}
	s.GroupID = sql.NullInt64{Int64: groupID, Valid: true}
	return nil
}

func (m *mockStudentRepo) ListByGroup(_ context.Context, groupID int64) ([]*student.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["list"]; err != nil {
		return nil, err
	}
	var result []*student.Student
	for _, s := range m.rows {
		if s.GroupID.Valid && s.GroupID.Int64 == groupID {
			cp := *s
			result = append(result, &cp)
		}
	}
	return result, nil
}

// ── Mock group repository ──

type mockGroupRepo struct {
	groups   []*group.Group
	schedule map[int64][]*group.ScheduleEntry
	err      error
}

func newMockGroupRepo(names ...string) *mockGroupRepo {
	m := &mockGroupRepo{schedule: make(map[int64][]*group.ScheduleEntry)}
	for i, n := range names {
		m.groups = append(m.groups, &group.Group{ID: int64(i + 1), Name: n})
	}
	return m
}

func (m *mockGroupRepo) GetByID(_ context.Context, id int64) (*group.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, g := range m.groups {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, group.ErrNotFound
}

func (m *mockGroupRepo) GetByName(_ context.Context, name string) (*group.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, g := range m.groups {
		if g.Name == name {
			cp := *g
			return &cp, nil
		}
	}
	return nil, group.ErrNotFound
}

func (m *mockGroupRepo) List(_ context.Context) ([]*group.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*group.Group, 0, len(m.groups))
	for _, g := range m.groups {
		cp := *g
		result = append(result, &cp)
	}
	return result, nil
}

func (m *mockGroupRepo) ListSchedule(_ context.Context, groupID int64) ([]*group.ScheduleEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*group.ScheduleEntry
	for _, e := range m.schedule[groupID] {
		cp := *e
		result = append(result, &cp)
	}
	return result, nil
}

// ── Mock teacher repository ──

type mockTeacherRepo struct {
	teachers []*teacher.Teacher
	err      error
}

func (m *mockTeacherRepo) ListActive(_ context.Context) ([]*teacher.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*teacher.Teacher
	for _, t := range m.teachers {
		if t.IsActive {
			cp := *t
			result = append(result, &cp)
		}
	}
	return result, nil
}

// ── Mock news repository ──

type mockNewsRepo struct {
	mu    sync.Mutex
	items []*news.Item
	base  time.Time
	err   error
}

func newMockNewsRepo() *mockNewsRepo {
	return &mockNewsRepo{base: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
}

// ListLatest returns items oldest first on purpose; the router must sort.
func (m *mockNewsRepo) ListLatest(_ context.Context, limit int) ([]*news.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	start := 0
	if len(m.items) > limit {
		start = len(m.items) - limit
	}
	var result []*news.Item
	for _, it := range m.items[start:] {
		cp := *it
		result = append(result, &cp)
	}
	return result, nil
}

func (m *mockNewsRepo) Create(_ context.Context, d news.Draft) (*news.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	id := int64(len(m.items) + 1)
	it := &news.Item{ID: id, Title: d.Title, Body: d.Body, CreatedAt: m.base.AddDate(0, 0, int(id))}
	m.items = append(m.items, it)
	cp := *it
	return &cp, nil
}

// ── Mock audit journal ──

type mockJournal struct {
	mu     sync.Mutex
	events []AuditEvent
	err    error
}

func (m *mockJournal) Publish(_ context.Context, ev AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

func (m *mockJournal) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, ev := range m.events {
		out = append(out, ev.Type)
	}
	return out
}

// blockingStudentRepo never answers before the context is done.
type blockingStudentRepo struct {
	*mockStudentRepo
}

func (b blockingStudentRepo) GetByTelegramID(ctx context.Context, _ int64) (*student.Student, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// panickingTeacherRepo simulates a programming error deep in a handler.
type panickingTeacherRepo struct{}

func (panickingTeacherRepo) ListActive(context.Context) ([]*teacher.Teacher, error) {
	panic("boom")
}

// blockingJournal holds every publish until its context is done.
type blockingJournal struct {
	mu    sync.Mutex
	calls int
}

func (b *blockingJournal) Publish(ctx context.Context, _ AuditEvent) error {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func (b *blockingJournal) attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// ctxGroupRepo fails on an expired context the way the SQL driver does.
type ctxGroupRepo struct {
	*mockGroupRepo
}

func (r ctxGroupRepo) List(ctx context.Context) ([]*group.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.mockGroupRepo.List(ctx)
}

func (r ctxGroupRepo) GetByName(ctx context.Context, name string) (*group.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.mockGroupRepo.GetByName(ctx, name)
}
