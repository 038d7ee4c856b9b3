// Package repotest provides an in-memory CourseRepo for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "Catalog/internal/domain"
	"Catalog/internal/repo"
)

// MemoryCourseRepo keeps courses in a map. Each insert gets a created_at one
// second after the previous one so newest-first ordering is deterministic.
type MemoryCourseRepo struct {
	mu     sync.Mutex
	rows   map[int64]dom.Course
	nextID int64
	clock  time.Time

	// Err, when set, is returned by every call.
	Err error
	// Calls counts repository calls, failed ones included.
	Calls int
}

var _ repo.CourseRepo = (*MemoryCourseRepo)(nil)

func NewMemoryCourseRepo() *MemoryCourseRepo {
	return &MemoryCourseRepo{
		rows:  make(map[int64]dom.Course),
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *MemoryCourseRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MemoryCourseRepo) enter() error {
	m.Calls++
	return m.Err
}

func (m *MemoryCourseRepo) Insert(ctx context.Context, c dom.Course) (dom.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return dom.Course{}, err
	}
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = m.tick()
	c.UpdatedAt = nil
	m.rows[c.ID] = c
	return c, nil
}

func (m *MemoryCourseRepo) FindAll(ctx context.Context) ([]dom.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	list := make([]dom.Course, 0, len(m.rows))
	for _, c := range m.rows {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (m *MemoryCourseRepo) FindByID(ctx context.Context, id int64) (dom.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return dom.Course{}, err
	}
	c, ok := m.rows[id]
	if !ok {
		return dom.Course{}, repo.ErrNotFound
	}
	return c, nil
}

func (m *MemoryCourseRepo) Update(ctx context.Context, id int64, c dom.Course) (dom.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return dom.Course{}, err
	}
	existing, ok := m.rows[id]
	if !ok {
		return dom.Course{}, repo.ErrNotFound
	}
	now := m.tick()
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = &now
	m.rows[id] = c
	return c, nil
}

func (m *MemoryCourseRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	c, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	now := m.tick()
	c.Active = false
	c.UpdatedAt = &now
	m.rows[id] = c
	return true, nil
}

// Get returns the stored row without counting a call.
func (m *MemoryCourseRepo) Get(id int64) (dom.Course, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	return c, ok
}
