package employee

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemory implements Store with in-process concurrency safety.
// NOTE: replace with the Postgres store for anything beyond demos.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[string]*Employee
	emails map[string]string // email -> id
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[string]*Employee),
		emails: make(map[string]string),
	}
}

func (s *InMemory) Create(ctx context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[e.Email]; taken {
		return ErrEmailTaken
	}
	cp := *e
	s.byID[e.ID] = &cp
	s.emails[e.Email] = e.ID
	return nil
}

func (s *InMemory) Get(ctx context.Context, id string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return *e, nil
}

func (s *InMemory) List(ctx context.Context, f Filter) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.byID))
	for _, e := range s.byID {
		if f.Department != "" && !strings.EqualFold(e.Department, f.Department) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []Employee{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[e.ID]
	if !ok {
		return ErrNotFound
	}
	if other, taken := s.emails[e.Email]; taken && other != e.ID {
		return ErrEmailTaken
	}
	delete(s.emails, current.Email)
	cp := *e
	s.byID[e.ID] = &cp
	s.emails[e.Email] = e.ID
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.emails, e.Email)
	delete(s.byID, id)
	return nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return *s.byID[id], nil
}
