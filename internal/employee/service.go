package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"staffdesk.org/internal/apperr"
	"staffdesk.org/internal/ids"
)

// Service applies business rules on top of a Store. Every failure it returns
// is an *apperr.Error so the HTTP boundary can translate it without
// inspecting store internals.
type Service struct {
	store Store
	newID func() string
	now   func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithIDGenerator overrides record id generation (useful for tests).
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs the employee service.
func NewService(store Store, opts ...ServiceOption) *Service {
	svc := &Service{
		store: store,
		newID: ids.New,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create validates the input and stores a new record.
func (s *Service) Create(ctx context.Context, in Input) (Employee, error) {
	in = in.Normalize()
	if missing := in.Missing(); len(missing) > 0 {
		return Employee{}, apperr.New(apperr.KindMissingValue, "employee input incomplete").WithDetails(missing...)
	}
	if violations := in.Violations(); len(violations) > 0 {
		return Employee{}, apperr.New(apperr.KindInvalidInput, "employee input invalid").WithDetails(violations...)
	}

	now := s.now().UTC()
	e := Employee{
		ID:         s.newID(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Department: in.Department,
		Position:   in.Position,
		Salary:     in.Salary,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, &e); err != nil {
		return Employee{}, storeError("create employee", err)
	}
	return e, nil
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	if id == "" {
		return Employee{}, apperr.New(apperr.KindMissingValue, "employee id is required")
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, storeError("get employee", err)
	}
	return e, nil
}

// List returns records matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Employee, error) {
	if f.Limit < 0 || f.Offset < 0 {
		return nil, apperr.New(apperr.KindInvalidInput, "limit and offset must be >= 0")
	}
	if f.Limit == 0 || f.Limit > 1000 {
		f.Limit = 100
	}
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, storeError("list employees", err)
	}
	return list, nil
}

// Update validates the input and replaces the mutable fields of a record.
func (s *Service) Update(ctx context.Context, id string, in Input) (Employee, error) {
	if id == "" {
		return Employee{}, apperr.New(apperr.KindMissingValue, "employee id is required")
	}
	in = in.Normalize()
	if missing := in.Missing(); len(missing) > 0 {
		return Employee{}, apperr.New(apperr.KindMissingValue, "employee input incomplete").WithDetails(missing...)
	}
	if violations := in.Violations(); len(violations) > 0 {
		return Employee{}, apperr.New(apperr.KindInvalidInput, "employee input invalid").WithDetails(violations...)
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, storeError("update employee", err)
	}

	current.FirstName = in.FirstName
	current.LastName = in.LastName
	current.Email = in.Email
	current.Department = in.Department
	current.Position = in.Position
	current.Salary = in.Salary
	current.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, &current); err != nil {
		return Employee{}, storeError("update employee", err)
	}
	return current, nil
}

// FindByEmail returns the record registered under the given address.
func (s *Service) FindByEmail(ctx context.Context, email string) (Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Employee{}, apperr.New(apperr.KindMissingValue, "email is required")
	}
	e, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return Employee{}, storeError("find employee by email", err)
	}
	return e, nil
}

// Delete removes a record by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.New(apperr.KindMissingValue, "employee id is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError("delete employee", err)
	}
	return nil
}

func storeError(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "employee does not exist", err)
	case errors.Is(err, ErrEmailTaken):
		return apperr.Wrap(apperr.KindConflict, "email already in use", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.KindTimeout, op+" timed out", err)
	default:
		return apperr.Wrap(apperr.KindInternal, op+" failed", err)
	}
}
