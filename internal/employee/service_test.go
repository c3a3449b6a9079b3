package employee

import (
	"context"
	"fmt"
	"testing"
	"time"

	"staffdesk.org/internal/apperr"
)

func newTestService() *Service {
	seq := 0
	return NewService(NewInMemory(),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("emp-%03d", seq)
		}),
		WithClock(func() time.Time {
			return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func validInput() Input {
	return Input{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
		Position:   "Engineer",
		Salary:     120000,
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("unexpected email: %s", created.Email)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Fatalf("record mismatch: %+v vs %+v", got, created)
	}
}

func TestCreateNormalizesInput(t *testing.T) {
	svc := newTestService()
	in := validInput()
	in.Email = "  ADA@Example.COM "
	in.FirstName = " Ada "

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %s", created.Email)
	}
	if created.FirstName != "Ada" {
		t.Fatalf("first name not trimmed: %q", created.FirstName)
	}
}

func TestCreateMissingFields(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), Input{Department: "HR"})
	if !apperr.Is(err, apperr.KindMissingValue) {
		t.Fatalf("expected missing value error, got %v", err)
	}
	if e := apperr.As(err); e == nil || len(e.Details) != 3 {
		t.Fatalf("expected three missing-field details, got %+v", e)
	}
}

func TestCreateInvalidFields(t *testing.T) {
	svc := newTestService()
	in := validInput()
	in.Email = "not-an-email"
	in.Salary = -1

	_, err := svc.Create(context.Background(), in)
	if !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if e := apperr.As(err); e == nil || len(e.Details) != 2 {
		t.Fatalf("expected two violation details, got %+v", e)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	in := validInput()
	in.FirstName = "Another"
	_, err := svc.Create(ctx, in)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput()
	in.Position = "Staff Engineer"
	in.Salary = 150000
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Position != "Staff Engineer" || updated.Salary != 150000 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatal("created_at must be preserved")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update(context.Background(), "missing", validInput())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := validInput()
	second.Email = "grace@example.com"
	other, err := svc.Create(ctx, second)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput()
	in.Email = first.Email
	if _, err := svc.Update(ctx, other.ID, in); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestFindByEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := svc.FindByEmail(ctx, "  ADA@Example.com ")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found != created {
		t.Fatalf("record mismatch: %+v vs %+v", found, created)
	}

	if _, err := svc.FindByEmail(ctx, "nobody@example.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.FindByEmail(ctx, "  "); !apperr.Is(err, apperr.KindMissingValue) {
		t.Fatalf("expected missing value, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListFilterAndPaging(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i, dept := range []string{"Engineering", "HR", "Engineering", "Finance"} {
		in := validInput()
		in.Email = fmt.Sprintf("emp%d@example.com", i)
		in.Department = dept
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	eng, err := svc.List(ctx, Filter{Department: "engineering"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(eng) != 2 {
		t.Fatalf("expected 2 engineering records, got %d", len(eng))
	}

	page, err := svc.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected paged result of 2, got %d", len(page))
	}

	if _, err := svc.List(ctx, Filter{Limit: -1}); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input for negative limit, got %v", err)
	}
}
