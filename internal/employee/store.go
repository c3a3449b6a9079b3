package employee

import "context"

// Store describes persistence operations required by the employee service.
type Store interface {
	Create(ctx context.Context, e *Employee) error
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, f Filter) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) (Employee, error)
}
