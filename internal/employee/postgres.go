package employee

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL via database/sql (pgx stdlib
// driver). Uniqueness of email is enforced by a unique index; the duplicate
// key error is translated to ErrEmailTaken.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const employeeColumns = `id, first_name, last_name, email, department, position, salary, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, e *Employee) error {
	_, err := s.db.ExecContext(ctx,
		`insert into employees(id, first_name, last_name, email, department, position, salary, created_at, updated_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.Salary, e.CreatedAt, e.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *PGStore) Get(ctx context.Context, id string) (Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+employeeColumns+` from employees where id=$1`, id)
	return scanEmployee(row)
}

func (s *PGStore) List(ctx context.Context, f Filter) ([]Employee, error) {
	query := `select ` + employeeColumns + ` from employees`
	args := make([]any, 0, 3)
	if f.Department != "" {
		query += ` where lower(department)=lower($1)`
		args = append(args, f.Department)
	}
	query += ` order by id asc`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` limit $` + strconv.Itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += ` offset $` + strconv.Itoa(len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, e *Employee) error {
	result, err := s.db.ExecContext(ctx,
		`update employees
		 set first_name=$2, last_name=$3, email=$4, department=$5, position=$6, salary=$7, updated_at=$8
		 where id=$1`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.Salary, e.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `delete from employees where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+employeeColumns+` from employees where email=$1`, email)
	return scanEmployee(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.Position, &e.Salary, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// pgx surfaces SQLSTATE 23505 for unique index violations.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
