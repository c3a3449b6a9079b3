package employee

import (
	"errors"
	"time"
)

// Employee is a directory record.
type Employee struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Salary     int64     `json:"salary"` // minor units, no floats
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Input carries the mutable fields for create and update operations.
type Input struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Salary     int64  `json:"salary"`
}

// Filter narrows List results.
type Filter struct {
	Department string
	Limit      int
	Offset     int
}

var (
	ErrNotFound   = errors.New("employee: not found")
	ErrEmailTaken = errors.New("employee: email already in use")
)
