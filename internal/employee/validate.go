package employee

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	maxNameLen  = 100
	maxEmailLen = 254
	maxFieldLen = 100
)

// Normalize trims whitespace and lower-cases the email.
func (in Input) Normalize() Input {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Department = strings.TrimSpace(in.Department)
	in.Position = strings.TrimSpace(in.Position)
	return in
}

// Missing returns the names of required fields that are absent. A non-empty
// result is reported separately from format violations.
func (in Input) Missing() []string {
	var missing []string
	if in.FirstName == "" {
		missing = append(missing, "firstName is required")
	}
	if in.LastName == "" {
		missing = append(missing, "lastName is required")
	}
	if in.Email == "" {
		missing = append(missing, "email is required")
	}
	return missing
}

// Violations returns format rule violations for fields that are present.
func (in Input) Violations() []string {
	var violations []string
	if len(in.FirstName) > maxNameLen {
		violations = append(violations, "firstName must be at most 100 characters")
	}
	if len(in.LastName) > maxNameLen {
		violations = append(violations, "lastName must be at most 100 characters")
	}
	if in.Email != "" {
		if len(in.Email) > maxEmailLen {
			violations = append(violations, "email must be at most 254 characters")
		} else if !emailPattern.MatchString(in.Email) {
			violations = append(violations, "email is not a valid address")
		}
	}
	if len(in.Department) > maxFieldLen {
		violations = append(violations, "department must be at most 100 characters")
	}
	if len(in.Position) > maxFieldLen {
		violations = append(violations, "position must be at most 100 characters")
	}
	if in.Salary < 0 {
		violations = append(violations, "salary must be >= 0")
	}
	return violations
}
