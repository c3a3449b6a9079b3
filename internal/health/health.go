// Package health aggregates named readiness checks into one report served on
// the public health endpoint.
package health

import (
	"context"
	"database/sql"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Check is a single named probe.
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckResult is the outcome of one probe run.
type CheckResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"durationMs"`
}

// Report aggregates all probe outcomes.
type Report struct {
	Status  string        `json:"status"`
	Service string        `json:"service"`
	Version string        `json:"version"`
	Time    time.Time     `json:"time"`
	Checks  []CheckResult `json:"checks"`
}

// Registry runs a fixed set of checks.
type Registry struct {
	service string
	version string
	checks  []Check
	now     func() time.Time
}

// NewRegistry creates a registry over the given checks.
func NewRegistry(service, version string, checks ...Check) *Registry {
	return &Registry{
		service: service,
		version: version,
		checks:  checks,
		now:     time.Now,
	}
}

// Run executes every check and aggregates the results. The report is
// unhealthy if any single check fails.
func (r *Registry) Run(ctx context.Context) Report {
	report := Report{
		Status:  StatusHealthy,
		Service: r.service,
		Version: r.version,
		Time:    r.now().UTC(),
		Checks:  make([]CheckResult, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		start := r.now()
		err := c.Check(ctx)
		result := CheckResult{
			Name:       c.Name(),
			Status:     StatusHealthy,
			DurationMS: r.now().Sub(start).Milliseconds(),
		}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Error = err.Error()
			report.Status = StatusUnhealthy
		}
		report.Checks = append(report.Checks, result)
	}
	return report
}

// Healthy reports whether the last-run style aggregate would pass; it is a
// convenience for probes that only need a boolean.
func (r *Registry) Healthy(ctx context.Context) bool {
	return r.Run(ctx).Status == StatusHealthy
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

func (c CheckFunc) Name() string                    { return c.CheckName }
func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// DBCheck pings the database.
type DBCheck struct {
	DB *sql.DB
}

func (DBCheck) Name() string { return "database" }

func (c DBCheck) Check(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	return c.DB.PingContext(ctx)
}
