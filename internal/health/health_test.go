package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRunAllHealthy(t *testing.T) {
	reg := NewRegistry("staffdesk-api", "1.0.0",
		CheckFunc{CheckName: "store", Fn: func(ctx context.Context) error { return nil }},
	)

	report := reg.Run(context.Background())
	if report.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %s", report.Status)
	}
	if len(report.Checks) != 1 || report.Checks[0].Name != "store" {
		t.Fatalf("unexpected checks: %+v", report.Checks)
	}
	if !reg.Healthy(context.Background()) {
		t.Fatal("Healthy should report true")
	}
}

func TestRunAggregatesFailure(t *testing.T) {
	reg := NewRegistry("staffdesk-api", "1.0.0",
		CheckFunc{CheckName: "store", Fn: func(ctx context.Context) error { return nil }},
		CheckFunc{CheckName: "broken", Fn: func(ctx context.Context) error { return errors.New("down") }},
	)

	report := reg.Run(context.Background())
	if report.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %s", report.Status)
	}
	var broken *CheckResult
	for i := range report.Checks {
		if report.Checks[i].Name == "broken" {
			broken = &report.Checks[i]
		}
	}
	if broken == nil || broken.Status != StatusUnhealthy || broken.Error != "down" {
		t.Fatalf("failure not reported: %+v", report.Checks)
	}
}

func TestDBCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()
	if err := (DBCheck{DB: db}).Check(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	if err := (DBCheck{DB: db}).Check(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestDBCheckNilDatabase(t *testing.T) {
	if err := (DBCheck{}).Check(context.Background()); err != nil {
		t.Fatalf("nil db must pass: %v", err)
	}
}
