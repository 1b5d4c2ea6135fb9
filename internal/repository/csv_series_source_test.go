package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	applogger "BrentWatch/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestCSVSeriesSourceLoad(t *testing.T) {
	csv := "Date,Price\n" +
		"21-May-87,18.45\n" +
		"20-May-87,18.63\n" + // out of order, must be sorted
		"22-May-87,-1\n" + // non-positive, dropped
		"21-May-87,19.00\n" + // duplicate date, first kept
		"garbage,row\n"
	path := writeTemp(t, "prices.csv", csv)

	src := NewCSVSeriesSource(path, "02-Jan-06", testLogger(t))
	series, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("got %d points, want 2", series.Len())
	}
	if !series.Points[0].Date.Before(series.Points[1].Date) {
		t.Error("series not date-ascending")
	}
	if series.Points[0].Price != 18.63 {
		t.Errorf("first price = %.2f, want 18.63", series.Points[0].Price)
	}
	if series.Points[1].Price != 18.45 {
		t.Errorf("second price = %.2f, want 18.45 (first occurrence of the date)", series.Points[1].Price)
	}
}

func TestCSVSeriesSourceMissingFile(t *testing.T) {
	src := NewCSVSeriesSource(filepath.Join(t.TempDir(), "absent.csv"), "02-Jan-06", testLogger(t))
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for a missing prices file")
	}
}

func TestCSVSeriesSourceCancelledContext(t *testing.T) {
	path := writeTemp(t, "prices.csv", "Date,Price\n20-May-87,18.63\n")
	src := NewCSVSeriesSource(path, "02-Jan-06", testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Load(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
