package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSchedule(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadScheduleInheritsDefaults(t *testing.T) {
	path := writeSchedule(t, `segments:
  - frequency: 10
    duration: 60
  - frequency: 6
    duration: 120
    volume: 0.5
    transition: linear
`)

	segments, err := loadSchedule(path, 0.7, "sigmoid")
	if err != nil {
		t.Fatalf("loadSchedule() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}

	if segments[0].Volume != 0.7 || segments[0].Transition != "sigmoid" {
		t.Fatalf("segment 0 = %+v, want inherited volume 0.7 and sigmoid", segments[0])
	}
	if segments[1].Volume != 0.5 || segments[1].Transition != "linear" {
		t.Fatalf("segment 1 = %+v, want explicit volume 0.5 and linear", segments[1])
	}
}

func TestLoadScheduleKeepsExplicitZeroVolume(t *testing.T) {
	path := writeSchedule(t, `segments:
  - frequency: 10
    duration: 60
    volume: 0
`)

	segments, err := loadSchedule(path, 0.7, "sigmoid")
	if err != nil {
		t.Fatalf("loadSchedule() error = %v", err)
	}

	// An explicitly silent segment must not inherit the flag volume.
	if segments[0].Volume != 0 {
		t.Fatalf("volume = %v, want 0", segments[0].Volume)
	}
}

func TestLoadScheduleRejectsEmpty(t *testing.T) {
	path := writeSchedule(t, "segments: []\n")

	if _, err := loadSchedule(path, 0.7, "sigmoid"); err == nil {
		t.Fatal("expected error for empty schedule")
	}
}

func TestLoadScheduleMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := loadSchedule(missing, 0.7, "sigmoid"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
