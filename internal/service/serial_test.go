package service

import (
	"testing"
	"time"
)

func TestSerialDatePrefix(t *testing.T) {
	day := time.Date(2025, 1, 1, 14, 30, 0, 0, time.UTC)
	if got := serialDatePrefix(day); got != "DC-20250101-" {
		t.Errorf("serialDatePrefix = %q", got)
	}
}

func TestFormatSerial(t *testing.T) {
	if got := formatSerial("DC-20250101-", 7); got != "DC-20250101-0007" {
		t.Errorf("formatSerial = %q", got)
	}
	// Sequences past four digits widen instead of wrapping
	if got := formatSerial("DC-20250101-", 12345); got != "DC-20250101-12345" {
		t.Errorf("formatSerial = %q", got)
	}
}

func TestParseSerialSeq(t *testing.T) {
	tests := []struct {
		name   string
		serial string
		want   int64
	}{
		{"normal", "DC-20250101-0007", 7},
		{"empty", "", 0},
		{"different day", "DC-20241231-0099", 0},
		{"garbage suffix", "DC-20250101-xyz", 0},
		{"no suffix", "DC-20250101-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseSerialSeq(tt.serial, "DC-20250101-"); got != tt.want {
				t.Errorf("parseSerialSeq(%q) = %d, want %d", tt.serial, got, tt.want)
			}
		})
	}
}

func TestNextSerial(t *testing.T) {
	if got := nextSerial("DC-20250101-", "DC-20250101-0007"); got != "DC-20250101-0008" {
		t.Errorf("nextSerial = %q", got)
	}
	// First serial of the day starts at 1
	if got := nextSerial("DC-20250101-", ""); got != "DC-20250101-0001" {
		t.Errorf("nextSerial = %q", got)
	}
	// Yesterday's maximum does not carry over
	if got := nextSerial("DC-20250101-", "DC-20241231-0099"); got != "DC-20250101-0001" {
		t.Errorf("nextSerial = %q", got)
	}
}
