package config

import "testing"

func TestParseUnitFlags(t *testing.T) {
	got, err := ParseUnitFlags([]string{"6=/tmp/out.txt", "3=/tmp/in.txt"})
	if err != nil {
		t.Fatalf("ParseUnitFlags: %v", err)
	}
	want := []UnitMapping{
		{Channel: 6, Path: "/tmp/out.txt"},
		{Channel: 3, Path: "/tmp/in.txt"},
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mapping[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseUnitFlagsEmpty(t *testing.T) {
	got, err := ParseUnitFlags(nil)
	if err != nil {
		t.Fatalf("ParseUnitFlags: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0", len(got))
	}
}

func TestParseUnitFlagsMalformed(t *testing.T) {
	tests := []string{
		"noequals",
		"=/tmp/out.txt",
		"6=",
	}
	for _, spec := range tests {
		if _, err := ParseUnitFlags([]string{spec}); err == nil {
			t.Errorf("ParseUnitFlags(%q) = nil error, want error", spec)
		}
	}
}

func TestParseUnitFlagsChannelRange(t *testing.T) {
	if _, err := ParseUnitFlags([]string{"16=/tmp/x"}); err == nil {
		t.Error("channel 16 should be out of range")
	}
	if _, err := ParseUnitFlags([]string{"-1=/tmp/x"}); err == nil {
		t.Error("channel -1 should be out of range")
	}
	if _, err := ParseUnitFlags([]string{"0=/tmp/x"}); err != nil {
		t.Errorf("channel 0 should be valid: %v", err)
	}
	if _, err := ParseUnitFlags([]string{"15=/tmp/x"}); err != nil {
		t.Errorf("channel 15 should be valid: %v", err)
	}
}
