package iounit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zaneham/halmat/internal/value"
)

func TestWriteCharHasNoLeadingSpace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New()
	if err := b.MapFile(6, path, false); err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	args := []value.Value{{Tag: value.Char, Str: "HELLO"}}
	formats := []uint8{FormatChar}
	if err := b.Write(6, args, formats); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "HELLO\n" {
		t.Errorf("file contents = %q, want %q", got, "HELLO\n")
	}
}

func TestWriteIntegerIsRightJustifiedFixedWidth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New()
	if err := b.MapFile(7, path, false); err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	args := []value.Value{{Tag: value.Integer, Int: 42}}
	formats := []uint8{FormatInt}
	if err := b.Write(7, args, formats); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "         42\n" // right-justified in an 11-wide field
	if string(got) != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestWriteScalarUsesScientificFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New()
	if err := b.MapFile(9, path, false); err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	args := []value.Value{{Tag: value.Scalar, Real: 1.5}}
	formats := []uint8{FormatFloat}
	if err := b.Write(9, args, formats); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := " 1.5000000E+00\n"
	if string(got) != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestWriteZeroScalarIsSpecialCased(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New()
	if err := b.MapFile(10, path, false); err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	args := []value.Value{{Tag: value.Scalar, Real: 0}}
	formats := []uint8{FormatFloat}
	if err := b.Write(10, args, formats); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != " 0.0\n" {
		t.Errorf("file contents = %q, want %q", got, " 0.0\n")
	}
}

func TestWriteMultipleArgsSingleTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New()
	if err := b.MapFile(8, path, false); err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	args := []value.Value{
		{Tag: value.Char, Str: "X="},
		{Tag: value.Integer, Int: 5},
	}
	formats := []uint8{FormatChar, FormatInt}
	if err := b.Write(8, args, formats); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "X=          5\n" // "X=" then Int 5 right-justified in an 11-wide field
	if string(got) != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestReadIsAZeroStub(t *testing.T) {
	b := New()
	v, err := b.Read(6)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v.Tag != value.Integer || v.Int != 0 {
		t.Errorf("Read() = %+v, want zero Integer", v)
	}
}

func TestUnmappedChannelDefaultsToStdout(t *testing.T) {
	b := New()
	args := []value.Value{{Tag: value.Integer, Int: 1}}
	formats := []uint8{FormatInt}
	if err := b.Write(12, args, formats); err != nil {
		t.Fatalf("Write to unmapped channel: %v", err)
	}
}
