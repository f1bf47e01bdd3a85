package loader

import (
	"os"
	"testing"

	"github.com/zaneham/halmat/internal/engine"
)

func litForLen(n int) engine.LitEntry {
	return engine.LitEntry{
		Type: engine.LitChar,
		Lit1: 1,
		Lit2: int32(uint32(n-1) << 24),
	}
}

func TestLoadSourceStringsMatchesByLength(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "src*.hal")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(`DECLARE X CHARACTER(5) INITIAL ('hello');` + "\n" +
		`DECLARE Y CHARACTER(2) INITIAL ('hi');`); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	e := engine.New(nil)
	e.LIT[0] = litForLen(5)
	e.LIT[1] = litForLen(2)
	e.SetLitCount(2)

	if err := LoadSourceStrings(e, f); err != nil {
		t.Fatalf("LoadSourceStrings: %v", err)
	}

	off0, len0 := e.LitStrOff[0], e.LitStrLen[0]
	got0 := string(e.LitStrPool[off0 : off0+len0])
	if got0 != "hello" {
		t.Errorf("LIT[0] recovered text = %q, want %q", got0, "hello")
	}

	off1, len1 := e.LitStrOff[1], e.LitStrLen[1]
	got1 := string(e.LitStrPool[off1 : off1+len1])
	if got1 != "hi" {
		t.Errorf("LIT[1] recovered text = %q, want %q", got1, "hi")
	}
}

func TestLoadSourceStringsSkipsLengthMismatch(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "src*.hal")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	// First literal in source text is length 3, but the LIT entry expects
	// length 2: the recovery pass must skip past it and retry.
	if _, err := f.WriteString(`'abc' 'hi'`); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	e := engine.New(nil)
	e.LIT[0] = litForLen(2)
	e.SetLitCount(1)

	if err := LoadSourceStrings(e, f); err != nil {
		t.Fatalf("LoadSourceStrings: %v", err)
	}

	off, ln := e.LitStrOff[0], e.LitStrLen[0]
	got := string(e.LitStrPool[off : off+ln])
	if got != "hi" {
		t.Errorf("recovered text = %q, want %q (skipping the length-3 mismatch)", got, "hi")
	}
}

func TestScanQuotedStringsHandlesEscapedQuote(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "src*.hal")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(`'it''s here'`); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	strs := scanQuotedStrings(f)
	if len(strs) != 1 || strs[0] != "it's here" {
		t.Errorf("scanQuotedStrings = %v, want [\"it's here\"]", strs)
	}
}
