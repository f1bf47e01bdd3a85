package loader

import (
	"bufio"
	"fmt"
	"os"

	"github.com/zaneham/halmat/internal/engine"
)

// maxSourceStrings bounds how many quoted string literals LoadSourceStrings
// collects from the HAL/S source, matching the reference recovery pass.
const maxSourceStrings = 256

// LoadSourceStringsFile opens the original HAL/S source at path and matches
// its single-quoted string literals against the engine's CHAR LIT entries,
// populating LitStrPool/LitStrOff/LitStrLen so decodeCharLit can recover
// exact text instead of falling back to the packed-word heuristic.
func LoadSourceStringsFile(e *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return LoadSourceStrings(e, f)
}

// LoadSourceStrings implements the recovery pass against an already-open
// reader.
func LoadSourceStrings(e *engine.Engine, r *os.File) error {
	sources := scanQuotedStrings(r)
	if len(sources) == 0 {
		return nil
	}

	poolOff := 1 // offset 0 is reserved as the "no recovered text" sentinel
	srcIdx := 0

	for i := 0; i < e.LitCount() && i < engine.MaxLIT; i++ {
		lit := e.LIT[i]
		if lit.Type != engine.LitChar || lit.Lit1 == 0 {
			continue
		}
		if lit.Lit2 == 0 {
			continue
		}

		expectedLen := int(((uint32(lit.Lit2) >> 24) & 0xFF)) + 1

		for srcIdx < len(sources) {
			s := sources[srcIdx]
			if len(s) == expectedLen {
				if poolOff+len(s) > len(e.LitStrPool) {
					return nil // pool exhausted; leave remaining entries on the fallback path
				}
				copy(e.LitStrPool[poolOff:], s)
				e.LitStrOff[i] = uint16(poolOff)
				e.LitStrLen[i] = uint16(len(s))
				poolOff += len(s)
				srcIdx++
				break
			}
			// Length mismatch: this source string belongs to some other
			// entry. Advance past it but retry the SAME LIT entry against
			// the next one.
			srcIdx++
		}
	}

	return nil
}

// scanQuotedStrings extracts single-quoted string literals from HAL/S
// source text. A doubled quote ('') inside a literal is an escaped quote,
// not a terminator.
func scanQuotedStrings(f *os.File) []string {
	reader := bufio.NewReader(f)
	var strs []string
	var cur []byte
	inString := false

	for len(strs) < maxSourceStrings {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		if !inString {
			if b == '\'' {
				inString = true
				cur = cur[:0]
			}
			continue
		}

		if b == '\'' {
			next, err := reader.Peek(1)
			if err == nil && len(next) == 1 && next[0] == '\'' {
				_, _ = reader.ReadByte()
				cur = append(cur, '\'')
				continue
			}
			strs = append(strs, string(cur))
			inString = false
			continue
		}

		cur = append(cur, b)
	}

	return strs
}
