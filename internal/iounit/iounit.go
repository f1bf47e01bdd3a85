/*
 * HALMAT - I/O backend.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package iounit implements engine.IOBackend: per-channel file mapping, the
// reference's write-format codes, and optional EBCDIC-to-ASCII translation
// of character output. The
// reference engine ignores channel/unit numbers entirely and always writes
// stdout; mapping channels to files and EBCDIC translation are this port's
// own supplement on top of that.
package iounit

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/zaneham/halmat/internal/iounit/xlat"
	"github.com/zaneham/halmat/internal/value"
)

// Format codes as staged by XXAR's TAG1 field.
const (
	FormatChar  = 2
	FormatFloat = 5
	FormatInt   = 6
)

// Unit is one mapped I/O channel: a destination writer and whether its
// CHAR output should be translated from EBCDIC to ASCII before being
// written.
type Unit struct {
	w      *bufio.Writer
	closer io.Closer
	ebcdic bool
}

// Backend maps HALMAT channel numbers to Units and implements
// engine.IOBackend. Channel 6 always exists, defaulting to stdout, unless
// explicitly remapped.
type Backend struct {
	units map[int]*Unit
}

// New returns a Backend with channel 6 (the default WRIT target) mapped to
// stdout.
func New() *Backend {
	b := &Backend{units: make(map[int]*Unit)}
	b.units[6] = &Unit{w: bufio.NewWriter(os.Stdout)}
	return b
}

// MapFile opens path for writing and binds it to channel; the names
// "stdout" and "stderr" bind the process's own streams instead of a file.
// ebcdic requests CP037-to-ASCII translation of the CHAR arguments written
// to this channel.
func (b *Backend) MapFile(channel int, path string, ebcdic bool) error {
	switch path {
	case "stdout":
		b.units[channel] = &Unit{w: bufio.NewWriter(os.Stdout), ebcdic: ebcdic}
		return nil
	case "stderr":
		b.units[channel] = &Unit{w: bufio.NewWriter(os.Stderr), ebcdic: ebcdic}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("iounit: %w", err)
	}
	b.units[channel] = &Unit{w: bufio.NewWriter(f), closer: f, ebcdic: ebcdic}
	return nil
}

// Close flushes and closes every mapped file unit.
func (b *Backend) Close() error {
	var firstErr error
	for _, u := range b.units {
		if err := u.w.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
		if u.closer != nil {
			if err := u.closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (b *Backend) unitFor(channel int) *Unit {
	if u, ok := b.units[channel]; ok {
		return u
	}
	u := &Unit{w: bufio.NewWriter(os.Stdout)}
	b.units[channel] = u
	return u
}

// Write renders one staged I/O argument list to the channel's destination:
// CHAR args verbatim (translated from CP037 to ASCII on an EBCDIC unit),
// SCALAR args as "% .7E" (" 0.0" when zero), INTEGER args right-justified
// in a fixed-width decimal field, and a single trailing newline after the
// whole list.
func (b *Backend) Write(channel int, args []value.Value, formats []uint8) error {
	u := b.unitFor(channel)

	for i, v := range args {
		var f uint8
		if i < len(formats) {
			f = formats[i]
		}
		var s string
		switch f {
		case FormatChar:
			s = v.Str
			if u.ebcdic {
				buf := []byte(s)
				for j := range buf {
					buf[j] = xlat.EBCDICToASCII(buf[j])
				}
				s = string(buf)
			}
		case FormatFloat, FormatInt:
			s = formatValue(v)
		default:
			s = formatValue(v)
		}
		if _, err := u.w.WriteString(s); err != nil {
			return fmt.Errorf("iounit: %w", err)
		}
	}

	if _, err := u.w.WriteString("\n"); err != nil {
		return fmt.Errorf("iounit: %w", err)
	}
	return u.w.Flush()
}

// Read is a stub: HALMAT READ/RDAL input is out of scope for this port,
// so Read always yields a zero INTEGER.
func (b *Backend) Read(channel int) (value.Value, error) {
	return value.Zero(value.Integer), nil
}

// intFieldWidth is the fixed field width for right-justified integer output.
// Wide enough for any 32-bit signed decimal, including its sign.
const intFieldWidth = 11

func formatValue(v value.Value) string {
	switch v.Tag {
	case value.Integer:
		return fmt.Sprintf("%*d", intFieldWidth, v.Int)
	case value.Scalar:
		if v.Real == 0 {
			return " 0.0"
		}
		return fmt.Sprintf("% .7E", v.Real)
	case value.Char:
		return v.Str
	default:
		return fmt.Sprintf("%*d", intFieldWidth, v.ToInt())
	}
}
