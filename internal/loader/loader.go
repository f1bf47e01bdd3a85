/*
 * HALMAT - Binary and literal-table loader.
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

// Package loader reads a HALMAT binary (big-endian 32-bit code words), its
// paged literal table, and optionally recovers CHAR literal text from the
// original HAL/S source, populating an engine.Engine's tables.
package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/zaneham/halmat/internal/engine"
)

// litPageSize is the number of entries per column in one literal-table
// page: 130 lit1 words, then 130 lit2 words, then 130 lit3 words.
const litPageSize = 130

// LoadBinary reads a stream of big-endian uint32 code words and installs
// them as the engine's code segment. The block count is derived from the
// word count, rounded up to a whole number of BlockWords-sized blocks.
func LoadBinary(e *engine.Engine, r io.Reader) error {
	br := bufio.NewReader(r)
	var words []uint32
	buf := make([]byte, 4)
	for {
		_, err := io.ReadFull(br, buf)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("loader: truncated word at offset %d", len(words)*4)
		}
		if err != nil {
			return fmt.Errorf("loader: %w", err)
		}
		words = append(words, binary.BigEndian.Uint32(buf))
	}
	if len(words) == 0 {
		return fmt.Errorf("loader: empty binary")
	}
	if len(words) > engine.MaxCode {
		return fmt.Errorf("loader: code exceeds %d words", engine.MaxCode)
	}

	blocks := (len(words) + engine.BlockWords - 1) / engine.BlockWords
	if blocks > engine.MaxBlocks {
		return fmt.Errorf("loader: code exceeds %d blocks", engine.MaxBlocks)
	}

	e.Code = words
	e.CodeLen = uint32(len(words))
	e.NumBlocks = uint32(blocks)
	return nil
}

// LoadBinaryFile opens path and loads it with LoadBinary.
func LoadBinaryFile(e *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return LoadBinary(e, f)
}

// LoadLiterals reads the paged literal table (130-entry pages of lit1, then
// lit2, then lit3) and installs each triple into the engine's LIT table.
func LoadLiterals(e *engine.Engine, r io.Reader) error {
	br := bufio.NewReader(r)

	readWord := func() (uint32, bool, error) {
		buf := make([]byte, 4)
		_, err := io.ReadFull(br, buf)
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, fmt.Errorf("loader: %w", err)
		}
		return binary.BigEndian.Uint32(buf), true, nil
	}

	count := 0
	for {
		page1 := make([]uint32, 0, litPageSize)
		ok := true
		for i := 0; i < litPageSize && ok; i++ {
			var w uint32
			var present bool
			var err error
			w, present, err = readWord()
			if err != nil {
				return err
			}
			if !present {
				ok = false
				break
			}
			page1 = append(page1, w)
		}
		if len(page1) == 0 {
			break
		}

		page2 := make([]uint32, len(page1))
		page3 := make([]uint32, len(page1))
		for i := range page1 {
			w, present, err := readWord()
			if err != nil {
				return err
			}
			if !present {
				return fmt.Errorf("loader: truncated literal page (lit2)")
			}
			page2[i] = w
		}
		for i := range page1 {
			w, present, err := readWord()
			if err != nil {
				return err
			}
			if !present {
				return fmt.Errorf("loader: truncated literal page (lit3)")
			}
			page3[i] = w
		}

		for i := range page1 {
			if count >= engine.MaxLIT {
				return fmt.Errorf("loader: literal table exceeds %d entries", engine.MaxLIT)
			}
			e.LIT[count] = engine.LitEntry{
				Type: int32(page1[i]) & 0xFF,
				Lit1: int32(page1[i]),
				Lit2: int32(page2[i]),
				Lit3: int32(page3[i]),
			}
			count++
		}

		if len(page1) < litPageSize {
			break
		}
	}

	e.SetLitCount(count)
	return nil
}

// LoadLiteralsFile opens path and loads it with LoadLiterals.
func LoadLiteralsFile(e *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return LoadLiterals(e, f)
}
