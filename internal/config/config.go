/*
 * HALMAT - Unit mapping configuration.
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

// Package config parses the --unit flag's comma-separated N=PATH list into
// channel-to-file mappings, the CLI surface's equivalent of the teacher's device
// configuration line grammar, simplified to what HALMAT's I/O model needs.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// UnitMapping is one --unit N=PATH binding.
type UnitMapping struct {
	Channel int
	Path    string
}

// ParseUnitFlags parses each "N=PATH" element of the split --unit list.
func ParseUnitFlags(specs []string) ([]UnitMapping, error) {
	mappings := make([]UnitMapping, 0, len(specs))
	for _, spec := range specs {
		eq := strings.IndexByte(spec, '=')
		if eq <= 0 || eq == len(spec)-1 {
			return nil, fmt.Errorf("config: malformed --unit spec %q, want N=PATH", spec)
		}
		channel, err := strconv.Atoi(spec[:eq])
		if err != nil {
			return nil, fmt.Errorf("config: malformed channel number in %q: %w", spec, err)
		}
		if channel < 0 || channel > 15 {
			return nil, fmt.Errorf("config: channel %d out of range 0-15", channel)
		}
		mappings = append(mappings, UnitMapping{Channel: channel, Path: spec[eq+1:]})
	}
	return mappings, nil
}
