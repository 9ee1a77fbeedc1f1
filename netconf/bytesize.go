/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package netconf

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteSize is a binary byte quantity ("4KiB", "256K", "2M") parsed the way
// the teacher's own size package reads config values, re-implemented here
// because that package only survived in this pack as tests with no
// implementation to adapt (see DESIGN.md).
type ByteSize int64

const (
	SizeNul  ByteSize = 0
	SizeUnit ByteSize = 1
	SizeKilo ByteSize = SizeUnit << 10
	SizeMega ByteSize = SizeKilo << 10
	SizeGiga ByteSize = SizeMega << 10
	SizeTera ByteSize = SizeGiga << 10
)

var byteSizeUnits = []struct {
	suffixes []string
	scale    ByteSize
}{
	{[]string{"TB", "TIB", "T"}, SizeTera},
	{[]string{"GB", "GIB", "G"}, SizeGiga},
	{[]string{"MB", "MIB", "M"}, SizeMega},
	{[]string{"KB", "KIB", "K"}, SizeKilo},
	{[]string{"B", ""}, SizeUnit},
}

// ParseByteSize parses a single term such as "4KiB", "256K" or "128" (bytes,
// no suffix). Fractional amounts ("1.5MB") are accepted; the result is
// truncated to the nearest byte.
func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("netconf: empty byte size")
	}

	upper := strings.ToUpper(s)
	for _, u := range byteSizeUnits {
		for _, suffix := range u.suffixes {
			if suffix == "" {
				continue
			}
			if strings.HasSuffix(upper, suffix) {
				numPart := strings.TrimSpace(s[:len(s)-len(suffix)])
				if numPart == "" {
					continue
				}
				f, err := strconv.ParseFloat(numPart, 64)
				if err != nil {
					continue
				}
				return ByteSize(f * float64(u.scale)), nil
			}
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("netconf: invalid byte size %q", s)
	}
	return ByteSize(f), nil
}

func (b ByteSize) String() string {
	switch {
	case b >= SizeTera && b%SizeTera == 0:
		return fmt.Sprintf("%dTiB", b/SizeTera)
	case b >= SizeGiga && b%SizeGiga == 0:
		return fmt.Sprintf("%dGiB", b/SizeGiga)
	case b >= SizeMega && b%SizeMega == 0:
		return fmt.Sprintf("%dMiB", b/SizeMega)
	case b >= SizeKilo && b%SizeKilo == 0:
		return fmt.Sprintf("%dKiB", b/SizeKilo)
	default:
		return fmt.Sprintf("%dB", int64(b))
	}
}

func (b ByteSize) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

func (b *ByteSize) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	v, err := ParseByteSize(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *ByteSize) UnmarshalText(data []byte) error {
	v, err := ParseByteSize(string(data))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
