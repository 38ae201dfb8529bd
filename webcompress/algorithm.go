/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package webcompress

import "github.com/bits-and-blooms/bitset"

// Encoding enumerates the content-codings this module knows how to parse
// from Accept-Encoding and, for the non-identity ones, produce.
type Encoding uint8

const (
	Identity Encoding = iota
	Gzip
	XGzip
	Deflate
	Bzip2
	XBzip2

	encodingCount = XBzip2 + 1
)

// List returns every encoding this module is aware of, in no particular priority.
func List() []Encoding {
	return []Encoding{Identity, Gzip, XGzip, Deflate, Bzip2, XBzip2}
}

// priorityOrder implements spec's fixed selection priority:
// bzip2 > x-bzip2 > gzip > x-gzip > deflate. identity is never selected.
var priorityOrder = []Encoding{Bzip2, XBzip2, Gzip, XGzip, Deflate}

func (e Encoding) String() string {
	switch e {
	case Gzip:
		return "gzip"
	case XGzip:
		return "x-gzip"
	case Deflate:
		return "deflate"
	case Bzip2:
		return "bzip2"
	case XBzip2:
		return "x-bzip2"
	default:
		return "identity"
	}
}

// Tag returns the canonical cache/ETag tag for this encoding: x-gzip and
// x-bzip2 collapse onto their canonical form, as required by the cache key
// derivation rule.
func (e Encoding) Tag() string {
	switch e {
	case Gzip, XGzip:
		return "gzip"
	case Deflate:
		return "deflate"
	case Bzip2, XBzip2:
		return "bzip2"
	default:
		return ""
	}
}

func (e Encoding) IsIdentity() bool {
	return e == Identity
}

// EncodingSet is a bitset over the known Encoding values, used both for the
// configured allow-list and for the set a request's Accept-Encoding header
// matched.
type EncodingSet struct {
	b *bitset.BitSet
}

func NewEncodingSet() *EncodingSet {
	return &EncodingSet{b: bitset.New(uint(encodingCount))}
}

// AllEncodings returns a set with every compiled-in encoding enabled; this is
// the default allowed_encodings per spec §4.7 when the config token list is empty.
func AllEncodings() *EncodingSet {
	s := NewEncodingSet()
	for _, e := range List() {
		s.Set(e)
	}
	return s
}

func (s *EncodingSet) Set(e Encoding) *EncodingSet {
	s.b.Set(uint(e))
	return s
}

func (s *EncodingSet) Has(e Encoding) bool {
	if s == nil || s.b == nil {
		return false
	}
	return s.b.Test(uint(e))
}

// Intersect returns a new set containing only encodings present in both sets.
func (s *EncodingSet) Intersect(o *EncodingSet) *EncodingSet {
	r := NewEncodingSet()
	if s == nil || o == nil {
		return r
	}
	r.b = s.b.Intersection(o.b)
	return r
}

func (s *EncodingSet) IsEmpty() bool {
	return s == nil || s.b == nil || s.b.None()
}

// Best returns the highest-priority non-identity encoding present in the
// set, per spec §4.1 step 11, and false if none qualify.
func (s *EncodingSet) Best() (Encoding, bool) {
	if s == nil {
		return Identity, false
	}
	for _, e := range priorityOrder {
		if s.Has(e) {
			return e, true
		}
	}
	return Identity, false
}
