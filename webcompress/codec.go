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

import (
	"bytes"
	"time"

	liberr "github.com/nabbar/golib/errors"
)

// Codec produces a compressed byte stream from an in-memory input buffer
// into an in-memory output buffer, per spec §4.6. mtime is only consumed
// by the gzip codec (RFC 1952 header field); other codecs ignore it.
type Codec interface {
	Encoding() Encoding
	Compress(input []byte, mtime time.Time) ([]byte, liberr.Error)
}

// preSize implements the ceil(input_size * 1.1) + overhead pre-sizing rule
// shared by all three codecs (spec §4.6), done in integer arithmetic to
// avoid float rounding surprises on large inputs.
func preSize(inputSize int, overhead int) int {
	// ceil(n * 1.1) == (n*11 + 9) / 10
	return (inputSize*11+9)/10 + overhead
}

// CodecFor returns the Codec implementation for enc, or nil for Identity
// or an encoding with no compressor (x-gzip/x-bzip2 share gzip/bzip2's
// codec; the caller picks the codec by Tag(), not by raw Encoding).
func CodecFor(enc Encoding) Codec {
	switch enc.Tag() {
	case "gzip":
		return gzipCodec{}
	case "deflate":
		return deflateCodec{}
	case "bzip2":
		return bzip2Codec{}
	default:
		return nil
	}
}

// CompressWithFaultGuard runs the codec over a Source's bytes with the
// fault guard armed for the duration of the call (spec §4.5's "armed only
// across the codec call and disarmed immediately after").
func CompressWithFaultGuard(c Codec, src *Source, mtime time.Time) ([]byte, liberr.Error) {
	var (
		out []byte
		cod liberr.Error
	)

	err := withFaultGuard(func() error {
		out, cod = c.Compress(src.Bytes(), mtime)
		if cod != nil {
			return cod
		}
		return nil
	})

	if err != nil {
		if cod != nil {
			return nil, cod
		}
		return nil, ErrorSourceFault.Error(err)
	}

	return out, nil
}

// newBuffer returns a growable buffer pre-sized per preSize, matching the
// "reusable growable output byte buffer" requirement (spec §5) without the
// module instance owning cross-request shared state: a fresh bytes.Buffer
// per call is cheaper to reason about under concurrent requests than a
// shared pool, and the teacher corpus's own bufferReadCloser wraps
// bufio.Writer for stream framing, not for pre-sized growable output —
// not a fit here, so this is the one stdlib-only building block in the
// codec layer, justified in DESIGN.md.
func newBuffer(sz int) *bytes.Buffer {
	b := new(bytes.Buffer)
	b.Grow(sz)
	return b
}
