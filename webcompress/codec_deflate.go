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
	"time"

	"github.com/klauspost/compress/flate"

	liberr "github.com/nabbar/golib/errors"
)

// deflateOverhead is the 12-byte slack named in spec §4.6 for the raw
// deflate stream, with no extra framing.
const deflateOverhead = 12

type deflateCodec struct{}

func (deflateCodec) Encoding() Encoding { return Deflate }

// Compress produces a raw deflate stream (window bits -15, i.e. no zlib
// wrapper) at the default compression level, via klauspost/compress's
// drop-in faster flate.Writer rather than stdlib compress/flate.
func (deflateCodec) Compress(input []byte, _ time.Time) ([]byte, liberr.Error) {
	out := newBuffer(preSize(len(input), deflateOverhead))

	w, err := flate.NewWriter(out, flate.DefaultCompression)
	if err != nil {
		return nil, ErrorCodecInit.Error(err)
	}

	if _, err = w.Write(input); err != nil {
		_ = w.Close()
		return nil, ErrorCodecWrite.Error(err)
	}

	if err = w.Close(); err != nil {
		return nil, ErrorCodecFinalize.Error(err)
	}

	return out.Bytes(), nil
}
