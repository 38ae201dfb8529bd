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

	bz2 "github.com/dsnet/compress/bzip2"

	liberr "github.com/nabbar/golib/errors"
)

// bzip2Overhead is the 12-byte slack named in spec §4.6.
const bzip2Overhead = 12

type bzip2Codec struct{}

func (bzip2Codec) Encoding() Encoding { return Bzip2 }

// Compress runs the dsnet/compress/bzip2 encoder at its maximum block size
// (Level 9, the library's equivalent of blockSize100k = 9); verbosity and
// workFactor have no counterpart in this encoder's config surface and are
// dropped rather than faked. The compressed size is checked against the
// 32-bit ceiling named in spec §4.6 before returning.
func (bzip2Codec) Compress(input []byte, _ time.Time) ([]byte, liberr.Error) {
	out := newBuffer(preSize(len(input), bzip2Overhead))

	w, err := bz2.NewWriter(out, &bz2.WriterConfig{Level: 9})
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

	if uint64(out.Len())>>32 != 0 {
		return nil, ErrorCodecFinalize.Error(nil)
	}

	return out.Bytes(), nil
}
