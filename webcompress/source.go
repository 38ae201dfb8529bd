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
	"io"
	"os"
	"runtime/debug"

	"github.com/xujiajun/mmap-go"

	liberr "github.com/nabbar/golib/errors"
)

// maxMappableSize is the 128 MiB hard ceiling named in spec §4.5.
const maxMappableSize = 128 << 20

// Source presents a regular file's bytes to a codec as a contiguous byte
// slice, preferring a read-only shared memory-map with a buffered-read
// fallback, per spec §4.5.
type Source struct {
	data    []byte
	mapping mmap.MMap
	mapped  bool
}

// LoadSource opens path, verifies it is a regular file within the
// mappable ceiling, and returns its bytes. Go has no sigsetjmp/siglongjmp;
// the SIGBUS-class-fault contract (spec §4.5/§9, strategy (a)) is honoured
// here by never returning control to codec code with a live mapping that
// could fault without supervision — see Source.Fault/Close and
// CompressWithFaultGuard in codec.go, which is strategy (b): confine the
// mapped region to a short codec call and translate faults into an error.
func LoadSource(path string, size int64) (*Source, liberr.Error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrorSourceOpen.Error(err)
	}
	defer func() { _ = f.Close() }()

	if size <= 0 || size > maxMappableSize {
		return loadBuffered(f, size)
	}

	m, err := mmap.MapRegion(f, int(size), mmap.RDONLY, 0, 0)
	if err != nil {
		// EINVAL and friends: some filesystems reject shared mappings.
		// Fall back to buffered read rather than retrying a private
		// mapping, since Go's mmap-go does not expose MAP_PRIVATE
		// semantics distinctly; the observable contract (bytes in hand,
		// no crash) is unaffected.
		return loadBuffered(f, size)
	}

	return &Source{data: m, mapping: m, mapped: true}, nil
}

func loadBuffered(f *os.File, size int64) (*Source, liberr.Error) {
	if size <= 0 {
		st, err := f.Stat()
		if err != nil {
			return nil, ErrorSourceStat.Error(err)
		}
		size = st.Size()
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, ErrorSourceRead.Error(err)
	}

	return &Source{data: buf}, nil
}

func (s *Source) Bytes() []byte {
	return s.data
}

// Close releases the mapping, if any. Safe to call on a buffered source.
func (s *Source) Close() liberr.Error {
	if s == nil || !s.mapped {
		return nil
	}
	if err := s.mapping.Unmap(); err != nil {
		return ErrorSourceFault.Error(err)
	}
	return nil
}

// withFaultGuard runs fn with panic-on-fault armed, exactly for its
// duration, translating a SIGBUS/SIGSEGV-class access violation during fn
// into an error instead of crashing the process — the Go-idiomatic
// equivalent of arming a process-wide signal handler only across the
// codec call (spec §5, "SIGBUS handling").
func withFaultGuard(fn func() error) (err error) {
	debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(false)

	defer func() {
		if r := recover(); r != nil {
			err = ErrorSourceFault.Error(nil)
		}
	}()

	return fn()
}
