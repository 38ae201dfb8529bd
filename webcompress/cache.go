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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/logger"
)

// CacheOutcome is the result of CacheDirector.Resolve.
type CacheOutcome int

const (
	// CacheSkip: another worker owns this entry, or a non-racy failure
	// occurred; the pipeline must fall through to the next handler.
	CacheSkip CacheOutcome = iota
	// CacheHit: entry already exists with a complete body; rewrite the
	// physical path to it.
	CacheHit
	// CacheWritten: this call became the writer and produced a complete
	// entry; rewrite the physical path to it.
	CacheWritten
)

type CacheResult struct {
	Outcome  CacheOutcome
	Path     string
	Ratio    int
	Err      liberr.Error
}

// CacheDirector implements spec §4.4: path derivation, single-writer
// exclusive creation, cleanup-on-failure.
type CacheDirector struct {
	Log logger.FuncLog
}

func (c CacheDirector) log() logger.Logger {
	if c.Log == nil {
		return nil
	}
	return c.Log()
}

// CachePath derives the on-disk cache key per spec §3/§4.4:
// <cache_dir>/<relpath>-<encoding_tag>-<base_etag>, where relpath is the
// physical path with the document-root prefix stripped, or the request
// URI path if the physical path does not start with the document root.
func CachePath(cacheDir, docRoot, physicalPath, uriPath, baseETag string, enc Encoding) string {
	rel := uriPath
	if docRoot != "" && strings.HasPrefix(physicalPath, docRoot) {
		rel = strings.TrimPrefix(physicalPath, docRoot)
	}
	rel = strings.TrimPrefix(rel, "/")

	return filepath.Join(cacheDir, rel+"-"+enc.Tag()+"-"+baseETag)
}

// Resolve implements the hit/in-progress/miss state machine of §4.4. load
// is invoked only on a genuine miss, to obtain the source bytes to
// compress; it is not called on hit or in-progress.
func (c CacheDirector) Resolve(path string, sourceSize int64, codec Codec, mtime time.Time, load func() (*Source, liberr.Error)) CacheResult {
	if st, err := os.Stat(path); err == nil {
		if st.Size() == 0 {
			// another worker owns this entry (I2): skip, do not wait.
			return CacheResult{Outcome: CacheSkip}
		}

		ratio := 0
		if sourceSize > 0 {
			ratio = int((st.Size() * 100) / sourceSize)
		}
		return CacheResult{Outcome: CacheHit, Path: path, Ratio: ratio}
	}

	// attemptID tags this write attempt in logs only; it is never part of
	// the cache key, so two concurrent attempts racing for the same path
	// still resolve to the single-writer protocol in I1/I2.
	attemptID := uuid.New().String()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		if l := c.log(); l != nil {
			l.Warning("cache parent mkdir failed (attempt=%s)", err, attemptID)
		}
		return CacheResult{Outcome: CacheSkip, Err: ErrorCacheMkdir.Error(err)}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			// lost the creation race (I1): the other worker is the writer.
			return CacheResult{Outcome: CacheSkip}
		}
		if l := c.log(); l != nil {
			l.Warning("cache file exclusive create failed (attempt=%s)", err, attemptID)
		}
		return CacheResult{Outcome: CacheSkip, Err: ErrorCacheCreate.Error(err)}
	}

	src, lerr := load()
	if lerr != nil {
		return c.abort(f, path, lerr, attemptID)
	}
	defer func() { _ = src.Close() }()

	out, cerr := CompressWithFaultGuard(codec, src, mtime)
	if cerr != nil {
		return c.abort(f, path, cerr, attemptID)
	}

	n, werr := f.Write(out)
	if werr != nil || n != len(out) {
		return c.abort(f, path, ErrorCacheWrite.Error(werr), attemptID)
	}

	if cerr := f.Close(); cerr != nil {
		return c.failAfterClose(path, ErrorCacheClose.Error(cerr), attemptID)
	}

	ratio := 0
	if sourceSize > 0 {
		ratio = int((int64(len(out)) * 100) / sourceSize)
	}

	return CacheResult{Outcome: CacheWritten, Path: path, Ratio: ratio}
}

// abort implements the failure cleanup ordering required by spec §5:
// (1) close (the mapping is already released by src.Close in the caller's
// defer by the time this runs on the load/compress paths, or not yet open
// on the write path), (2) close the output descriptor, (3) unlink.
func (c CacheDirector) abort(f *os.File, path string, cause liberr.Error, attemptID string) CacheResult {
	_ = f.Close()
	if err := os.Remove(path); err != nil {
		if l := c.log(); l != nil {
			l.Warning("cache cleanup unlink failed (attempt=%s)", err, attemptID)
		}
	}
	return CacheResult{Outcome: CacheSkip, Err: cause}
}

func (c CacheDirector) failAfterClose(path string, cause liberr.Error, attemptID string) CacheResult {
	if err := os.Remove(path); err != nil {
		if l := c.log(); l != nil {
			l.Warning("cache cleanup unlink failed (attempt=%s)", err, attemptID)
		}
	}
	return CacheResult{Outcome: CacheSkip, Err: cause}
}
