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

// Package webcompress implements an HTTP/1.x response compression stage:
// content negotiation, conditional GET, an on-disk compressed-file cache
// with a single-writer protocol, and gzip/raw-deflate/bzip2 codec
// back-ends over memory-mapped (or buffered) source files.
package webcompress

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/logger"
)

// FileStat is the collaborator contract named in spec §6 ("Stat cache"):
// metadata for the physical path the pipeline was asked to serve.
type FileStat struct {
	Exists      bool
	IsRegular   bool
	Size        int64
	ModTime     time.Time
	ContentType string
	ETag        string
}

// StatFunc resolves a physical path to a FileStat; the out-of-scope stat
// cache / ETag-base collaborator named in spec §1/§6.
type StatFunc func(physicalPath string) FileStat

// RewritePathFunc rewrites the response's physical path to point at a
// cache file (hit or freshly written), handing the body off to the
// downstream static-file handler, per spec §4.1 step 13.
type RewritePathFunc func(r *http.Request, newPhysicalPath string)

// Pipeline is the request-time state machine of spec §4.1, implemented as
// a decorator over the next http.Handler in the chain: on every "skip" it
// calls next unmodified; on a decisive outcome it writes the response
// itself and does not call next.
type Pipeline struct {
	Config       EffectiveConfig
	DocumentRoot string
	Stat         StatFunc
	Rewrite      RewritePathFunc
	LoadSampler  LoadAvgSampler
	Log          logger.FuncLog
	Next         http.Handler
}

func (p Pipeline) log() logger.Logger {
	if p.Log == nil {
		return nil
	}
	return p.Log()
}

// ServeHTTP runs the full state machine. physicalPath/uriPath are read off
// the request the same way the out-of-scope handler-dispatch framework
// would have already resolved them; this module does not do URL->path
// resolution itself (spec §1 Non-goals).
func (p Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request, physicalPath string) {
	// 1. Gate.
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		p.Next.ServeHTTP(w, r)
		return
	}
	if physicalPath == "" || !p.Config.Enabled() {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 2. Stat.
	fs := p.Stat(physicalPath)
	if !fs.Exists {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	// 3. Eligibility.
	if !fs.IsRegular {
		p.Next.ServeHTTP(w, r)
		return
	}
	if fs.Size < 128 {
		p.Next.ServeHTTP(w, r)
		return
	}
	if p.Config.MaxFileSize > 0 && fs.Size > p.Config.MaxFileSize {
		p.Next.ServeHTTP(w, r)
		return
	}
	if fs.Size > (1<<63-1)/11*10 {
		// (size * 1.1) would overflow; refuse to even attempt sizing a buffer.
		p.Next.ServeHTTP(w, r)
		return
	}

	// 4. MIME match.
	if !p.Config.Compressible(fs.ContentType) {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 5. Vary: appended once we are a genuine candidate for this resource.
	w.Header().Add("Vary", "Accept-Encoding")

	// 6. Read Accept-Encoding.
	ae := r.Header.Get("Accept-Encoding")
	if ae == "" {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 7. Negotiate.
	matched := NegotiateAcceptEncoding(ae).Intersect(p.Config.AllowedEncodings)
	if matched.IsEmpty() {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 8. Load.
	if LoadExceeded(p.LoadSampler, p.Config.MaxLoadAvg) {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 9. Open source file is deferred to the cache-miss/buffer path below,
	// honouring the symlink policy first.
	if !p.Config.FollowSymlink && pathHasSymlink(physicalPath) {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 10. Conditional GET, base.
	if res := EvaluateConditional(r, fs.ETag, fs.ModTime); res.Finished {
		w.Header().Set("Content-Type", fs.ContentType)
		w.Header().Set("Last-Modified", fs.ModTime.UTC().Format(http.TimeFormat))
		if fs.ETag != "" {
			w.Header().Set("ETag", fs.ETag)
		}
		w.WriteHeader(res.Status)
		return
	}

	// 11. Pick encoding.
	enc, ok := matched.Best()
	if !ok {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 12. Conditional GET, compressed.
	compressedETag := CompressedETag(fs.ETag, enc)
	if res := EvaluateConditional(r, compressedETag, fs.ModTime); res.Finished {
		w.Header().Set("Content-Type", fs.ContentType)
		w.Header().Set("Last-Modified", fs.ModTime.UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", compressedETag)
		w.Header().Set("Content-Encoding", enc.String())
		w.WriteHeader(res.Status)
		return
	}

	codec := CodecFor(enc)
	if codec == nil {
		p.Next.ServeHTTP(w, r)
		return
	}

	// 13. Materialise.
	if p.Config.CacheDir != "" && fs.ETag != "" {
		path := CachePath(p.Config.CacheDir, p.DocumentRoot, physicalPath, r.URL.Path, fs.ETag, enc)

		director := CacheDirector{Log: p.Log}
		result := director.Resolve(path, fs.Size, codec, fs.ModTime, func() (*Source, liberr.Error) {
			return LoadSource(physicalPath, fs.Size)
		})

		switch result.Outcome {
		case CacheSkip:
			if result.Err != nil {
				if l := p.log(); l != nil {
					l.Warning("compression cache miss handling failed", result.Err)
				}
			}
			p.Next.ServeHTTP(w, r)
			return
		case CacheHit, CacheWritten:
			r = r.WithContext(withRatio(r.Context(), result.Ratio))
			p.Rewrite(r, result.Path)
			w.Header().Set("Content-Encoding", enc.String())
			w.Header().Set("Content-Type", fs.ContentType)
			w.Header().Set("Last-Modified", fs.ModTime.UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", compressedETag)
			p.Next.ServeHTTP(w, r)
			return
		}
	}

	// Buffer-only mode: no cache_dir, or no base ETag to key on.
	src, lerr := LoadSource(physicalPath, fs.Size)
	if lerr != nil {
		if l := p.log(); l != nil {
			l.Warning("source open failed", lerr)
		}
		p.Next.ServeHTTP(w, r)
		return
	}
	defer func() { _ = src.Close() }()

	out, cerr := CompressWithFaultGuard(codec, src, fs.ModTime)
	if cerr != nil {
		if l := p.log(); l != nil {
			l.Warning("compression failed", cerr)
		}
		p.Next.ServeHTTP(w, r)
		return
	}

	// 14. Emit headers.
	w.Header().Set("Content-Encoding", enc.String())
	w.Header().Set("Content-Type", fs.ContentType)
	w.Header().Set("Last-Modified", fs.ModTime.UTC().Format(http.TimeFormat))
	w.Header().Set("ETag", compressedETag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// pathHasSymlink walks the path components checking for a symlink,
// grounded on the source's stat_cache_path_contains_symlink gate
// (SPEC_FULL supplemented features).
func pathHasSymlink(path string) bool {
	cur := ""
	for _, part := range strings.Split(filepath.Clean(path), string(filepath.Separator)) {
		if part == "" {
			cur = string(filepath.Separator)
			continue
		}
		cur = filepath.Join(cur, part)
		fi, err := os.Lstat(cur)
		if err != nil {
			return false
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return true
		}
	}
	return false
}
