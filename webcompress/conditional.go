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
	"net/http"
	"strings"
	"time"
)

// ConditionalResult is the outcome of evaluating a conditional request
// against a candidate ETag/Last-Modified pair.
type ConditionalResult struct {
	Finished bool
	Status   int
}

// EvaluateConditional implements the collaborator contract named in spec
// §4.3/§6: RFC 7232-compliant evaluation of If-Match, If-None-Match and
// If-Modified-Since against the given etag/lastModified. Called once with
// the base ETag, and again (if the pipeline reaches that far) with the
// compressed ETag.
func EvaluateConditional(r *http.Request, etag string, lastModified time.Time) ConditionalResult {
	if im := r.Header.Get("If-Match"); im != "" && im != "*" {
		if !matchesAny(im, etag, false) {
			return ConditionalResult{Finished: true, Status: http.StatusPreconditionFailed}
		}
	}

	if inm := r.Header.Get("If-None-Match"); inm != "" {
		if inm == "*" || matchesAny(inm, etag, true) {
			return ConditionalResult{Finished: true, Status: http.StatusNotModified}
		}
		return ConditionalResult{}
	}

	if ims := r.Header.Get("If-Modified-Since"); ims != "" && !lastModified.IsZero() {
		if t, err := http.ParseTime(ims); err == nil {
			if !lastModified.Truncate(time.Second).After(t) {
				return ConditionalResult{Finished: true, Status: http.StatusNotModified}
			}
		}
	}

	return ConditionalResult{}
}

// matchesAny walks a comma-separated If-None-Match/If-Match field value,
// applying weak comparison (the "W/" prefix is stripped before comparing)
// when weak is true.
func matchesAny(field, etag string, weak bool) bool {
	for _, raw := range strings.Split(field, ",") {
		cand := strings.TrimSpace(raw)
		if !weak {
			if cand == etag {
				return true
			}
			continue
		}
		cand = strings.TrimPrefix(cand, "W/")
		if cand == etag || cand == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

// CompressedETag applies the per-encoding ETag transform required by
// invariant I4: "<base_etag>-<encoding_tag>".
func CompressedETag(baseETag string, enc Encoding) string {
	return baseETag + "-" + enc.Tag()
}
