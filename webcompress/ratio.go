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

import "context"

// ratioKey is the context key carrying the compression ratio the source
// sets as an ASCII "ratio" request environment variable (spec §6). A typed
// context value is the idiomatic Go substitute for a CGI-style per-request
// environment table.
type ratioKey struct{}

func withRatio(ctx context.Context, percent int) context.Context {
	return context.WithValue(ctx, ratioKey{}, percent)
}

// RatioFromContext returns the compression ratio recorded for this
// request, and whether one was recorded at all. Per spec §4.4, ratio is
// round(cached_size * 100 / source_size); it is 0 and absent for requests
// the pipeline skipped or served from a buffer without a cache hit.
func RatioFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(ratioKey{}).(int)
	return v, ok
}
