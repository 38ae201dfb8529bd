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

import "strings"

// tokenSeparators mirrors the byte class the source treats as "end of
// candidate name": the candidate must be a case-insensitive prefix of the
// remaining token and the following byte must be one of these, or end of
// token.
func isTokenBoundary(b byte) bool {
	switch b {
	case 0, ',', ';', ' ', '\t':
		return true
	default:
		return false
	}
}

// matchToken reports whether name is a case-insensitive prefix of rest,
// followed by a token boundary (or end of string). "gzipfoo" must not match
// "gzip"; "gzip;q=0.1" must.
func matchToken(rest, name string) bool {
	if len(rest) < len(name) {
		return false
	}
	if !strings.EqualFold(rest[:len(name)], name) {
		return false
	}
	if len(rest) == len(name) {
		return true
	}
	return isTokenBoundary(rest[len(name)])
}

// NegotiateAcceptEncoding walks the Accept-Encoding header value
// token-by-token (comma separated, leading space/tab within a token
// skipped) and returns the set of known encodings it names. Q-values are
// not interpreted: "q=0" still counts as accepted, matching the documented
// simplification in the negotiation rule.
func NegotiateAcceptEncoding(header string) *EncodingSet {
	out := NewEncodingSet()
	if header == "" {
		return out
	}

	for _, raw := range strings.Split(header, ",") {
		tok := raw
		for len(tok) > 0 && (tok[0] == ' ' || tok[0] == '\t') {
			tok = tok[1:]
		}
		if tok == "" {
			continue
		}

		for _, e := range List() {
			if matchToken(tok, e.String()) {
				out.Set(e)
			}
		}
	}

	return out
}

// ParseAllowedEncodings builds the configured allow-list from
// compress.allowed-encodings tokens. Per spec §4.7/§9, matching is
// deliberately substring-based against each known encoding name (so a
// configured token of "gzip" also allows "x-gzip" to be considered, and
// vice versa, reproducing the source's strstr-based behaviour). An empty
// token list means every compiled-in encoding is allowed.
func ParseAllowedEncodings(tokens []string) *EncodingSet {
	if len(tokens) == 0 {
		return AllEncodings()
	}

	out := NewEncodingSet()
	for _, raw := range tokens {
		t := strings.ToLower(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		for _, e := range List() {
			n := e.String()
			if strings.Contains(n, t) || strings.Contains(t, n) {
				out.Set(e)
			}
		}
	}

	return out
}
