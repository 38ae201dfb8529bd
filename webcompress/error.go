/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package webcompress

import "github.com/nabbar/golib/errors"

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgWebCompress
	ErrorConfigCacheDirStat
	ErrorConfigCacheDirCreate
	ErrorSourceOpen
	ErrorSourceStat
	ErrorSourceRead
	ErrorSourceMap
	ErrorSourceFault
	ErrorCodecInit
	ErrorCodecWrite
	ErrorCodecFinalize
	ErrorCacheMkdir
	ErrorCacheCreate
	ErrorCacheWrite
	ErrorCacheClose
	ErrorCacheUnlink
	ErrorCacheStat
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorConfigCacheDirStat:
		return "cache directory cannot be stat-ed"
	case ErrorConfigCacheDirCreate:
		return "cache directory cannot be created"
	case ErrorSourceOpen:
		return "source file cannot be opened"
	case ErrorSourceStat:
		return "source file cannot be stat-ed"
	case ErrorSourceRead:
		return "source file read failed or short-read"
	case ErrorSourceMap:
		return "source file memory-map failed"
	case ErrorSourceFault:
		return "source file access faulted while mapped"
	case ErrorCodecInit:
		return "codec initialization failed"
	case ErrorCodecWrite:
		return "codec write failed"
	case ErrorCodecFinalize:
		return "codec finalization failed"
	case ErrorCacheMkdir:
		return "cache parent directory cannot be created"
	case ErrorCacheCreate:
		return "cache file exclusive create failed"
	case ErrorCacheWrite:
		return "cache file write failed"
	case ErrorCacheClose:
		return "cache file close failed"
	case ErrorCacheUnlink:
		return "cache file cleanup unlink failed"
	case ErrorCacheStat:
		return "cache file cannot be stat-ed"
	}

	return ""
}
