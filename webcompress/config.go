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
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/golib/errors"
)

// Config is the on-disk/viper-bound representation of the compress.*
// directives (spec §4.7). It is merged into an EffectiveConfig per request
// scope by Merge.
type Config struct {
	// FileType is compress.filetype: the list of MIME type strings eligible
	// for compression. Empty disables the feature for the owning scope.
	FileType []string `mapstructure:"filetype" json:"filetype" yaml:"filetype" toml:"filetype"`

	// AllowedEncodings is compress.allowed-encodings: substring-matched
	// tokens against gzip/x-gzip/deflate/bzip2/x-bzip2. Empty means every
	// compiled-in encoding is allowed.
	AllowedEncodings []string `mapstructure:"allowed_encodings" json:"allowed_encodings" yaml:"allowed_encodings" toml:"allowed_encodings"`

	// CacheDir is compress.cache-dir. Empty disables on-disk caching
	// (buffer-only mode).
	CacheDir string `mapstructure:"cache_dir" json:"cache_dir" yaml:"cache_dir" toml:"cache_dir"`

	// MaxFileSizeKB is compress.max-filesize expressed in KB, as the
	// directive is documented; stored and shifted to bytes by Merge.
	MaxFileSizeKB uint16 `mapstructure:"max_filesize_kb" json:"max_filesize_kb" yaml:"max_filesize_kb" toml:"max_filesize_kb"`

	// MaxLoadAvg is compress.max-loadavg, a string so that "0" and "" both
	// mean disabled and anything else is parsed as a real number.
	MaxLoadAvg string `mapstructure:"max_loadavg" json:"max_loadavg" yaml:"max_loadavg" toml:"max_loadavg" validate:"omitempty,numeric"`

	// FollowSymlink mirrors the source's r->conf.follow_symlink gate (see
	// SPEC_FULL's supplemented features); default false denies traversal
	// through a symlink in the physical path.
	FollowSymlink bool `mapstructure:"follow_symlink" json:"follow_symlink" yaml:"follow_symlink" toml:"follow_symlink"`
}

// Validate runs struct-tag validation and, when CacheDir is set, creates it
// (mode 0700, tolerating EEXIST) and stats it, per spec §4.7: "config load
// fails if stat fails".
func (c Config) Validate() liberr.Error {
	val := validator.New()

	if err := val.Struct(c); err != nil {
		return ErrorParamsEmpty.Error(err)
	}

	if c.CacheDir == "" {
		return nil
	}

	if err := os.MkdirAll(c.CacheDir, 0700); err != nil {
		return ErrorConfigCacheDirCreate.Error(err)
	}

	if _, err := os.Stat(c.CacheDir); err != nil {
		return ErrorConfigCacheDirStat.Error(err)
	}

	return nil
}

// EffectiveConfig is the per-request merged policy (spec §3).
type EffectiveConfig struct {
	CompressibleTypes map[string]struct{}
	AllowedEncodings  *EncodingSet
	CacheDir          string
	MaxFileSize       int64 // 0 = unlimited
	MaxLoadAvg        float64
	FollowSymlink     bool
}

// Merge derives the EffectiveConfig for a request from the scoped Config,
// applying the KB->byte shift and the substring-matched encoding token
// list exactly as described in spec §4.7.
func Merge(c Config) EffectiveConfig {
	types := make(map[string]struct{}, len(c.FileType))
	for _, t := range c.FileType {
		t = strings.TrimSpace(t)
		if t != "" {
			types[t] = struct{}{}
		}
	}

	var loadAvg float64
	if c.MaxLoadAvg != "" {
		if v, err := strconv.ParseFloat(c.MaxLoadAvg, 64); err == nil {
			loadAvg = v
		}
	}

	return EffectiveConfig{
		CompressibleTypes: types,
		AllowedEncodings:  ParseAllowedEncodings(c.AllowedEncodings),
		CacheDir:          c.CacheDir,
		MaxFileSize:       int64(c.MaxFileSizeKB) << 10,
		MaxLoadAvg:        loadAvg,
		FollowSymlink:     c.FollowSymlink,
	}
}

// Enabled reports whether the feature is active for this request's merged
// scope: the gate in spec §4.1 step 1 ("compressible_types empty after
// config merge" => skip).
func (e EffectiveConfig) Enabled() bool {
	return len(e.CompressibleTypes) > 0
}

// Compressible reports whether the given Content-Type value (which may
// carry a ";" parameter) matches the configured compressible_types set,
// comparing both the full string and the truncated type/subtype, per
// spec §4.1 step 4.
func (e EffectiveConfig) Compressible(contentType string) bool {
	if _, ok := e.CompressibleTypes[contentType]; ok {
		return true
	}
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		base := strings.TrimSpace(contentType[:idx])
		if _, ok := e.CompressibleTypes[base]; ok {
			return true
		}
	}
	return false
}
