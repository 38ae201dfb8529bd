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

import "github.com/shirou/gopsutil/load"

// LoadAvgSampler samples the current 1-minute system load, per spec §4.7's
// compress.max-loadavg directive and §4.1 step 8's admission gate. It is an
// interface so tests can substitute a fixed value (see scenario 7, §8).
type LoadAvgSampler interface {
	Load1() (float64, error)
}

// SystemLoadAvgSampler samples the real OS load average via gopsutil.
type SystemLoadAvgSampler struct{}

func (SystemLoadAvgSampler) Load1() (float64, error) {
	s, err := load.Avg()
	if err != nil {
		return 0, err
	}
	return s.Load1, nil
}

// LoadExceeded reports whether the configured max is >0 and the sampler's
// current 1-minute load average exceeds it.
func LoadExceeded(sampler LoadAvgSampler, max float64) bool {
	if max <= 0 || sampler == nil {
		return false
	}
	cur, err := sampler.Load1()
	if err != nil {
		return false
	}
	return cur > max
}
