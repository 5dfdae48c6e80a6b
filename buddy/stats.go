/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package buddy

import (
	"fmt"

	"github.com/bytedance/gopkg/util/xxhash3"
)

// Stats holds the arena's performance counters. Allocs, TotalBytes,
// ExcessBytes and the Max* fields are monotonic; InUse and InUseBytes
// track the live state. TotalBytes, InUseBytes and MaxInUseBytes include
// internal fragmentation from rounding up to the block size; MaxRequest
// is the unrounded request size.
type Stats struct {
	Allocs      uint64 // number of allocations served
	TotalBytes  uint64 // cumulative bytes checked out, rounding included
	ExcessBytes uint64 // cumulative internal fragmentation

	MaxRequest int // largest size ever requested, satisfied or not

	InUse      int // live allocation count
	InUseBytes int // live bytes checked out

	MaxInUse      int // peak InUse
	MaxInUseBytes int // peak InUseBytes
}

func (s Stats) String() string {
	return fmt.Sprintf("{allocs: %d, bytes: %d, excess: %d, in use: %d/%dB, peak: %d/%dB, max request: %d}",
		s.Allocs, s.TotalBytes, s.ExcessBytes, s.InUse, s.InUseBytes, s.MaxInUse, s.MaxInUseBytes, s.MaxRequest)
}

// Stats returns a snapshot of the arena's counters.
func (a *Arena) Stats() Stats {
	a.acquire()
	st := a.st
	a.release()
	return st
}

// Fingerprint digests the control array. Two equal fingerprints mean the
// arena has the exact same block layout: same splits, same free blocks,
// same checkouts. Useful for asserting that a sequence of operations
// restored a prior state.
func (a *Arena) Fingerprint() uint64 {
	a.acquire()
	h := xxhash3.Hash(a.ctrl)
	a.release()
	return h
}
