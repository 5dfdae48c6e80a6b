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

import "math/bits"

// logCeil returns the ceiling of log2(v): logCeil(1)=0, logCeil(5)=3.
func logCeil(v int) int {
	if v <= 1 {
		return 0
	}
	return bits.Len(uint(v - 1))
}

// classFor returns the smallest size class k with szAtom<<k >= size.
// size must not exceed MaxAllocSize.
func (a *Arena) classFor(size int) int {
	if size <= a.szAtom {
		return 0
	}
	return bits.Len(uint(size-1)) - a.atomShift
}

// allocUnsafe serves one allocation. The caller holds the lock.
func (a *Arena) allocUnsafe(size int) []byte {
	// Track the maximum request before any rejection so demand is
	// observable even when it cannot be satisfied.
	if size > a.st.MaxRequest {
		a.st.MaxRequest = size
	}
	if size > MaxAllocSize {
		return nil
	}

	k := a.classFor(size)
	full := a.szAtom << k

	// Find the smallest class with a free block, splitting it down
	// to class k. Each split keeps the lower half and pushes the
	// upper half onto the freelist one class below.
	bin := k
	for bin <= logMax && a.freelist[bin] < 0 {
		bin++
	}
	if bin > logMax {
		return nil
	}
	i := a.listPopLowest(bin)
	a.ctrl[i+(1<<bin)-1] = 0 // drop the free-run tail mark
	for bin > k {
		bin--
		half := i + 1<<bin
		a.ctrl[half] = byte(bin) | ctrlFree
		a.ctrl[half+(1<<bin)-1] = byte(bin) | ctrlFree
		a.listPush(half, bin)
	}
	a.ctrl[i] = byte(k)

	a.st.Allocs++
	a.st.TotalBytes += uint64(full)
	a.st.ExcessBytes += uint64(full - size)
	a.st.InUse++
	a.st.InUseBytes += full
	if a.st.InUse > a.st.MaxInUse {
		a.st.MaxInUse = a.st.InUse
	}
	if a.st.InUseBytes > a.st.MaxInUseBytes {
		a.st.MaxInUseBytes = a.st.InUseBytes
	}

	off := i << a.atomShift
	return a.pool[off : off+size : off+full]
}

// freeUnsafe returns block i to the freelists, merging it with its free
// buddy as long as the buddy roots a free block of the same class. The
// caller holds the lock and has verified ctrl[i] roots a live block.
func (a *Arena) freeUnsafe(i int) {
	k := int(a.ctrl[i] & ctrlLogsize)
	run := 1 << k

	a.st.InUse--
	a.st.InUseBytes -= a.szAtom << k

	// Free runs are marked at both ends. Every obsolete mark is cleared
	// as runs merge, so the control array always describes exactly the
	// current partition and nothing else.
	a.ctrl[i] = byte(k) | ctrlFree
	a.ctrl[i+run-1] = byte(k) | ctrlFree
	for k < logMax {
		var buddy int
		if (i>>k)&1 == 1 {
			buddy = i - run
		} else {
			buddy = i + run
		}
		// Seeding may have placed a smaller block where the buddy
		// would be, leaving it partly outside the payload.
		if buddy+run > a.nBlock {
			break
		}
		// A buddy that was itself subdivided roots a smaller class;
		// merging across it would fabricate an overlapping block.
		if a.ctrl[buddy] != byte(k)|ctrlFree {
			break
		}
		a.listRemove(buddy, k)
		if buddy < i {
			a.ctrl[i] = 0
			i = buddy
		} else {
			a.ctrl[buddy] = 0
		}
		a.ctrl[i+run-1] = 0 // stale tail of the lower half
		k++
		run <<= 1
		a.ctrl[i] = byte(k) | ctrlFree
		a.ctrl[i+run-1] = byte(k) | ctrlFree
	}
	a.listPush(i, k)
}

// Offset reports the byte offset of a live block inside the arena's
// payload, for embedders that store positions instead of slices. Panics
// if buf is not arena memory.
func (a *Arena) Offset(buf []byte) int {
	return a.offsetOf(buf)
}

// IsValidOffset reports whether off could be a valid block offset:
// inside the payload and aligned to the atom size. It does not consult
// the control array, so it is safe on untrusted input before FreeAt.
func (a *Arena) IsValidOffset(off int) bool {
	if off < 0 || off >= len(a.pool) {
		return false
	}
	return off&(a.szAtom-1) == 0
}

// FreeAt returns the block at the given payload offset to the arena.
// The offset is the same value reported by Offset for the block. Panics
// if the offset fails IsValidOffset or roots a block that is already
// free. An aligned offset inside a block, rather than at its start, is
// not detected.
func (a *Arena) FreeAt(off int) {
	if !a.IsValidOffset(off) {
		panic("buddy: offset out of range")
	}
	a.acquire()
	i := off >> a.atomShift
	if a.ctrl[i]&ctrlFree != 0 || int(a.ctrl[i]&ctrlLogsize) > logMax {
		a.release()
		panic("buddy: double free or invalid block")
	}
	a.freeUnsafe(i)
	a.release()
}
