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

import "unsafe"

// The freelists are intrusive: each free block stores its (next, prev)
// record in the first 8 bytes of its own payload. node is the only place
// the payload is reinterpreted; everything else works on block indices.

// node returns the link record stored at the head of block i.
func (a *Arena) node(i int) *link {
	return (*link)(unsafe.Add(a.base, i<<a.atomShift))
}

// listPush inserts block i at the head of the class-k freelist.
// The caller must already have stamped ctrl[i] with (ctrlFree | k).
func (a *Arena) listPush(i, k int) {
	n := a.node(i)
	n.next = a.freelist[k]
	n.prev = -1
	if n.next >= 0 {
		a.node(int(n.next)).prev = int32(i)
	}
	a.freelist[k] = int32(i)
}

// listRemove splices block i out of the class-k freelist.
func (a *Arena) listRemove(i, k int) {
	n := a.node(i)
	if n.prev < 0 {
		a.freelist[k] = n.next
	} else {
		a.node(int(n.prev)).next = n.next
	}
	if n.next >= 0 {
		a.node(int(n.next)).prev = n.prev
	}
}

// listPopLowest removes and returns the lowest-index block on the
// class-k freelist. Splitting the lowest free block keeps the arena
// compact and makes allocation deterministic for a fixed request trace.
// The caller must ensure the list is non-empty.
func (a *Arena) listPopLowest(k int) int {
	i := a.freelist[k]
	lowest := i
	for i >= 0 {
		if i < lowest {
			lowest = i
		}
		i = a.node(int(i)).next
	}
	a.listRemove(int(lowest), k)
	return int(lowest)
}
