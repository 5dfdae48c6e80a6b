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
	"sync"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"
)

// NewSized constructs an Arena over a freshly allocated buffer of total
// bytes. The buffer is allocated without zeroing: the arena stamps every
// byte it relies on during seeding, and allocations are handed out dirty
// either way.
func NewSized(total, minAlloc int, lock sync.Locker) (*Arena, error) {
	return New(dirtmake.Bytes(total, total), minAlloc, lock)
}

// PooledArena is an Arena whose backing buffer is borrowed from mcache.
// Close returns the buffer to the cache; the arena and every block
// handed out by it are invalid afterwards.
type PooledArena struct {
	*Arena
	buf []byte
}

// NewPooled constructs an arena over an mcache buffer of at least total
// bytes. Suited to short-lived arenas on request paths, where the
// backing memory should recycle instead of churning the heap.
func NewPooled(total, minAlloc int, lock sync.Locker) (*PooledArena, error) {
	buf := mcache.Malloc(total)
	a, err := New(buf, minAlloc, lock)
	if err != nil {
		mcache.Free(buf)
		return nil, err
	}
	return &PooledArena{Arena: a, buf: buf}, nil
}

// Close returns the backing buffer to mcache. Calling Close twice is a
// no-op.
func (p *PooledArena) Close() {
	if p.buf == nil {
		return
	}
	mcache.Free(p.buf)
	p.buf = nil
	p.Arena = nil
}
