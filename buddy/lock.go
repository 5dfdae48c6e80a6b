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

import "sync"

// LockFuncs adapts an embedder's acquire/release capability pair into
// the sync.Locker the Arena consumes. The functions receive Arg and may
// report a status; the arena ignores status codes, matching embedders
// whose mutex primitives cannot fail meaningfully once created.
type LockFuncs struct {
	Arg     interface{}
	Acquire func(arg interface{}) int
	Release func(arg interface{}) int
}

var _ sync.Locker = (*LockFuncs)(nil)

func (l *LockFuncs) Lock() {
	l.Acquire(l.Arg)
}

func (l *LockFuncs) Unlock() {
	l.Release(l.Arg)
}
