// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"fmt"
)

// nullNode marks the result slot of a pending cache entry: the operation has
// been claimed by a frame of the recursion but its result is not known yet.
const nullNode int32 = -1

// opCode enumerates the binary operations memoized in the operation cache.
type opCode int32

const (
	opAdd opCode = iota
	opMul
	opReduce
	opMinus
)

func (op opCode) String() string {
	switch op {
	case opAdd:
		return "add"
	case opMul:
		return "mul"
	case opReduce:
		return "reduce"
	case opMinus:
		return "minus"
	}
	return fmt.Sprintf("opCode(%d)", int32(op))
}

// opKey identifies one memoized operation.
type opKey struct {
	a  int32
	b  int32
	op opCode
}

// opEntry is a unit of information in the operation cache. Entries are
// recycled through a single spare slot to limit pressure on the allocator.
type opEntry struct {
	result int32
}

// cacheStat stores status information about cache usage.
type cacheStat struct {
	uniqueAccess int // accesses to the unicity table
	uniqueHit    int // entries actually found in the unicity table
	uniqueMiss   int // entries not found in the unicity table
	opHit        int // entries found in the operation cache
	opMiss       int // entries not found in the operation cache
}

// popentry returns a fresh or recycled entry, in pending state.
func (m *Manager) popentry() *opEntry {
	e := m.spare
	if e == nil {
		e = &opEntry{}
	} else {
		m.spare = nil
	}
	e.result = nullNode
	return e
}

// pushentry recycles e as the spare entry.
func (m *Manager) pushentry(e *opEntry) {
	m.spare = e
}

// matchop implements the probe protocol of the operation cache. A resolved
// entry for the given key is a hit. Otherwise the caller receives a pending
// entry, already installed in the cache, whose result slot it must fill
// after computing the operation. A pending entry can only be found again
// after an aborted computation, in which case we recompute into it.
func (m *Manager) matchop(a, b int32, op opCode) (*opEntry, int32, bool) {
	e1 := m.popentry()
	k := opKey{a: a, b: b, op: op}
	e2, ok := m.opcache[k]
	if !ok {
		m.opcache[k] = e1
		e2 = e1
	}
	if e1 != e2 {
		m.pushentry(e1)
		if e2.result != nullNode {
			if _DEBUG {
				m.cachestat.opHit++
			}
			return nil, e2.result, true
		}
	}
	if _DEBUG {
		m.cachestat.opMiss++
	}
	return e2, nullNode, false
}

// cachepurge removes the resolved entries of the operation cache, whose
// results may reference nodes freed by a collection. Pending entries stay:
// their operands are protected by the frames that installed them.
func (m *Manager) cachepurge() {
	for k, e := range m.opcache {
		if e.result != nullNode {
			delete(m.opcache, k)
		}
	}
}

// cachereset empties the whole operation cache, pending entries included.
// Frames holding a detached entry simply write their result to an entry that
// is no longer reachable from the cache.
func (m *Manager) cachereset() {
	m.opcache = make(map[opKey]*opEntry, len(m.opcache))
}

// String prints information about the cache performance. The information
// contains the number of accesses to the unicity table, the number of times
// a node was (not) found there, and the hit and miss counts for the
// operation cache. Counters are only incremented in debug builds.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
