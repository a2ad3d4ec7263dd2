// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"log"
	"sort"

	"github.com/sirupsen/logrus"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	setfinalizers    uint64    // Total number of external references to nodes
	calledfinalizers uint64    // Number of external references that were freed
	history          []gcpoint // Snapshot of GC stats at each occurrence
}

type gcpoint struct {
	nodes            int // Total number of allocated slots in the node table
	freenodes        int // Number of free slots in the node table
	values           int // Number of interned constants in the value pool
	setfinalizers    int // Total number of external references to nodes
	calledfinalizers int // Number of external references that were freed
}

// *************************************************************************

// GC triggers a garbage collection of the node table. Nodes reachable from a
// live Pdd are never collected, so an explicit collection is only useful to
// reclaim memory between computations. Collections also happen on their own
// when an operation runs out of free slots (unless the manager was created
// with the DisableGC option).
func (m *Manager) GC() {
	m.gbc()
}

// gbc is the garbage collector called for reclaiming memory, inside a call
// to insertnode, when there are no free positions available. Roots are the
// nodes currently on the refstack plus every node with a positive reference
// count. Allocated nodes that are not reclaimed do not move.
func (m *Manager) gbc() {
	if _DEBUG {
		m.gcstat.history = append(m.gcstat.history, gcpoint{
			nodes:            len(m.nodes),
			freenodes:        len(m.freenodes),
			values:           len(m.values) - len(m.freevalues),
			setfinalizers:    int(m.gcstat.setfinalizers),
			calledfinalizers: int(m.gcstat.calledfinalizers),
		})
		m.gcstat.setfinalizers = 0
		m.gcstat.calledfinalizers = 0
	} else {
		m.gcstat.history = append(m.gcstat.history, gcpoint{
			nodes:     len(m.nodes),
			freenodes: len(m.freenodes),
			values:    len(m.values) - len(m.freevalues),
		})
	}

	// We could explicitly ask the system to run its GC so that we can
	// decrement the ref counts of handles that had an external reference.
	// This is blocking, and frequent GC is time consuming, so we leave the
	// host runtime to its own schedule.
	//
	// runtime.GC()

	reachable := make([]bool, len(m.nodes))
	m.todo = m.todo[:0]
	for _, r := range m.refstack {
		if !reachable[r] {
			reachable[r] = true
			m.todo = append(m.todo, r)
		}
	}
	for k := len(m.nodes) - 1; k > 1; k-- {
		if m.nodes[k].refcou > 0 && !reachable[k] {
			reachable[k] = true
			m.todo = append(m.todo, int32(k))
		}
	}
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		m.todo = m.todo[:len(m.todo)-1]
		if m.isval(r) {
			continue
		}
		if lo := m.lo(r); !reachable[lo] {
			reachable[lo] = true
			m.todo = append(m.todo, lo)
		}
		if hi := m.hi(r); !reachable[hi] {
			reachable[hi] = true
			m.todo = append(m.todo, hi)
		}
	}

	// sweep: unreachable leaves give their slot back to the value pool,
	// except for a value currently being interned
	m.freenodes = m.freenodes[:0]
	for k := len(m.nodes) - 1; k > 1; k-- {
		n := int32(k)
		if reachable[k] {
			continue
		}
		if !m.isfree(n) && m.isval(n) {
			v := m.val(n)
			if m.freeze != nil && m.freeze.Cmp(v) == 0 {
				continue
			}
			key := v.RatString()
			if info, ok := m.consts[key]; ok {
				m.freevalues = append(m.freevalues, info.value)
				m.values[info.value] = nil
				delete(m.consts, key)
			} else if _DEBUG {
				log.Panicf("leaf %d has no interned constant (%s)", k, key)
			}
		}
		m.setfree(n)
		m.freenodes = append(m.freenodes, n)
	}
	// keep the free list sorted so that the smallest indexes are used first
	sort.Slice(m.freenodes, func(i, j int) bool { return m.freenodes[i] > m.freenodes[j] })

	// drop the memoized results that may mention a reclaimed node and
	// rebuild the unicity table from the survivors
	m.cachepurge()
	m.unique = make(map[nodeshape]int32, len(m.nodes)-len(m.freenodes))
	for k := len(m.nodes) - 1; k > 1; k-- {
		if reachable[k] {
			n := m.nodes[k]
			m.unique[nodeshape{level: n.level, lo: n.lo, hi: n.hi}] = int32(k)
		}
	}
	m.logger.WithFields(logrus.Fields{
		"nodes":  len(m.nodes),
		"free":   len(m.freenodes),
		"values": len(m.values) - len(m.freevalues),
	}).Debug("garbage collection")
	if _DEBUG {
		m.checktable()
	}
}

// trygc runs a full collection and empties the operation cache, pending
// entries included. It is called between the two attempts of an operation
// that ran out of nodes.
func (m *Manager) trygc() {
	m.gbc()
	m.cachereset()
}

// *************************************************************************
// private functions to manipulate the refstack; used to prevent nodes that
// are currently being built (e.g. transient nodes built during an apply) to
// be reclaimed during GC.

func (m *Manager) initref() {
	m.refstack = m.refstack[:0]
}

func (m *Manager) pushref(n int32) int32 {
	m.refstack = append(m.refstack, n)
	return n
}

func (m *Manager) popref(a int) {
	m.refstack = m.refstack[:len(m.refstack)-a]
}
