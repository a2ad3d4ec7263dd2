// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"log"

	"github.com/sirupsen/logrus"
)

// node is one slot of the node table. A node with a nonzero hi branch
// represents the polynomial lo + x*hi, where x is the variable at the level
// of the node. A node with hi equal to zero is a leaf; its lo field is then
// an index into the value pool of the manager. Free slots have both branches
// set to zero, a shape they share only with the constant zero, which sits at
// index 0 and is never collected.
type node struct {
	refcou int32 // count of external references, saturates at _MAXREFCOUNT
	level  int32 // order of the variable labelling the node
	lo     int32 // branch without the variable; value pool index on leaves
	hi     int32 // branch carrying the variable; 0 exactly on leaves and free slots
}

// nodeshape is the key of the unicity table. Two live nodes never share the
// same shape, so structural equality of polynomials is equality of indexes.
type nodeshape struct {
	level int32
	lo    int32
	hi    int32
}

func (m *Manager) lo(n int32) int32 {
	return m.nodes[n].lo
}

func (m *Manager) hi(n int32) int32 {
	return m.nodes[n].hi
}

// level returns the level of node n, or -1 on leaves so that a constant
// always orders below internal nodes in level comparisons.
func (m *Manager) level(n int32) int32 {
	if m.nodes[n].hi == 0 {
		return -1
	}
	return m.nodes[n].level
}

func (m *Manager) isval(n int32) bool {
	return m.nodes[n].hi == 0
}

// isfree reports whether slot n is unused. Only meaningful for n > 1.
func (m *Manager) isfree(n int32) bool {
	return m.nodes[n].lo == 0 && m.nodes[n].hi == 0
}

func (m *Manager) setfree(n int32) {
	m.nodes[n] = node{}
}

// varid returns the index of the variable labelling node n, going through
// the level ordering of the manager.
func (m *Manager) varid(n int32) int {
	return int(m.level2var[m.nodes[n].level])
}

// makenode is the canonicalizing constructor of the package: a zero hi
// branch collapses to the lo branch, so no allocated node ever has hi == 0
// unless it is a leaf. Expects level(lo) < level and level(hi) <= level.
func (m *Manager) makenode(level, lo, hi int32) (int32, error) {
	if hi == pddZero {
		return lo, nil
	}
	if _DEBUG {
		if !(m.isval(lo) || m.level(lo) < level) {
			log.Panicf("misordered lo branch in makenode(%d, %d, %d)", level, lo, hi)
		}
		if !(m.isval(hi) || m.level(hi) <= level) {
			log.Panicf("misordered hi branch in makenode(%d, %d, %d)", level, lo, hi)
		}
	}
	return m.insertnode(nodeshape{level: level, lo: lo, hi: hi})
}

// insertnode returns the unique index for the given shape, allocating a slot
// when the shape is new. Allocation can trigger a garbage collection and a
// resize of the node table; it fails with errMemory when the table cannot
// grow anymore.
func (m *Manager) insertnode(shape nodeshape) (int32, error) {
	if _DEBUG {
		m.cachestat.uniqueAccess++
	}
	if res, ok := m.unique[shape]; ok {
		if _DEBUG {
			m.cachestat.uniqueHit++
		}
		return res, nil
	}
	if _DEBUG {
		m.cachestat.uniqueMiss++
	}
	if len(m.freenodes) == 0 {
		if !m.disablegc {
			m.gbc()
			// the unicity table was rebuilt during collection, so we give
			// the lookup a second chance before allocating
			if res, ok := m.unique[shape]; ok {
				return res, nil
			}
		}
		if len(m.freenodes)*100 <= m.minfreenodes*len(m.nodes) {
			if err := m.noderesize(); err != nil && len(m.freenodes) == 0 {
				return -1, err
			}
		}
		if len(m.freenodes) == 0 {
			return -1, errMemory
		}
	}
	res := m.freenodes[len(m.freenodes)-1]
	m.freenodes = m.freenodes[:len(m.freenodes)-1]
	m.nodes[res] = node{level: shape.level, lo: shape.lo, hi: shape.hi}
	m.unique[shape] = res
	m.produced++
	return res, nil
}

// allocnodes extends the node table with n free slots. New indexes are
// appended in decreasing order so that the smallest ones are used first.
func (m *Manager) allocnodes(n int) {
	base := len(m.nodes)
	for i := 0; i < n; i++ {
		m.nodes = append(m.nodes, node{})
	}
	for i := n; i > 0; i-- {
		m.freenodes = append(m.freenodes, int32(base+i-1))
	}
}

// noderesize grows the node table by half its size, within the limits set by
// the maxnodeincrease and maxnodesize parameters.
func (m *Manager) noderesize() error {
	oldsize := len(m.nodes)
	if oldsize >= m.maxnodesize {
		return errMemory
	}
	inc := oldsize / 2
	if m.maxnodeincrease > 0 && inc > m.maxnodeincrease {
		inc = m.maxnodeincrease
	}
	if oldsize+inc > m.maxnodesize {
		inc = m.maxnodesize - oldsize
	}
	if inc <= 0 {
		return errMemory
	}
	m.allocnodes(inc)
	m.logger.WithFields(logrus.Fields{
		"nodes": len(m.nodes),
		"free":  len(m.freenodes),
	}).Debug("resized node table")
	return nil
}
