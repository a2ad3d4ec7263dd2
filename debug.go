// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug
// +build debug

package pdd

import (
	"log"
	"os"
)

const _DEBUG bool = true

// ******************************************************************************************************

func init() {
	log.SetOutput(os.Stdout)
}

// ******************************************************************************************************

// checktable controls the structural invariants of the node table: free
// slots must be zeroed and unreferenced, and the cofactors of every live
// node must respect the level order and point to live nodes. It stops the
// program on the first violation.
func (m *Manager) checktable() {
	for _, k := range m.freenodes {
		n := m.nodes[k]
		if n.lo != 0 || n.hi != 0 || n.refcou != 0 {
			log.Panicf("free slot %d is not zeroed (%d, %d, %d)", k, n.lo, n.hi, n.refcou)
		}
	}
	for k := range m.nodes {
		id := int32(k)
		if id <= pddOne || m.isfree(id) || m.isval(id) {
			continue
		}
		n := m.nodes[k]
		if !m.isval(n.lo) && (m.isfree(n.lo) || m.level(n.lo) >= n.level) {
			log.Panicf("node %d has an ill-formed low cofactor %d", k, n.lo)
		}
		if !m.isval(n.hi) && (m.isfree(n.hi) || m.level(n.hi) > n.level) {
			log.Panicf("node %d has an ill-formed high cofactor %d", k, n.hi)
		}
	}
}

func (m *Manager) logtable() {
	if m.error != nil {
		log.Printf("ERROR: %s\n", m.error)
	}
	for k, n := range m.nodes {
		id := int32(k)
		switch {
		case id > 1 && m.isfree(id):
			log.Printf("%-3d free\n", k)
		case m.isval(id):
			log.Printf("%-3d val( %s ) | %d\n", k, m.val(id).RatString(), n.refcou)
		case n.refcou == _MAXREFCOUNT:
			log.Printf("%-3d ( %-3d ,  %-3d ,  %-3d) | +\n", k, n.level, n.lo, n.hi)
		case n.refcou == 0:
			log.Printf("%-3d ( %-3d ,  %-3d ,  %-3d) |\n", k, n.level, n.lo, n.hi)
		default:
			log.Printf("%-3d ( %-3d ,  %-3d ,  %-3d) | %d\n", k, n.level, n.lo, n.hi, n.refcou)
		}
	}
}
