// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/big"
)

// constinfo associates an interned rational constant with its slot in the
// value pool and with the index of its unique leaf node.
type constinfo struct {
	value int32
	node  int32
}

var ratone = big.NewRat(1, 1)

// imkval returns the index of the leaf node for the constant r, interning a
// new value in the pool when needed. Under mod-2 semantics the constant is
// first reduced modulo 2.
func (m *Manager) imkval(r *big.Rat) (int32, error) {
	if r.Sign() == 0 {
		return pddZero, nil
	}
	if r.Cmp(ratone) == 0 {
		return pddOne, nil
	}
	if m.mod2 {
		if v := ratmod2(r); v.Cmp(r) != 0 {
			return m.imkval(v)
		}
	}
	if info, ok := m.consts[r.RatString()]; ok {
		return info.node, nil
	}
	return m.initvalue(r)
}

// initvalue interns a fresh constant in the value pool and builds its leaf
// node. The constant is frozen while the node is inserted, so that a
// collection triggered by the allocation cannot reclaim its slot. On
// allocation failure the slot is released again.
func (m *Manager) initvalue(r *big.Rat) (int32, error) {
	r = new(big.Rat).Set(r)
	var vi int32
	if nfree := len(m.freevalues); nfree > 0 {
		vi = m.freevalues[nfree-1]
		m.freevalues = m.freevalues[:nfree-1]
		m.values[vi] = r
	} else {
		vi = int32(len(m.values))
		m.values = append(m.values, r)
	}
	m.freeze = r
	id, err := m.insertnode(nodeshape{level: 0, lo: vi, hi: 0})
	m.freeze = nil
	if err != nil {
		m.values[vi] = nil
		m.freevalues = append(m.freevalues, vi)
		return -1, err
	}
	m.consts[r.RatString()] = constinfo{value: vi, node: id}
	return id, nil
}

// val returns the constant labelling leaf n. The result aliases the value
// pool and must not be mutated.
func (m *Manager) val(n int32) *big.Rat {
	return m.values[m.nodes[n].lo]
}

// ratmod2 returns r - 2*floor(r/2), the representative of r in [0, 2).
func ratmod2(r *big.Rat) *big.Rat {
	two := new(big.Int).Lsh(r.Denom(), 1)
	q := new(big.Int).Div(r.Num(), two)
	res := new(big.Rat).Set(r)
	return res.Sub(res, new(big.Rat).SetInt(q.Lsh(q, 1)))
}
