// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/big"
)

// TrySPoly returns the S-polynomial of a and b when their leading monomials
// share at least one variable, together with true. It returns (nil, false)
// when the leading monomials are coprime, in which case the S-polynomial
// always reduces to zero and is useless for completion procedures such as
// Buchberger's algorithm.
func (m *Manager) TrySPoly(a, b *Pdd) (*Pdd, bool) {
	if err := m.checkptr(a); err != nil {
		m.seterror("wrong operand in call to TrySPoly: %s", err)
		return nil, false
	}
	if err := m.checkptr(b); err != nil {
		m.seterror("wrong operand in call to TrySPoly: %s", err)
		return nil, false
	}
	p, q, pc, qc, ok := m.commonfactors(a.root, b.root)
	if !ok {
		return nil, false
	}
	r := m.spoly(a, b, p, q, pc, qc)
	if r == nil {
		return nil, false
	}
	return r, true
}

// commonfactors splits the least common multiple of the leading monomials of
// a and b: p receives the variables of lm(a) missing from lm(b), q the
// converse, and pc, qc the two leading coefficients, normalized by their gcd
// when both are integers. It reports false when the leading monomials share
// no variable.
func (m *Manager) commonfactors(a, b int32) (p, q []int, pc, qc *big.Rat, ok bool) {
	x, y := a, b
	common := false
	for {
		if m.isval(x) || m.isval(y) {
			if !common {
				return nil, nil, nil, nil, false
			}
			for !m.isval(y) {
				q = append(q, m.varid(y))
				y = m.hi(y)
			}
			for !m.isval(x) {
				p = append(p, m.varid(x))
				x = m.hi(x)
			}
			pc = new(big.Rat).Set(m.val(x))
			qc = new(big.Rat).Set(m.val(y))
			if !m.mod2 && pc.IsInt() && qc.IsInt() {
				g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(pc.Num()), new(big.Int).Abs(qc.Num()))
				if g.Sign() > 0 && g.Cmp(big.NewInt(1)) > 0 {
					rg := new(big.Rat).SetInt(g)
					pc.Quo(pc, rg)
					qc.Quo(qc, rg)
				}
			}
			return p, q, pc, qc, true
		}
		switch {
		case m.level(x) == m.level(y):
			common = true
			x, y = m.hi(x), m.hi(y)
		case m.level(x) > m.level(y):
			p = append(p, m.varid(x))
			x = m.hi(x)
		default:
			q = append(q, m.varid(y))
			y = m.hi(y)
		}
	}
}

// spoly assembles qc·Πq·a - pc·Πp·b from the output of commonfactors. Both
// products cancel each other's leading term by construction.
func (m *Manager) spoly(a, b *Pdd, p, q []int, pc, qc *big.Rat) *Pdd {
	r1 := m.Val(qc)
	for i := len(q); i > 0; i-- {
		r1 = m.Mul(m.Var(q[i-1]), r1)
	}
	r1 = m.Mul(a, r1)
	r2 := m.Val(new(big.Rat).Neg(pc))
	for i := len(p); i > 0; i-- {
		r2 = m.Mul(m.Var(p[i-1]), r2)
	}
	r2 = m.Mul(b, r2)
	return m.Add(r1, r2)
}

// Lt compares a and b along their leading terms and returns true when the
// one of a comes strictly first. Constants come before every monomial and
// are ordered by value; between monomials, the one whose leading variable is
// more significant comes first, comparing variable by variable. Polynomials
// with the same leading term are compared on their remaining terms.
func (m *Manager) Lt(a, b *Pdd) bool {
	if err := m.checkptr(a); err != nil {
		m.seterror("wrong operand in call to Lt: %s", err)
		return false
	}
	if err := m.checkptr(b); err != nil {
		m.seterror("wrong operand in call to Lt: %s", err)
		return false
	}
	x, y := a.root, b.root
	if x == y {
		return false
	}
	for {
		if m.isval(x) {
			return !m.isval(y) || m.val(x).Cmp(m.val(y)) < 0
		}
		if m.isval(y) {
			return false
		}
		if m.level(x) == m.level(y) {
			if m.hi(x) == m.hi(y) {
				x, y = m.lo(x), m.lo(y)
			} else {
				x, y = m.hi(x), m.hi(y)
			}
		} else {
			return m.level(x) > m.level(y)
		}
	}
}

// DifferentLeadingTerm reports whether a and b have different leading terms.
// Coefficients take part in the comparison since equal values share a node.
func (m *Manager) DifferentLeadingTerm(a, b *Pdd) bool {
	if err := m.checkptr(a); err != nil {
		m.seterror("wrong operand in call to DifferentLeadingTerm: %s", err)
		return false
	}
	if err := m.checkptr(b); err != nil {
		m.seterror("wrong operand in call to DifferentLeadingTerm: %s", err)
		return false
	}
	x, y := a.root, b.root
	for {
		if x == y {
			return false
		}
		if m.isval(x) || m.isval(y) {
			return true
		}
		if m.level(x) != m.level(y) {
			return true
		}
		x, y = m.hi(x), m.hi(y)
	}
}

// IsLinear reports whether p has total degree at most one.
func (p *Pdd) IsLinear() bool {
	n := p.root
	for {
		if p.m.isval(n) {
			return true
		}
		if !p.m.isval(p.m.hi(n)) {
			return false
		}
		n = p.m.lo(n)
	}
}
