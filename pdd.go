// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"log"
	"math/big"
	"runtime"
	"sync/atomic"
)

// Pdd is a handle to a polynomial managed by a Manager. Polynomials are
// immutable; every operation returns a new handle. The memory backing a
// polynomial is reclaimed by the manager once all the handles reaching it
// have been dropped, so a Pdd can be kept, stored and compared freely.
//
// Hash consing gives a canonical representation, so two polynomials from the
// same manager are semantically equal exactly when Equal returns true.
type Pdd struct {
	root int32
	m    *Manager
}

// retnode builds a handle for the node with index n. The reference count of
// the node is incremented and a finalizer is set to decrement it again when
// the handle becomes unreachable, except on nodes that are pinned in the
// table, like constants and variables.
func (m *Manager) retnode(n int32) *Pdd {
	if n < 0 || int(n) >= len(m.nodes) {
		if _DEBUG {
			log.Panicf("node index %d out of the table in retnode", n)
		}
		return nil
	}
	if n == pddZero {
		return m.zeronode
	}
	if n == pddOne {
		return m.onenode
	}
	p := &Pdd{root: n, m: m}
	if m.nodes[n].refcou < _MAXREFCOUNT {
		m.nodes[n].refcou++
		runtime.SetFinalizer(p, m.nodefinalizer)
		if _DEBUG {
			atomic.AddUint64(&m.gcstat.setfinalizers, 1)
		}
	}
	return p
}

// Equal reports whether p and q are the same polynomial. Both handles must
// come from the same manager; handles from different managers are never
// equal.
func (p *Pdd) Equal(q *Pdd) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.m == q.m && p.root == q.root
}

// IsZero reports whether p is the constant 0.
func (p *Pdd) IsZero() bool {
	return p.root == pddZero
}

// IsOne reports whether p is the constant 1.
func (p *Pdd) IsOne() bool {
	return p.root == pddOne
}

// IsVal reports whether p is a constant polynomial.
func (p *Pdd) IsVal() bool {
	return p.m.isval(p.root)
}

// Val returns the value of a constant polynomial, or nil when p is not a
// constant. The result is a copy that the caller can mutate.
func (p *Pdd) Val() *big.Rat {
	if !p.m.isval(p.root) {
		return nil
	}
	return new(big.Rat).Set(p.m.val(p.root))
}

// VarIndex returns the index of the variable at the top of p, or -1 when p
// is a constant.
func (p *Pdd) VarIndex() int {
	if p.m.isval(p.root) {
		return -1
	}
	return p.m.varid(p.root)
}

// Level returns the level of the top variable of p in the current variable
// order, or -1 when p is a constant. Levels and variable indexes coincide
// unless the order was changed with SetLevelOrder.
func (p *Pdd) Level() int {
	return int(p.m.level(p.root))
}

// Lo returns the polynomial made of the monomials of p that do not carry its
// top variable, or nil when p is a constant.
func (p *Pdd) Lo() *Pdd {
	if p.m.isval(p.root) {
		return nil
	}
	return p.m.retnode(p.m.lo(p.root))
}

// Hi returns the cofactor of the top variable of p, that is the polynomial q
// such that p = lo + x*q, or nil when p is a constant.
func (p *Pdd) Hi() *Pdd {
	if p.m.isval(p.root) {
		return nil
	}
	return p.m.retnode(p.m.hi(p.root))
}

// Add returns the polynomial p + q.
func (p *Pdd) Add(q *Pdd) *Pdd {
	return p.m.Add(p, q)
}

// Sub returns the polynomial p - q.
func (p *Pdd) Sub(q *Pdd) *Pdd {
	return p.m.Sub(p, q)
}

// Mul returns the polynomial p * q.
func (p *Pdd) Mul(q *Pdd) *Pdd {
	return p.m.Mul(p, q)
}

// Minus returns the polynomial -p.
func (p *Pdd) Minus() *Pdd {
	return p.m.Minus(p)
}

// Reduce returns the result of reducing p by q, see Manager.Reduce.
func (p *Pdd) Reduce(q *Pdd) *Pdd {
	return p.m.Reduce(p, q)
}
