// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/big"

	"github.com/pkg/errors"
)

// Add returns the polynomial a + b. The result is nil and the error status
// of the manager is set when an operand is invalid or when the computation
// exhausts the node table.
func (m *Manager) Add(a, b *Pdd) *Pdd {
	if err := m.checkptr(a); err != nil {
		return m.seterror("wrong operand in call to Add: %s", err)
	}
	if err := m.checkptr(b); err != nil {
		return m.seterror("wrong operand in call to Add: %s", err)
	}
	m.initref()
	m.pushref(a.root)
	m.pushref(b.root)
	res, err := m.apply(a.root, b.root, opAdd)
	m.popref(2)
	if err != nil {
		return m.seterror("Add: %s", err)
	}
	return m.retnode(res)
}

// Sub returns the polynomial a - b.
func (m *Manager) Sub(a, b *Pdd) *Pdd {
	nb := m.Minus(b)
	if nb == nil {
		return nil
	}
	return m.Add(a, nb)
}

// Mul returns the polynomial a * b.
func (m *Manager) Mul(a, b *Pdd) *Pdd {
	if err := m.checkptr(a); err != nil {
		return m.seterror("wrong operand in call to Mul: %s", err)
	}
	if err := m.checkptr(b); err != nil {
		return m.seterror("wrong operand in call to Mul: %s", err)
	}
	m.initref()
	m.pushref(a.root)
	m.pushref(b.root)
	res, err := m.apply(a.root, b.root, opMul)
	m.popref(2)
	if err != nil {
		return m.seterror("Mul: %s", err)
	}
	return m.retnode(res)
}

// AddRat returns the polynomial r + b.
func (m *Manager) AddRat(r *big.Rat, b *Pdd) *Pdd {
	c := m.Val(r)
	if c == nil {
		return nil
	}
	return m.Add(c, b)
}

// MulRat returns the polynomial r * b.
func (m *Manager) MulRat(r *big.Rat, b *Pdd) *Pdd {
	c := m.Val(r)
	if c == nil {
		return nil
	}
	return m.Mul(c, b)
}

// Minus returns the additive inverse -a. Under mod-2 semantics every
// polynomial is its own inverse, so the result is a itself.
func (m *Manager) Minus(a *Pdd) *Pdd {
	if err := m.checkptr(a); err != nil {
		return m.seterror("wrong operand in call to Minus: %s", err)
	}
	if m.mod2 {
		return a
	}
	m.initref()
	m.pushref(a.root)
	res, err := m.negate(a.root)
	m.popref(1)
	if err != nil {
		return m.seterror("Minus: %s", err)
	}
	return m.retnode(res)
}

// Reduce eliminates the leading term of a using b: while the leading
// monomial of b divides the leading monomial of a sub-diagram of a, a
// multiple of b is subtracted to cancel it. The result is equal to a modulo
// the ideal generated by b; in particular Reduce(a, b) is zero when a is a
// multiple of b. Reducing by a nonzero constant leaves a unchanged.
func (m *Manager) Reduce(a, b *Pdd) *Pdd {
	if err := m.checkptr(a); err != nil {
		return m.seterror("wrong operand in call to Reduce: %s", err)
	}
	if err := m.checkptr(b); err != nil {
		return m.seterror("wrong operand in call to Reduce: %s", err)
	}
	m.initref()
	m.pushref(a.root)
	m.pushref(b.root)
	res, err := m.apply(a.root, b.root, opReduce)
	m.popref(2)
	if err != nil {
		return m.seterror("Reduce: %s", err)
	}
	return m.retnode(res)
}

// apply runs a binary operation with the exhaustion protocol: when the first
// attempt runs out of nodes we collect garbage, flush the whole operation
// cache, and retry once. The refstack is restored on exit, so the nodes
// pushed by an aborted attempt stay protected until the retry completes.
func (m *Manager) apply(p, q int32, op opCode) (int32, error) {
	mark := len(m.refstack)
	defer func() { m.refstack = m.refstack[:mark] }()
	res, err := m.applyrec(p, q, op)
	if err != nil {
		m.logger.WithField("op", op.String()).Debug("out of nodes, collecting and retrying")
		m.trygc()
		if res, err = m.applyrec(p, q, op); err != nil {
			return -1, errors.Wrapf(err, "%s failed after retry", op)
		}
	}
	return res, nil
}

// recpush recurses and protects the intermediate result on the refstack.
func (m *Manager) recpush(p, q int32, op opCode) (int32, error) {
	r, err := m.applyrec(p, q, op)
	if err != nil {
		return -1, err
	}
	m.pushref(r)
	return r, nil
}

// applyrec is the memoized recursion behind Add, Mul and Reduce. Operands of
// every live frame are reachable from the refstack or from the operands of
// the public call, so only the intermediate results built here need explicit
// protection.
func (m *Manager) applyrec(p, q int32, op opCode) (int32, error) {
	// terminal cases that need neither the cache nor an allocation; for the
	// commutative operations we also swap operands so that level(p) is the
	// highest, with constants always in q
	switch op {
	case opAdd:
		if p == pddZero {
			return q, nil
		}
		if q == pddZero {
			return p, nil
		}
		if m.isval(p) && m.isval(q) {
			return m.imkval(new(big.Rat).Add(m.val(p), m.val(q)))
		}
		if !m.isval(p) && m.level(p) < m.level(q) {
			p, q = q, p
		}
		if m.isval(p) {
			p, q = q, p
		}
	case opMul:
		if p == pddZero || q == pddZero {
			return pddZero, nil
		}
		if p == pddOne {
			return q, nil
		}
		if q == pddOne {
			return p, nil
		}
		if m.isval(p) && m.isval(q) {
			return m.imkval(new(big.Rat).Mul(m.val(p), m.val(q)))
		}
		if !m.isval(p) && m.level(p) < m.level(q) {
			p, q = q, p
		}
		if m.isval(p) {
			p, q = q, p
		}
	case opReduce:
		if q == pddZero {
			return p, nil
		}
		if m.isval(p) {
			return p, nil
		}
		if m.level(p) < m.level(q) {
			return p, nil
		}
	default:
		return -1, errors.Errorf("illegal operation (%s) in apply", op)
	}

	entry, res, ok := m.matchop(p, q, op)
	if ok {
		return res, nil
	}

	levelp, levelq := m.level(p), m.level(q)
	var r int32
	npop := 2

	switch op {
	case opAdd:
		switch {
		case m.isval(q):
			// a constant only contributes to the branch without the variable
			lo, err := m.recpush(m.lo(p), q, op)
			if err != nil {
				return -1, err
			}
			if r, err = m.makenode(levelp, lo, m.hi(p)); err != nil {
				return -1, err
			}
			npop = 1
		case levelp == levelq:
			lo, err := m.recpush(m.lo(p), m.lo(q), op)
			if err != nil {
				return -1, err
			}
			hi, err := m.recpush(m.hi(p), m.hi(q), op)
			if err != nil {
				return -1, err
			}
			if r, err = m.makenode(levelp, lo, hi); err != nil {
				return -1, err
			}
		default: // levelp > levelq
			lo, err := m.recpush(m.lo(p), q, op)
			if err != nil {
				return -1, err
			}
			if r, err = m.makenode(levelp, lo, m.hi(p)); err != nil {
				return -1, err
			}
			npop = 1
		}
	case opMul:
		switch {
		case m.isval(q) || levelp != levelq:
			// the product distributes on both branches of p
			lo, err := m.recpush(m.lo(p), q, op)
			if err != nil {
				return -1, err
			}
			hi, err := m.recpush(m.hi(p), q, op)
			if err != nil {
				return -1, err
			}
			if r, err = m.makenode(levelp, lo, hi); err != nil {
				return -1, err
			}
		case m.mod2:
			// over GF(2), (xa + b)(xc + d) = x((a+b)(c+d) + bd) + bd
			bd, err := m.recpush(m.lo(p), m.lo(q), opMul)
			if err != nil {
				return -1, err
			}
			ab, err := m.recpush(m.hi(p), m.lo(p), opAdd)
			if err != nil {
				return -1, err
			}
			cd, err := m.recpush(m.hi(q), m.lo(q), opAdd)
			if err != nil {
				return -1, err
			}
			abcd, err := m.recpush(cd, ab, opMul)
			if err != nil {
				return -1, err
			}
			s, err := m.recpush(abcd, bd, opAdd)
			if err != nil {
				return -1, err
			}
			if r, err = m.makenode(levelp, bd, s); err != nil {
				return -1, err
			}
			npop = 5
		default:
			// (xa + b)(xc + d) = x(x·ac + (ad + bc)) + bd, where the middle
			// term can itself carry the variable x and must then be folded
			// into the x·ac part to keep the diagram ordered
			ac, err := m.recpush(m.hi(p), m.hi(q), op)
			if err != nil {
				return -1, err
			}
			ad, err := m.recpush(m.hi(p), m.lo(q), op)
			if err != nil {
				return -1, err
			}
			bc, err := m.recpush(m.lo(p), m.hi(q), op)
			if err != nil {
				return -1, err
			}
			bd, err := m.recpush(m.lo(p), m.lo(q), op)
			if err != nil {
				return -1, err
			}
			n, err := m.recpush(ad, bc, opAdd)
			if err != nil {
				return -1, err
			}
			if !m.isval(n) && m.level(n) == levelp {
				t, err := m.recpush(ac, m.hi(n), opAdd)
				if err != nil {
					return -1, err
				}
				u, err := m.makenode(levelp, m.lo(n), t)
				if err != nil {
					return -1, err
				}
				m.pushref(u)
				if r, err = m.makenode(levelp, bd, u); err != nil {
					return -1, err
				}
				npop = 7
			} else {
				u, err := m.makenode(levelp, n, ac)
				if err != nil {
					return -1, err
				}
				m.pushref(u)
				if r, err = m.makenode(levelp, bd, u); err != nil {
					return -1, err
				}
				npop = 6
			}
		}
	case opReduce:
		if levelp > levelq {
			lo, err := m.recpush(m.lo(p), q, op)
			if err != nil {
				return -1, err
			}
			hi, err := m.recpush(m.hi(p), q, op)
			if err != nil {
				return -1, err
			}
			if r, err = m.makenode(levelp, lo, hi); err != nil {
				return -1, err
			}
		} else {
			var err error
			if r, err = m.reduceonmatch(p, q); err != nil {
				return -1, err
			}
			npop = 0
		}
	}

	m.popref(npop)
	entry.result = r
	return r, nil
}

// negate computes -a with the same exhaustion protocol as apply.
func (m *Manager) negate(a int32) (int32, error) {
	mark := len(m.refstack)
	defer func() { m.refstack = m.refstack[:mark] }()
	res, err := m.minusrec(a)
	if err != nil {
		m.trygc()
		if res, err = m.minusrec(a); err != nil {
			return -1, errors.Wrap(err, "minus failed after retry")
		}
	}
	return res, nil
}

func (m *Manager) minusrec(a int32) (int32, error) {
	if a == pddZero {
		return pddZero, nil
	}
	if m.isval(a) {
		return m.imkval(new(big.Rat).Neg(m.val(a)))
	}
	entry, res, ok := m.matchop(a, a, opMinus)
	if ok {
		return res, nil
	}
	lo, err := m.minusrec(m.lo(a))
	if err != nil {
		return -1, err
	}
	m.pushref(lo)
	hi, err := m.minusrec(m.hi(a))
	if err != nil {
		return -1, err
	}
	m.pushref(hi)
	r, err := m.makenode(m.level(a), lo, hi)
	if err != nil {
		return -1, err
	}
	m.popref(2)
	entry.result = r
	return r, nil
}

// reduceonmatch eliminates the leading term of a while the leading monomial
// of b divides it, replacing a with a - (lt(a)/lt(b))·b. Every intermediate
// value is kept on the refstack: the loop allocates between iterations, so
// the current value of a would otherwise be reclaimable.
func (m *Manager) reduceonmatch(a, b int32) (int32, error) {
	mark := len(m.refstack)
	defer func() { m.refstack = m.refstack[:mark] }()
	m.pushref(a)
	for m.lmdivides(b, a) {
		q, err := m.ltquotient(b, a)
		if err != nil {
			return -1, err
		}
		m.pushref(q)
		r, err := m.apply(q, b, opMul)
		if err != nil {
			return -1, err
		}
		m.pushref(r)
		next, err := m.apply(a, r, opAdd)
		if err != nil {
			return -1, err
		}
		a = next
		m.popref(2)
		m.refstack[mark] = a
	}
	return a, nil
}

// lmdivides reports whether the leading monomial of p divides the leading
// monomial of q. A constant divides everything.
func (m *Manager) lmdivides(p, q int32) bool {
	for {
		if m.isval(p) {
			return true
		}
		if m.isval(q) {
			return false
		}
		if m.level(p) > m.level(q) {
			return false
		}
		if m.level(p) == m.level(q) {
			p, q = m.hi(p), m.hi(q)
		} else {
			q = m.hi(q)
		}
	}
}

// ltquotient returns the negation of the quotient of the leading terms of q
// and p, that is -lt(q)/lt(p). Expects lmdivides(p, q) to hold.
func (m *Manager) ltquotient(p, q int32) (int32, error) {
	if m.isval(p) && m.isval(q) {
		quo := new(big.Rat).Quo(m.val(q), m.val(p))
		return m.imkval(quo.Neg(quo))
	}
	if !m.isval(p) && m.level(p) == m.level(q) {
		return m.ltquotient(m.hi(p), m.hi(q))
	}
	t, err := m.ltquotient(p, m.hi(q))
	if err != nil {
		return -1, err
	}
	m.pushref(t)
	r, err := m.apply(m.varpdd[m.nodes[q].level], t, opMul)
	m.popref(1)
	return r, err
}
