// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

// Marks are generation stamps rather than bits: bumping the generation
// clears every mark in constant time. The slice is extended lazily since the
// node table can have grown since the last query.

func (m *Manager) initmark() {
	if len(m.marks) < len(m.nodes) {
		m.marks = append(m.marks, make([]uint32, len(m.nodes)-len(m.marks))...)
	}
	m.markgen++
	if m.markgen == 0 {
		for i := range m.marks {
			m.marks[i] = 0
		}
		m.markgen++
	}
}

func (m *Manager) setmark(n int32) {
	m.marks[n] = m.markgen
}

func (m *Manager) ismarked(n int32) bool {
	return m.marks[n] == m.markgen
}

// DagSize returns the number of nodes of the diagram rooted at p, not
// counting the two constants 0 and 1. Shared sub-diagrams are counted once.
func (m *Manager) DagSize(p *Pdd) int {
	if err := m.checkptr(p); err != nil {
		m.seterror("wrong operand in call to DagSize: %s", err)
		return -1
	}
	m.initmark()
	m.setmark(pddZero)
	m.setmark(pddOne)
	sz := 0
	m.todo = append(m.todo[:0], p.root)
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		m.todo = m.todo[:len(m.todo)-1]
		if m.ismarked(r) {
			continue
		}
		sz++
		m.setmark(r)
		if m.isval(r) {
			continue
		}
		if !m.ismarked(m.lo(r)) {
			m.todo = append(m.todo, m.lo(r))
		}
		if !m.ismarked(m.hi(r)) {
			m.todo = append(m.todo, m.hi(r))
		}
	}
	return sz
}

// Degree returns the total degree of p, that is the degree of its largest
// monomial. The degree of a constant is 0.
func (m *Manager) Degree(p *Pdd) int {
	if err := m.checkptr(p); err != nil {
		m.seterror("wrong operand in call to Degree: %s", err)
		return -1
	}
	m.initmark()
	if len(m.degrees) < len(m.nodes) {
		m.degrees = make([]int, len(m.nodes))
	}
	m.todo = append(m.todo[:0], p.root)
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		switch {
		case m.ismarked(r):
			m.todo = m.todo[:len(m.todo)-1]
		case m.isval(r):
			m.degrees[r] = 0
			m.setmark(r)
		case !m.ismarked(m.lo(r)) || !m.ismarked(m.hi(r)):
			m.todo = append(m.todo, m.lo(r), m.hi(r))
		default:
			d := m.degrees[m.hi(r)] + 1
			if m.degrees[m.lo(r)] > d {
				d = m.degrees[m.lo(r)]
			}
			m.degrees[r] = d
			m.setmark(r)
		}
	}
	return m.degrees[p.root]
}

// TreeSize returns the number of nodes of the diagram rooted at p counted
// without sharing, as if it were unfolded into a tree. The result is a
// float64 since it grows exponentially with the dag size.
func (m *Manager) TreeSize(p *Pdd) float64 {
	if err := m.checkptr(p); err != nil {
		m.seterror("wrong operand in call to TreeSize: %s", err)
		return -1
	}
	m.initmark()
	if len(m.weights) < len(m.nodes) {
		m.weights = make([]float64, len(m.nodes))
	}
	m.todo = append(m.todo[:0], p.root)
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		switch {
		case m.ismarked(r):
			m.todo = m.todo[:len(m.todo)-1]
		case m.isval(r):
			m.weights[r] = 1
			m.setmark(r)
		case !m.ismarked(m.lo(r)) || !m.ismarked(m.hi(r)):
			m.todo = append(m.todo, m.lo(r), m.hi(r))
		default:
			m.weights[r] = 1 + m.weights[m.lo(r)] + m.weights[m.hi(r)]
			m.setmark(r)
		}
	}
	return m.weights[p.root]
}

// FreeVars returns the indexes of the variables occurring in p, without
// duplicates and in no particular order. The result is nil when p is a
// constant.
func (m *Manager) FreeVars(p *Pdd) []int {
	if err := m.checkptr(p); err != nil {
		m.seterror("wrong operand in call to FreeVars: %s", err)
		return nil
	}
	m.initmark()
	var res []int
	m.todo = append(m.todo[:0], p.root)
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		m.todo = m.todo[:len(m.todo)-1]
		if m.isval(r) || m.ismarked(r) {
			continue
		}
		v := m.varpdd[m.nodes[r].level]
		if !m.ismarked(v) {
			res = append(res, m.varid(r))
		}
		m.setmark(r)
		m.setmark(v)
		if !m.ismarked(m.lo(r)) {
			m.todo = append(m.todo, m.lo(r))
		}
		if !m.ismarked(m.hi(r)) {
			m.todo = append(m.todo, m.hi(r))
		}
	}
	return res
}
