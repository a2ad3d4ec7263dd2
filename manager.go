// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Manager owns the memory backing a family of polynomials: the node table,
// the pool of rational constants, the operation cache and the garbage
// collector state. All the polynomials of a manager share the same variable
// ordering. A Manager is not safe for concurrent use; every operation must
// run on the same goroutine, or the caller must provide its own locking.
type Manager struct {
	nodes     []node              // the node table, indexes 0 and 1 are the constants
	freenodes []int32             // unused slots, in decreasing index order
	unique    map[nodeshape]int32 // unicity table, from shapes to node indexes

	values     []*big.Rat           // pool of interned rational constants
	freevalues []int32              // unused slots of the value pool
	consts     map[string]constinfo // from RatString to pool and node indexes
	freeze     *big.Rat             // constant being interned, protected from the GC

	opcache map[opKey]*opEntry // memoized operations
	spare   *opEntry           // recycled cache entry, see popentry

	refstack []int32   // protects the intermediate results of operations from the GC
	todo     []int32   // scratch worklist shared by the GC and the queries
	marks    []uint32  // generation stamps for the traversal of diagrams
	markgen  uint32    // current generation of marks
	degrees  []int     // scratch slice for Degree
	weights  []float64 // scratch slice for TreeSize

	var2level []int32 // level of each variable
	level2var []int32 // variable at each level
	varpdd    []int32 // node index of the variable polynomial at each level

	zeronode      *Pdd       // shared handle for the constant 0
	onenode       *Pdd       // shared handle for the constant 1
	nodefinalizer func(*Pdd) // decrements the refcount of a node, set on handles

	produced  int       // number of nodes allocated since the creation of the manager
	cachestat cacheStat // unicity table and operation cache counters, debug builds only
	error     error     // error status of the manager, see Errored and Error

	gcstat
	configs
}

// New initializes a new Manager for polynomials over numvars variables,
// indexed from 0 to numvars-1. More variables can be registered later with
// Var. Use configuration options to set the initial size of the node table
// (Nodesize), cap its growth (Maxnodesize, Maxnodeincrease, Minfreenodes),
// compute over GF(2) (Mod2), or control collections and logging (DisableGC,
// Logger).
func New(numvars int, options ...func(*configs)) (*Manager, error) {
	if numvars < 0 || numvars > _MAXVAR {
		return nil, errors.Errorf("bad number of variables (%d) in call to New", numvars)
	}
	config := makeconfigs(numvars)
	for _, f := range options {
		f(config)
	}
	m := &Manager{configs: *config}
	if m.logger == nil {
		m.logger = logrus.New()
	}
	m.unique = make(map[nodeshape]int32, config.nodesize)
	m.consts = make(map[string]constinfo)
	m.opcache = make(map[opKey]*opEntry)
	m.refstack = make([]int32, 0, 2*numvars+4)
	m.allocnodes(config.nodesize)
	// the two constants take indexes 0 and 1 in the node table and in the
	// value pool, and are pinned there
	if _, err := m.initvalue(new(big.Rat)); err != nil {
		return nil, err
	}
	if _, err := m.initvalue(big.NewRat(1, 1)); err != nil {
		return nil, err
	}
	m.nodes[pddZero].refcou = _MAXREFCOUNT
	m.nodes[pddOne].refcou = _MAXREFCOUNT
	m.zeronode = &Pdd{root: pddZero, m: m}
	m.onenode = &Pdd{root: pddOne, m: m}
	m.nodefinalizer = func(p *Pdd) {
		if _DEBUG {
			atomic.AddUint64(&m.gcstat.calledfinalizers, 1)
		}
		if m.nodes[p.root].refcou != _MAXREFCOUNT {
			m.nodes[p.root].refcou--
		}
	}
	if err := m.reservevar(numvars - 1); err != nil {
		return nil, err
	}
	return m, nil
}

// reservevar registers the variables with index up to i, in increasing
// order. A fresh variable always takes the highest level, so it becomes the
// most significant in the monomial ordering.
func (m *Manager) reservevar(i int) error {
	for v := len(m.var2level); v <= i; v++ {
		lvl := int32(v)
		id, err := m.makenode(lvl, pddZero, pddOne)
		if err != nil {
			return err
		}
		m.nodes[id].refcou = _MAXREFCOUNT
		m.varpdd = append(m.varpdd, id)
		m.var2level = append(m.var2level, lvl)
		m.level2var = append(m.level2var, int32(v))
	}
	return nil
}

// Var returns the polynomial for the variable with index i. Variables that
// were not declared in the call to New are registered on first use.
func (m *Manager) Var(i int) *Pdd {
	if i < 0 || i > _MAXVAR {
		return m.seterror("illegal variable index (%d) in call to Var", i)
	}
	if err := m.reservevar(i); err != nil {
		return m.seterror("cannot register variable %d: %s", i, err)
	}
	return m.retnode(m.varpdd[m.var2level[i]])
}

// Val returns the constant polynomial with value r. The constant is copied,
// so the caller can keep mutating r afterwards.
func (m *Manager) Val(r *big.Rat) *Pdd {
	if r == nil {
		return m.seterror("nil value in call to Val")
	}
	m.initref()
	v, err := m.imkval(r)
	if err != nil {
		m.trygc()
		if v, err = m.imkval(r); err != nil {
			return m.seterror("Val(%s): %s", r.RatString(), err)
		}
	}
	return m.retnode(v)
}

// Zero returns the constant polynomial 0.
func (m *Manager) Zero() *Pdd {
	return m.zeronode
}

// One returns the constant polynomial 1.
func (m *Manager) One() *Pdd {
	return m.onenode
}

// Varnum returns the number of registered variables.
func (m *Manager) Varnum() int {
	return len(m.var2level)
}

// SetLevelOrder installs a different variable ordering: order[k] is the
// index of the variable sitting at level k, with higher levels being more
// significant. The argument must be a permutation of the registered
// variables. Reordering does not rebuild existing diagrams, so it must be
// called before any polynomial other than a variable or a constant is
// created.
func (m *Manager) SetLevelOrder(order []int) error {
	if len(order) != len(m.level2var) {
		m.seterror("wrong size (%d) for order in call to SetLevelOrder, expected %d", len(order), len(m.level2var))
		return m.error
	}
	seen := make([]bool, len(order))
	for _, v := range order {
		if v < 0 || v >= len(order) || seen[v] {
			m.seterror("order is not a permutation of the variables in call to SetLevelOrder")
			return m.error
		}
		seen[v] = true
	}
	for k, v := range order {
		m.var2level[v] = int32(k)
		m.level2var[k] = int32(v)
	}
	return nil
}

// checkptr checks that a handle is a legal argument for an operation on this
// manager.
func (m *Manager) checkptr(p *Pdd) error {
	switch {
	case p == nil:
		return errors.New("nil polynomial")
	case p.m != m:
		return errors.New("polynomial from another manager")
	case p.root < 0 || int(p.root) >= len(m.nodes):
		return errors.Errorf("invalid node index (%d)", p.root)
	case p.root > 1 && m.isfree(p.root):
		return errors.Errorf("polynomial refers to a freed node (%d)", p.root)
	}
	return nil
}

// Stats returns a snapshot of the state of the manager, including the number
// of allocated nodes and the number of garbage collections.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", len(m.var2level))
	res += fmt.Sprintf("Allocated:  %d\n", len(m.nodes))
	res += fmt.Sprintf("Produced:   %d\n", m.produced)
	ratio := (float64(len(m.freenodes)) / float64(len(m.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", len(m.freenodes), ratio)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(m.nodes)-len(m.freenodes), 100.0-ratio)
	res += fmt.Sprintf("Values:     %d\n", len(m.values)-len(m.freevalues))
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(m.gcstat.history))
	if _DEBUG {
		allocated := int(m.gcstat.setfinalizers)
		reclaimed := int(m.gcstat.calledfinalizers)
		for _, g := range m.gcstat.history {
			allocated += g.setfinalizers
			reclaimed += g.calledfinalizers
		}
		res += fmt.Sprintf("Ext. refs:  %d\n", allocated)
		res += fmt.Sprintf("Reclaimed:  %d\n", reclaimed)
		res += "==============\n"
		res += fmt.Sprintf("%s\n", m.cachestat)
	}
	return res
}
