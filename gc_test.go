// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/big"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nodes built without going through a public operation have a zero reference
// count and are not on the refstack, so a collection must reclaim them.
func TestGCReclaims(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	free := len(m.freenodes)
	n, err := m.makenode(0, pddOne, pddOne)
	require.NoError(t, err)
	v, err := m.imkval(big.NewRat(7, 1))
	require.NoError(t, err)
	require.False(t, m.isfree(n))
	require.False(t, m.isfree(v))
	m.GC()
	assert.True(t, m.isfree(n))
	assert.True(t, m.isfree(v))
	assert.Equal(t, free, len(m.freenodes))
	assert.Equal(t, 1, len(m.freevalues))
	if _, ok := m.consts["7"]; ok {
		t.Errorf("value 7 still interned after GC")
	}
	assert.Equal(t, 1, len(m.gcstat.history))
}

func TestGCKeeps(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	p := m.AddRat(big.NewRat(1, 1), m.Add(m.MulRat(big.NewRat(2, 1), x), m.MulRat(big.NewRat(3, 1), y)))
	require.NotNil(t, p)
	s := p.String()
	m.GC()
	m.GC()
	assert.False(t, m.isfree(p.root))
	assert.Equal(t, s, p.String())
	// rebuilding the same polynomial finds the surviving nodes again
	q := m.AddRat(big.NewRat(1, 1), m.Add(m.MulRat(big.NewRat(2, 1), x), m.MulRat(big.NewRat(3, 1), y)))
	require.NotNil(t, q)
	assert.Equal(t, p.root, q.root)
}

// With automatic collection, exhausting the free list reclaims the dead value
// nodes instead of growing the table.
func TestGCOnExhaustion(t *testing.T) {
	m, err := New(2, Nodesize(8), Maxnodesize(16), Minfreenodes(0))
	require.NoError(t, err)
	require.Equal(t, 8, len(m.nodes))
	for i := int64(2); i < 6; i++ {
		if _, err := m.imkval(big.NewRat(i, 1)); err != nil {
			t.Fatalf("imkval(%d): %s", i, err)
		}
	}
	require.Empty(t, m.freenodes)
	if _, err := m.imkval(big.NewRat(6, 1)); err != nil {
		t.Fatalf("imkval(6): %s", err)
	}
	assert.Equal(t, 8, len(m.nodes), "collection should avoid a resize")
	assert.Equal(t, 1, len(m.gcstat.history))
	assert.Equal(t, 3, len(m.consts), "only 0, 1 and 6 remain interned")
}

// Same scenario with DisableGC: the manager grows the table and the dead
// nodes stay allocated.
func TestDisableGC(t *testing.T) {
	m, err := New(2, DisableGC(), Nodesize(8), Maxnodesize(16), Minfreenodes(0))
	require.NoError(t, err)
	for i := int64(2); i < 6; i++ {
		if _, err := m.imkval(big.NewRat(i, 1)); err != nil {
			t.Fatalf("imkval(%d): %s", i, err)
		}
	}
	require.Empty(t, m.freenodes)
	if _, err := m.imkval(big.NewRat(6, 1)); err != nil {
		t.Fatalf("imkval(6): %s", err)
	}
	assert.Equal(t, 12, len(m.nodes))
	assert.Empty(t, m.gcstat.history)
	assert.Equal(t, 7, len(m.consts))
}

// When the table reaches its maximum size and every node is externally
// referenced, operations return nil and set the error status, but the
// manager remains usable.
func TestExhaustion(t *testing.T) {
	m, err := New(2, Nodesize(8), Maxnodesize(8), Minfreenodes(0))
	require.NoError(t, err)
	vals := []*Pdd{}
	for i := int64(2); i < 20; i++ {
		v := m.Val(big.NewRat(i, 1))
		if v == nil {
			break
		}
		vals = append(vals, v)
	}
	require.Len(t, vals, 4, "expected exactly four free slots")
	assert.True(t, m.Errored())
	assert.Contains(t, m.Error(), "unable to free memory")
	m.ClearError()
	// interned values are still available without allocating
	r := m.Add(vals[0], vals[1])
	require.NotNil(t, r)
	assert.True(t, r.Equal(vals[3]), "2 + 3 = 5")
	assert.False(t, m.Errored())
}

// Repeated squaring forces several node table extensions.
func TestResize(t *testing.T) {
	m, err := New(1, Nodesize(16))
	require.NoError(t, err)
	require.Equal(t, 16, len(m.nodes))
	p := m.AddRat(big.NewRat(1, 1), m.Var(0))
	keep := []*Pdd{}
	for i := 0; i < 6; i++ {
		p = m.Mul(p, p)
		require.NotNil(t, p, "error status: %s", m.Error())
		keep = append(keep, p)
	}
	assert.Greater(t, len(m.nodes), 16)
	assert.Equal(t, 65, len(m.Monomials(p)), "(x + 1)^64 has 65 terms")
	assert.Equal(t, 64, m.Degree(p))
}

func TestStats(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	s := m.Stats()
	assert.Contains(t, s, "Varnum:     3")
	assert.Contains(t, s, "Allocated:  1027")
	assert.Contains(t, s, "# of GC:    0")
	m.GC()
	assert.Contains(t, m.Stats(), "# of GC:    1")
}

func TestCollector(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	p := m.Add(m.Var(0), m.Var(1))
	require.NotNil(t, p)
	m.GC()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(m.Collector()))
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)
	names := []string{}
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "pdd_nodes")
	assert.Contains(t, names, "pdd_gc_runs_total")
}
