// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLmdivides(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	xy := m.Mul(x, y)
	five := m.Val(big.NewRat(5, 1))
	tests := []struct {
		p, q     *Pdd
		expected bool
	}{
		{five, xy, true},   // a constant divides everything
		{five, five, true}, // even another constant
		{xy, five, false},
		{y, xy, true},
		{x, xy, true},
		{x, y, false},
		{y, x, false},
		{xy, y, false},
	}
	for _, tt := range tests {
		if actual := m.lmdivides(tt.p.root, tt.q.root); actual != tt.expected {
			t.Errorf("lmdivides(%s, %s): expected %v, actual %v", tt.p, tt.q, tt.expected, actual)
		}
	}
}

func TestLtquotient(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	xy := m.Mul(x, y)
	tests := []struct {
		p, q     *Pdd
		expected *Pdd
	}{
		{m.Val(big.NewRat(3, 1)), m.Val(big.NewRat(6, 1)), m.Val(big.NewRat(-2, 1))},
		{y, m.MulRat(big.NewRat(2, 1), xy), m.MulRat(big.NewRat(-2, 1), x)},
		{m.MulRat(big.NewRat(2, 1), y), m.MulRat(big.NewRat(3, 1), xy), m.MulRat(big.NewRat(-3, 2), x)},
		{xy, xy, m.Val(big.NewRat(-1, 1))},
	}
	for _, tt := range tests {
		actual, err := m.ltquotient(tt.p.root, tt.q.root)
		require.NoError(t, err)
		if actual != tt.expected.root {
			t.Errorf("ltquotient(%s, %s): expected %s, actual %s",
				tt.p, tt.q, tt.expected, m.retnode(actual))
		}
	}
}

func TestReduce(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	// p = 3y + 2x + 1
	p := m.AddRat(big.NewRat(1, 1), m.Add(m.MulRat(big.NewRat(2, 1), x), m.MulRat(big.NewRat(3, 1), y)))
	require.NotNil(t, p)
	// multiples of p reduce to zero
	assert.True(t, m.Reduce(m.Mul(x, p), p).IsZero())
	assert.True(t, m.Reduce(p, p).IsZero())
	// reducing by a constant, by zero, or by a polynomial with a larger
	// leading monomial leaves the operand unchanged
	assert.True(t, m.Reduce(p, m.Val(big.NewRat(5, 1))).Equal(p))
	assert.True(t, m.Reduce(p, m.Zero()).Equal(p))
	assert.True(t, m.Reduce(x, m.Mul(x, y)).Equal(x))
	assert.True(t, m.Reduce(m.Val(big.NewRat(3, 1)), m.Val(big.NewRat(5, 1))).Equal(m.Val(big.NewRat(3, 1))))
	// xy + y + x = (x + 1)(y + 1) - 1
	a := m.Add(m.Mul(x, y), m.Add(y, x))
	b := m.AddRat(big.NewRat(1, 1), y)
	r := m.Reduce(a, b)
	require.NotNil(t, r)
	assert.Equal(t, "- 1", r.String())
}

func TestReduceIdempotent(t *testing.T) {
	m, err := New(4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(41))
	for i := 0; i < 50; i++ {
		a := randpoly(m, rng, 2)
		b := randpoly(m, rng, 2)
		r := m.Reduce(a, b)
		require.NotNil(t, r)
		assert.True(t, m.Reduce(r, b).Equal(r), "Reduce(Reduce(%s, %s), %s) differs from %s", a, b, b, r)
	}
}

func TestTrySPoly(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	x, y, z := m.Var(0), m.Var(1), m.Var(2)
	// lm(xy + 1) and lm(yz + z) overlap on y
	a := m.AddRat(big.NewRat(1, 1), m.Mul(x, y))
	b := m.Add(m.Mul(y, z), z)
	s, ok := m.TrySPoly(a, b)
	require.True(t, ok)
	assert.True(t, s.Equal(m.Sub(z, m.Mul(x, z))), "expected z - x*z, actual %s", s)
	// coprime leading monomials are filtered out
	s, ok = m.TrySPoly(m.AddRat(big.NewRat(1, 1), x), m.AddRat(big.NewRat(1, 1), y))
	assert.False(t, ok)
	assert.Nil(t, s)
	s, ok = m.TrySPoly(m.Val(big.NewRat(3, 1)), a)
	assert.False(t, ok)
	assert.Nil(t, s)
	// the leading coefficients 2 and 4 are normalized by their gcd
	c := m.AddRat(big.NewRat(1, 1), m.MulRat(big.NewRat(2, 1), m.Mul(x, y)))
	d := m.Add(m.MulRat(big.NewRat(4, 1), m.Mul(y, z)), z)
	s, ok = m.TrySPoly(c, d)
	require.True(t, ok)
	assert.True(t, s.Equal(m.Sub(m.MulRat(big.NewRat(2, 1), z), m.Mul(x, z))), "expected 2*z - x*z, actual %s", s)
	// the s-polynomial of a polynomial with itself cancels entirely
	s, ok = m.TrySPoly(a, a)
	require.True(t, ok)
	assert.True(t, s.IsZero())
}

func TestLt(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	p := m.AddRat(big.NewRat(1, 1), m.Add(m.MulRat(big.NewRat(2, 1), x), m.MulRat(big.NewRat(3, 1), y)))
	two := m.Val(big.NewRat(2, 1))
	five := m.Val(big.NewRat(5, 1))
	tests := []struct {
		a, b     *Pdd
		expected bool
	}{
		{x, y, false},
		{y, x, true},
		{five, x, true}, // constants come before monomials
		{x, five, false},
		{two, five, true},
		{five, two, false},
		{p, p, false},
		{y, p, true}, // same monomial, smaller coefficient
		{p, y, false},
		{p, x, true},
	}
	for _, tt := range tests {
		if actual := m.Lt(tt.a, tt.b); actual != tt.expected {
			t.Errorf("Lt(%s, %s): expected %v, actual %v", tt.a, tt.b, tt.expected, actual)
		}
	}
}

func TestDifferentLeadingTerm(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	p := m.AddRat(big.NewRat(1, 1), m.MulRat(big.NewRat(2, 1), x))
	q := m.AddRat(big.NewRat(5, 1), m.MulRat(big.NewRat(2, 1), x))
	tests := []struct {
		a, b     *Pdd
		expected bool
	}{
		{p, p, false},
		{p, q, false}, // both lead with 2x
		{x, y, true},
		{p, m.AddRat(big.NewRat(1, 1), m.MulRat(big.NewRat(3, 1), x)), true},
		{p, m.Val(big.NewRat(2, 1)), true},
	}
	for _, tt := range tests {
		if actual := m.DifferentLeadingTerm(tt.a, tt.b); actual != tt.expected {
			t.Errorf("DifferentLeadingTerm(%s, %s): expected %v, actual %v", tt.a, tt.b, tt.expected, actual)
		}
	}
}

func TestIsLinear(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	x, y := m.Var(0), m.Var(1)
	p := m.AddRat(big.NewRat(1, 1), m.Add(m.MulRat(big.NewRat(2, 1), x), m.MulRat(big.NewRat(3, 1), y)))
	tests := []struct {
		p        *Pdd
		expected bool
	}{
		{m.Zero(), true},
		{m.One(), true},
		{m.Val(big.NewRat(5, 1)), true},
		{x, true},
		{p, true},
		{m.Mul(x, y), false},
		{m.Mul(x, x), false},
		{m.Add(m.Mul(x, y), x), false},
	}
	for _, tt := range tests {
		if actual := tt.p.IsLinear(); actual != tt.expected {
			t.Errorf("IsLinear(%s): expected %v, actual %v", tt.p, tt.expected, actual)
		}
	}
}
