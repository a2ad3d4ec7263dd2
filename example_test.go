// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd_test

import (
	"fmt"
	"log"
	"math/big"

	"github.com/dalzilio/pdd"
)

// This example shows the basic usage of the package: create a manager, build
// some polynomials and output the result.
func Example_basic() {
	// Create a new manager for polynomials over 3 variables.
	m, _ := pdd.New(3)
	x, y := m.Var(0), m.Var(1)
	// p == 2x + 3y + 1, built from constants and variables
	p := m.AddRat(big.NewRat(1, 1), m.Add(m.MulRat(big.NewRat(2, 1), x), m.MulRat(big.NewRat(3, 1), y)))
	// You can print statistics about the manager or export a diagram in
	// Graphviz's DOT format
	log.Print(m.Stats())
	fmt.Println(p)
	fmt.Printf("degree %d, dag size %d\n", m.Degree(p), m.DagSize(p))
	// multiples of p reduce to zero
	fmt.Println(m.Reduce(m.Mul(x, p), p))
	// Output:
	// 3*v1 + 2*v0 + 1
	// degree 1, dag size 4
	// 0
}

// This example computes the S-polynomial of two generators, the building
// block of Buchberger's algorithm for Gröbner bases.
func Example_spoly() {
	m, _ := pdd.New(3)
	x, y, z := m.Var(0), m.Var(1), m.Var(2)
	// a == xy + 1 and b == yz + z share the variable y in their leading
	// monomials
	a := m.AddRat(big.NewRat(1, 1), m.Mul(x, y))
	b := m.Add(m.Mul(y, z), z)
	if s, ok := m.TrySPoly(a, b); ok {
		fmt.Println(s)
	}
	// Output:
	// - v2*v0 + v2
}
