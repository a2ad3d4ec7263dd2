// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
)

// Monomial is one term of a polynomial in expanded form: a coefficient and
// the list of its variables, with repetitions for powers and the most
// significant variable first.
type Monomial struct {
	Coef *big.Rat
	Vars []int
}

// Monomials returns the terms of p, leading term first. The result is nil
// when p is the zero polynomial.
func (m *Manager) Monomials(p *Pdd) []Monomial {
	if err := m.checkptr(p); err != nil {
		m.seterror("wrong operand in call to Monomials: %s", err)
		return nil
	}
	mons := m.monomials(p.root)
	// variables are collected bottom-up during the traversal
	for k := range mons {
		vs := mons[k].Vars
		for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
			vs[i], vs[j] = vs[j], vs[i]
		}
	}
	return mons
}

func (m *Manager) monomials(p int32) []Monomial {
	if m.isval(p) {
		if p == pddZero {
			return nil
		}
		return []Monomial{{Coef: new(big.Rat).Set(m.val(p))}}
	}
	mons := m.monomials(m.hi(p))
	for i := range mons {
		mons[i].Vars = append(mons[i].Vars, m.varid(p))
	}
	return append(mons, m.monomials(m.lo(p))...)
}

// String renders p as a sum of monomials, leading term first, with variable
// i printed as vi. The zero polynomial prints as "0".
func (p *Pdd) String() string {
	if p == nil {
		return "nil"
	}
	mons := p.m.Monomials(p)
	if len(mons) == 0 {
		return "0"
	}
	var buf strings.Builder
	for k, mon := range mons {
		neg := mon.Coef.Sign() < 0
		switch {
		case k == 0 && neg:
			buf.WriteString("- ")
		case k != 0 && neg:
			buf.WriteString(" - ")
		case k != 0:
			buf.WriteString(" + ")
		}
		c := new(big.Rat).Abs(mon.Coef)
		if c.Cmp(ratone) != 0 || len(mon.Vars) == 0 {
			buf.WriteString(c.RatString())
			if len(mon.Vars) > 0 {
				buf.WriteString("*")
			}
		}
		for i, v := range mon.Vars {
			if i > 0 {
				buf.WriteString("*")
			}
			fmt.Fprintf(&buf, "v%d", v)
		}
	}
	return buf.String()
}

// ******************************************************************************************************

// PrintStats outputs a textual representation of the manager statistics.
func (m *Manager) PrintStats() {
	fmt.Println("==============")
	fmt.Print(m.Stats())
	fmt.Println("==============")
	if _DEBUG {
		m.logtable()
	}
}

// PrintAll prints the totality of the node table on the standard output.
func (m *Manager) PrintAll() {
	m.printall(os.Stdout)
}

// FPrintAll prints the totality of the node table to the file filename, or
// on the standard output if filename is "-".
func (m *Manager) FPrintAll(filename string) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return m.printall(out)
}

func (m *Manager) printall(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for k := range m.nodes {
		n := int32(k)
		if n > 1 && m.isfree(n) {
			continue
		}
		if m.isval(n) {
			fmt.Fprintf(tw, "%d\t : %s\n", k, m.val(n).RatString())
			continue
		}
		fmt.Fprintf(tw, "%d\t : v%d\t %d\t %d\n", k, m.varid(n), m.lo(n), m.hi(n))
	}
	return tw.Flush()
}

// ******************************************************************************************************

// PrintDot prints a graph-like description of the diagram rooted at p using
// the DOT format.
func (m *Manager) PrintDot(p *Pdd) {
	m.printdot(bufio.NewWriter(os.Stdout), p)
}

// PrintAllDot prints a graph-like description of the whole node table using
// the DOT format.
func (m *Manager) PrintAllDot() {
	m.printalldot(bufio.NewWriter(os.Stdout))
}

// FPrintDot prints a DOT description of the diagram rooted at p to the file
// filename, or on the standard output if filename is "-".
func (m *Manager) FPrintDot(filename string, p *Pdd) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return m.printdot(bufio.NewWriter(out), p)
}

// FPrintAllDot prints a DOT description of the whole node table to the file
// filename, or on the standard output if filename is "-".
func (m *Manager) FPrintAllDot(filename string) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return m.printalldot(bufio.NewWriter(out))
}

func (m *Manager) printdot(w *bufio.Writer, p *Pdd) error {
	if err := m.checkptr(p); err != nil {
		fmt.Fprintf(w, "ERROR: %s\n", err)
		w.Flush()
		return err
	}
	// collect the nodes reachable from p
	m.initmark()
	nodes := []int32{}
	m.todo = append(m.todo[:0], p.root)
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		m.todo = m.todo[:len(m.todo)-1]
		if m.ismarked(r) {
			continue
		}
		m.setmark(r)
		nodes = append(nodes, r)
		if m.isval(r) {
			continue
		}
		m.todo = append(m.todo, m.lo(r), m.hi(r))
	}
	return m.print_dot(w, nodes)
}

func (m *Manager) printalldot(w *bufio.Writer) error {
	nodes := []int32{pddZero, pddOne}
	for k := 2; k < len(m.nodes); k++ {
		if !m.isfree(int32(k)) {
			nodes = append(nodes, int32(k))
		}
	}
	return m.print_dot(w, nodes)
}

// print_dot writes a GraphViz DOT file from a list of nodes. Leaves are
// drawn as boxes labelled with their value; we do not draw arcs that go to
// the constant zero.
func (m *Manager) print_dot(w *bufio.Writer, nodes []int32) error {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	fmt.Fprintln(w, "digraph G {")
	for _, v := range nodes {
		if v == pddZero {
			continue
		}
		if m.isval(v) {
			fmt.Fprintf(w, "%d [shape=box, label=\"%s\", style=filled, height=0.3, width=0.3];\n", v, m.val(v).RatString())
			continue
		}
		fmt.Fprintf(w, "%d %s\n", v, dotlabel(int(v), m.varid(v)))
		if m.lo(v) != pddZero {
			fmt.Fprintf(w, "%d -> %d [style=dotted];\n", v, m.lo(v))
		}
		fmt.Fprintf(w, "%d -> %d [style=filled];\n", v, m.hi(v))
	}
	fmt.Fprintln(w, "}")
	return w.Flush()
}

func dotlabel(a int, b int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">v%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
