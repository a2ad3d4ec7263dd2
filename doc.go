// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package pdd defines a concrete type for Polynomial Decision Diagrams (PDD), a
data structure used to efficiently represent multivariate polynomials with
exact rational coefficients in a canonical way.

Basics

A polynomial is represented by a directed acyclic graph where each internal
node carries a variable x and two branches, so that the node stands for the
polynomial lo + x*hi. Leaves carry rational constants. Nodes are ordered, with
the most significant variable at the top, and the hi branch of a node can
carry the same variable again, which encodes powers of x. Diagrams are reduced
and shared: building twice the same polynomial yields the same node, so
semantic equality of polynomials is a simple pointer comparison (see the Equal
method).

Each Manager has a number of variables, declared when it is initialized (with
New) and extended on demand (with Var); each variable is designated by an
integer index. The library supports multiple managers with possibly different
variable orders, but polynomials from different managers cannot be mixed.

Operations over polynomials return a Pdd, a handle to a vertex of the diagram,
from which sums, products, additive inverses and leading-monomial reductions
can be computed. The manager also supports the S-polynomial construction used
in Buchberger's algorithm for Gröbner bases, and a mod-2 mode where
coefficients live in GF(2) and variables are idempotent (see Mod2).

Automatic memory management

The library is written in pure Go and manages its own node table: nodes are
allocated from an arena that is garbage collected, with a mark and sweep
strategy, when an operation runs out of free slots. Rational constants are
interned in a pool that is swept together with the nodes. Like with MuDDy, a
ML interface to BuDDy, we piggyback on the garbage collection mechanism
offered by our host language: "external" references made by user code are
tracked with finalizers and reference counts, while the nodes being built
inside an operation are protected through an explicit stack. When the table
is exhausted, operations collect and retry once before reporting an error.

To get access to better statistics about caches and garbage collection, as
well as to unlock internal consistency checks, you can compile your
executable with the build tag `debug`.
*/
package pdd
