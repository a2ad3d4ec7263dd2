// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"github.com/sirupsen/logrus"
)

// configs is used to store the values of different parameters of a Manager.
type configs struct {
	numvars         int  // number of variables declared at initialization
	nodesize        int  // initial number of nodes in the table
	maxnodesize     int  // maximum total number of nodes in the table
	maxnodeincrease int  // maximum number of nodes that can be added to the table at each resize (0 if no limit)
	minfreenodes    int  // minimum number of nodes (%) that should be left after GC before triggering a resize
	mod2            bool // whether coefficients are reduced modulo 2
	disablegc       bool // whether garbage collection can be triggered during node allocation

	logger logrus.FieldLogger
}

func makeconfigs(numvars int) *configs {
	c := &configs{numvars: numvars}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.maxnodesize = _MAXNODES
	// we build enough nodes to include the two constants and all the
	// variables declared at initialization
	c.nodesize = _DEFAULTALLOC + numvars
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the table can
// increase during computation. By default we allocate enough nodes for the two
// constants, one node for each declared variable, and about a thousand free
// slots.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= c.numvars+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the table. An operation trying to
// raise the number of nodes above this limit will generate an error and return
// a nil Pdd. The default value is 1 << 24, about 16.7 million nodes.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.maxnodesize = size
		}
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the node table. Below this
// limit we typically grow the table by half its size each time we need to
// resize it. The default value is about a million nodes. Set the value to zero
// to avoid imposing a limit.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in New
// it sets the ratio of free nodes (%) that has to be left after a Garbage
// Collection event. When there is not enough free nodes in the table, we try
// reclaiming unused nodes. With a ratio of, say 25, we resize the table if the
// number of free nodes is less than 25% of the capacity of the table (see
// Maxnodesize and Maxnodeincrease). The default value is 20%.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Mod2 is a configuration option (function). Used as a parameter in New it
// makes the manager compute over GF(2): every coefficient is reduced modulo 2
// when a constant is created, so additions behave like exclusive or on
// monomials and every polynomial is its own additive inverse. Variables are
// idempotent in this mode, meaning x * x simplifies to x, so diagrams denote
// Boolean (Zhegalkin) polynomials.
func Mod2() func(*configs) {
	return func(c *configs) {
		c.mod2 = true
	}
}

// DisableGC is a configuration option (function). Used as a parameter in New
// it prevents node allocation from triggering a garbage collection; the table
// only grows, up to Maxnodesize, and the GC method is the only way to reclaim
// dead nodes. This gives more predictable latencies at the price of a larger
// memory footprint.
func DisableGC() func(*configs) {
	return func(c *configs) {
		c.disablegc = true
	}
}

// Logger is a configuration option (function). Used as a parameter in New it
// sets the logger used to report garbage collections and node table resizes,
// at debug level. The default is a fresh logrus logger with the standard
// configuration.
func Logger(log logrus.FieldLogger) func(*configs) {
	return func(c *configs) {
		c.logger = log
	}
}
