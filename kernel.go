// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"errors"
)

// Node indexes of the two constant polynomials, 0 and 1. They occupy the
// first two slots of the node table and are never garbage collected.
const (
	pddZero int32 = 0
	pddOne  int32 = 1
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXNODES is the default cap on the size of the node table, about 16.7
// million nodes. Operations that need to allocate past this limit fail with
// an error instead of growing the table.
const _MAXNODES int = 1 << 24

// _MAXVAR is the maximal number of levels in a diagram (so also the max
// number of variables). We use only the first 21 bits for encoding levels.
// Hence we make sure to always use int32 to avoid problem when we change
// architecture.
const _MAXVAR int = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (like constants and variables) in the node list. It is
// egal to 1023 (10 bits).
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTALLOC is the default size of the node table at initialization, not
// counting the extra slot reserved for each declared variable.
const _DEFAULTALLOC int = 1024

var errMemory = errors.New("unable to free memory or resize the node table")
