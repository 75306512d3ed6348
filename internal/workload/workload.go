// Package workload simulates a parser that builds one syntax tree per input
// file in its own pool and hands every tree to a long-lived owner.
package workload

import (
	"math/rand"
	"unsafe"

	"github.com/pavanmanishd/mempool"
	"github.com/pkg/errors"
)

// Node is a syntax tree node. It holds no Go pointers so it can live in pool
// memory; relations are indices into File.Nodes.
type Node struct {
	Kind   uint16
	Depth  uint16
	Parent int32
	Name   int32 // index into File.Names, -1 if unnamed
	Next   int32 // next sibling, -1 if last
}

// File is the parse result for one input.
type File struct {
	ID       int
	Nodes    []Node
	Names    []string
	Literals [][]byte
}

// Config controls the shape of the generated trees.
type Config struct {
	Files       int
	Nodes       int   // nodes per file
	LiteralSize int   // bytes per string literal; every 64th node carries one
	Seed        int64 // deterministic when non-zero
}

// Result summarizes a run.
type Result struct {
	Files    []*File
	Nodes    int
	Names    int
	Literals int
}

const kinds = 12

// Parse builds a random tree of n nodes in p.
func Parse(p *mempool.Pool, id, n, literalSize int, rnd *rand.Rand) *File {
	f := &File{ID: id, Nodes: mempool.MakeSlice[Node](p, n)}
	last := make(map[int32]int32) // parent -> last child
	for i := range f.Nodes {
		node := &f.Nodes[i]
		node.Kind = uint16(rnd.Intn(kinds))
		node.Name = -1
		node.Next = -1
		node.Parent = -1
		if i > 0 {
			node.Parent = int32(rnd.Intn(i))
			node.Depth = f.Nodes[node.Parent].Depth + 1
			if prev, ok := last[node.Parent]; ok {
				f.Nodes[prev].Next = int32(i)
			}
			last[node.Parent] = int32(i)
		}
		if node.Kind%3 == 0 {
			node.Name = int32(len(f.Names))
			f.Names = append(f.Names, p.Sprintf("ident_%d_%d", id, i))
		}
		if literalSize > 0 && i%64 == 63 {
			lit := p.Alloc(literalSize)
			for j := range lit {
				lit[j] = byte('a' + (i+j)%26)
			}
			f.Literals = append(f.Literals, lit)
		}
	}
	return f
}

// Run parses cfg.Files files, each into a fresh pool from newPool, and
// combines every file pool into owner.
func Run(cfg Config, owner *mempool.Pool, newPool func() *mempool.Pool) *Result {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rnd := rand.New(rand.NewSource(seed))

	res := &Result{}
	for id := 0; id < cfg.Files; id++ {
		p := newPool()
		f := Parse(p, id, cfg.Nodes, cfg.LiteralSize, rnd)
		owner.Combine(p)
		res.Files = append(res.Files, f)
		res.Nodes += len(f.Nodes)
		res.Names += len(f.Names)
		res.Literals += len(f.Literals)
	}
	return res
}

// Verify checks that owner contains every node, name and literal of res and
// that the trees are intact.
func Verify(owner *mempool.Pool, res *Result) error {
	for _, f := range res.Files {
		if len(f.Nodes) > 0 && !owner.Contains(unsafe.Pointer(&f.Nodes[0])) {
			return errors.Errorf("file %d: nodes not owned by pool", f.ID)
		}
		for i, node := range f.Nodes {
			if i > 0 && (node.Parent < 0 || int(node.Parent) >= i) {
				return errors.Errorf("file %d: node %d has bad parent %d", f.ID, i, node.Parent)
			}
			if node.Name >= int32(len(f.Names)) {
				return errors.Errorf("file %d: node %d has bad name %d", f.ID, i, node.Name)
			}
		}
		for i, name := range f.Names {
			if !owner.Contains(unsafe.Pointer(unsafe.StringData(name))) {
				return errors.Errorf("file %d: name %d %q not owned by pool", f.ID, i, name)
			}
		}
		for i, lit := range f.Literals {
			if !owner.ContainsBytes(lit) {
				return errors.Errorf("file %d: literal %d not owned by pool", f.ID, i)
			}
		}
	}
	return nil
}
