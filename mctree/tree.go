package mctree

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node is a particle in the decay tree.
type Node struct {
	Index    int
	PID      int
	Energy   float64
	Flag     Flag
	Children []*Node
}

// BranchEnergy returns the energy of n plus the branch energies of its
// children.
func (n *Node) BranchEnergy() float64 {
	e := n.Energy
	for _, c := range n.Children {
		e += c.BranchEnergy()
	}
	return e
}

// Tree is the decay tree of one event.
type Tree struct {
	Roots []*Node
	N     int

	// ESumPrompt is the energy sum of prompt particles, divided by the
	// number of primary vertices when that is known.
	ESumPrompt float64

	nodes []*Node
}

// Build classifies the particles of r and links them into a tree following
// their parent chains. Children are ordered by energy, highest first.
func Build(r *Record) (*Tree, error) {
	flags, err := Classify(r)
	if err != nil {
		return nil, err
	}

	t := &Tree{nodes: make([]*Node, r.Len())}
	for i := range t.nodes {
		t.nodes[i] = &Node{Index: i, PID: r.PID[i], Energy: r.Energy(i), Flag: flags[i]}
		if flags[i]&Prompt != 0 {
			t.ESumPrompt += t.nodes[i].Energy
		}
	}
	if r.NPrimaryVertices > 0 {
		t.ESumPrompt /= float64(r.NPrimaryVertices)
	}

	for i, mother := range r.Mother {
		if mother == -1 {
			t.Roots = append(t.Roots, t.nodes[i])
			continue
		}
		parent := t.nodes[mother]
		parent.Children = append(parent.Children, t.nodes[i])
	}

	byEnergy(t.Roots)
	for _, n := range t.nodes {
		byEnergy(n.Children)
	}

	t.Walk(func(*Node, int) error {
		t.N++
		return nil
	})
	if t.N != r.Len() {
		return nil, fmt.Errorf("%d of %d particles reachable: %w", t.N, r.Len(), ErrNodeCount)
	}
	return t, nil
}

func byEnergy(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Energy > nodes[j].Energy
	})
}

// Find returns the node of particle index, or nil.
func (t *Tree) Find(index int) *Node {
	if index < 0 || index >= len(t.nodes) {
		return nil
	}
	return t.nodes[index]
}

// TotalEnergy returns the sum of the branch energies of all roots.
func (t *Tree) TotalEnergy() float64 {
	var e float64
	for _, r := range t.Roots {
		e += r.BranchEnergy()
	}
	return e
}

// Walk visits the tree depth-first. Walking stops at the first error
// returned by fn.
func (t *Tree) Walk(fn func(n *Node, depth int) error) error {
	for _, r := range t.Roots {
		if err := walk(r, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(n *Node, depth int, fn func(*Node, int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Format writes one line per particle, indented three spaces per
// generation. Energies are expected in MeV.
func Format(w io.Writer, t *Tree) error {
	return t.Walk(func(n *Node, depth int) error {
		line := fmt.Sprintf("%s%s %.1f GeV/c %s", strings.Repeat(" ", 3*depth), Name(n.PID), n.Energy/1e3, n.Flag)
		_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
		return err
	})
}

// Header is the summary line printed above a formatted tree.
func Header(event int64, t *Tree) string {
	return fmt.Sprintf("event %d: %d particles, esum[prompt]/Npv %.2f TeV", event, t.N, t.ESumPrompt/1e6)
}
