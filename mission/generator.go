package mission

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/lvlgen/grammar"
	"github.com/katalvlaran/lvlgen/symbol"
)

// Generator rewrites mission graphs with a fixed alphabet and rule set.
// A Generator holds no per-run state and may be shared by goroutines.
type Generator struct {
	alphabet *symbol.Alphabet
	rules    *grammar.Set
}

// genContext is the mutable state of one generation run.
type genContext struct {
	rng      *rand.Rand
	usage    map[*grammar.Rule]int
	steps    int
	used     int
	rewrites int
	opts     Options
}

// candidate is a rule accepted at a node, with the child it consumed.
type candidate struct {
	rule   *grammar.Rule
	child  NodeID
	weight float64
}

// NewGenerator binds an alphabet and a rule set.
func NewGenerator(a *symbol.Alphabet, rules *grammar.Set) (*Generator, error) {
	if a == nil {
		return nil, ErrNilAlphabet
	}
	if rules == nil {
		return nil, ErrNilRules
	}
	return &Generator{alphabet: a, rules: rules}, nil
}

// Generate grows a mission graph from head.
//
// Behavior:
//  1. Start with a single node carrying head.
//  2. Run depth-first passes from the head. Each visited node costs one
//     step; nonterminal nodes are rewritten (see rewrite).
//  3. Stop after a pass without rewrites, when all reachable nodes are
//     terminal, when the node cap is reached, or when steps run out.
//  4. Renumber the graph breadth first from 1.
//
// Complexity: O(S × (R × W + V)) for S steps, R rules, W window length.
func (gen *Generator) Generate(head symbol.ID, opts ...Option) (*Result, error) {
	// Validate head and options
	if !gen.alphabet.Has(head) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSymbol, head)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Prepare graph and context
	g := NewGraph(head)
	ctx := &genContext{
		rng:   o.Rand,
		usage: make(map[*grammar.Rule]int, gen.rules.Len()),
		steps: o.MaxSteps,
		opts:  o,
	}
	// Rewrite until a pass changes nothing or a budget runs out
	passes := 0
	for ctx.steps > 0 {
		passes++
		n := gen.pass(g, ctx)
		if n == 0 || gen.allTerminal(g) || g.Len() >= o.MaxNodes {
			break
		}
	}
	g.Renumber()

	return &Result{
		Graph:    g,
		Hooks:    g.Hooks(),
		Steps:    ctx.used,
		Rewrites: ctx.rewrites,
		Passes:   passes,
	}, nil
}

// pass walks g depth first from the head, rewriting every nonterminal it
// meets, and returns the number of rewrites. Children are visited after
// the rewrite of their parent, so freshly spliced nodes are reached in the
// same pass.
func (gen *Generator) pass(g *Graph, ctx *genContext) int {
	before := ctx.rewrites
	visited := mapset.New[NodeID]()
	stack := []NodeID{g.head}
	for len(stack) > 0 && ctx.steps > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(id) {
			continue
		}
		visited.Put(id)
		ctx.steps--
		ctx.used++

		// Rewrite before pushing children; spliced nodes join this pass
		if !gen.alphabet.IsTerminal(g.nodes[id].Symbol) && g.Len() < ctx.opts.MaxNodes {
			gen.rewrite(g, id, ctx)
		}
		children := g.nodes[id].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i].Child)
		}
	}
	return ctx.rewrites - before
}

// rewrite collects the candidates of node id, picks one and splices it.
// Without candidates the node is flagged Unresolved.
func (gen *Generator) rewrite(g *Graph, id NodeID, ctx *genContext) {
	cands := gen.candidates(g, id, ctx)
	c, ok := choose(cands, ctx.rng)
	if !ok {
		g.nodes[id].Unresolved = true
		ctx.opts.OnHook(id)
		return
	}
	g.nodes[id].Unresolved = false
	gen.splice(g, id, c)
	ctx.usage[c.rule]++
	ctx.rewrites++
	ctx.opts.OnRewrite(id, c.rule)
}

// candidates gathers parent+child matches first, then single-node
// matches, and computes their effective weights.
func (gen *Generator) candidates(g *Graph, id NodeID, ctx *genContext) []candidate {
	n := &g.nodes[id]
	var out []candidate
	for _, e := range n.Children {
		w := grammar.PairWindow(n.Symbol, n.TightToParent, g.nodes[e.Child].Symbol, e.Tight)
		for _, r := range gen.rules.Candidates(w, true) {
			out = append(out, candidate{rule: r, child: e.Child})
		}
	}
	multi := len(out) > 0
	for _, r := range gen.rules.Candidates(grammar.SingleWindow(n.Symbol, n.TightToParent), false) {
		out = append(out, candidate{rule: r, child: NoNode})
	}
	for i := range out {
		w := out[i].rule.Weight / float64(1+ctx.usage[out[i].rule])
		if multi && out[i].child == NoNode {
			w *= multiNodeDamping
		}
		out[i].weight = w
	}
	return out
}

// choose picks a uniformly random candidate and keeps it with
// probability 1 - 1/(weight+1); otherwise it is discarded and the pick is
// retried. Candidates of weight <= 0 are discarded without a draw. The
// last remaining candidate is always kept.
func choose(cands []candidate, r *rand.Rand) (candidate, bool) {
	cands = append([]candidate(nil), cands...)
	for len(cands) > 0 {
		i := r.Intn(len(cands))
		c := cands[i]
		if len(cands) == 1 {
			return c, true
		}
		if c.weight <= 0 || r.Float64() < 1/(c.weight+1) {
			cands = append(cands[:i], cands[i+1:]...)
			continue
		}
		return c, true
	}
	return candidate{}, false
}

// splice replaces node id (and the matched child, if any) by the rule
// output. Local ID 1 binds to id, local ID 2 to the matched child or a
// fresh node; other locals become new nodes. A matched child the output
// does not mention is linked back under id with its old coupling.
func (gen *Generator) splice(g *Graph, id NodeID, c candidate) {
	out := c.rule.Output
	child := c.child
	oldTight := false
	if child != NoNode {
		oldTight, _ = g.Coupling(id, child)
		g.Unlink(id, child)
	}
	_ = g.Relabel(id, out.HeadSymbol())

	bind := map[int]NodeID{grammar.HeadLocal: id}
	if sym, ok := out.Symbol(grammar.ChildLocal); ok {
		if child == NoNode {
			child = g.AddNode(sym)
		} else if !gen.alphabet.IsTerminal(g.nodes[child].Symbol) {
			_ = g.Relabel(child, sym)
		}
		bind[grammar.ChildLocal] = child
	} else if child != NoNode {
		_ = g.Link(id, child, oldTight)
	}

	out.Walk(func(e grammar.OutputEdge) {
		parent := bind[e.Parent]
		to, ok := bind[e.Child]
		if !ok {
			sym, _ := out.Symbol(e.Child)
			to = g.AddNode(sym)
			bind[e.Child] = to
		}
		// an edge closing a cycle through pre-existing nodes is dropped
		_ = g.Link(parent, to, e.Tight)
	})
}

// allTerminal reports whether every reachable node is terminal.
func (gen *Generator) allTerminal(g *Graph) bool {
	for _, id := range g.Reachable() {
		if !gen.alphabet.IsTerminal(g.nodes[id].Symbol) {
			return false
		}
	}
	return true
}
