package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
)

// ErrInvalidGraph is returned when a transition table fails validation.
var ErrInvalidGraph = errors.New("invalid graph")

// DecideFunc resolves the branch taken at a fork.
type DecideFunc func(s domain.State, limit int) domain.Branch

// Fork is a conditional route with exactly two targets.
type Fork struct {
	Retry   string
	Proceed string
	Decide  DecideFunc
}

// Route describes where the cursor moves after a step completes.
// Exactly one of Next or Fork must be set.
type Route struct {
	Next string
	Fork *Fork
}

// Graph is a declarative transition table: step name to step and route.
// It is immutable once built.
type Graph struct {
	entry  string
	steps  map[string]domain.Step
	routes map[string]Route
	order  []string
}

// Builder accumulates steps and routes before validation.
type Builder struct {
	g *Graph
}

// NewBuilder starts a graph whose execution begins at entry.
func NewBuilder(entry string) *Builder {
	return &Builder{g: &Graph{
		entry:  entry,
		steps:  make(map[string]domain.Step),
		routes: make(map[string]Route),
	}}
}

// Then adds a step that advances unconditionally to next.
func (b *Builder) Then(name string, step domain.Step, next string) *Builder {
	return b.add(name, step, Route{Next: next})
}

// Fork adds a step whose successor is decided at runtime.
func (b *Builder) Fork(name string, step domain.Step, fork Fork) *Builder {
	return b.add(name, step, Route{Fork: &fork})
}

func (b *Builder) add(name string, step domain.Step, r Route) *Builder {
	if _, dup := b.g.steps[name]; !dup {
		b.g.order = append(b.g.order, name)
	}
	b.g.steps[name] = step
	b.g.routes[name] = r
	return b
}

// Build validates the table and returns the graph.
func (b *Builder) Build() (*Graph, error) {
	g := b.g
	if g.entry == "" {
		return nil, fmt.Errorf("%w: entry step is empty", ErrInvalidGraph)
	}
	if _, ok := g.steps[g.entry]; !ok {
		return nil, fmt.Errorf("%w: entry step '%s' is not defined", ErrInvalidGraph, g.entry)
	}

	for _, name := range g.order {
		if name == domain.StepEnd {
			return nil, fmt.Errorf("%w: '%s' is reserved", ErrInvalidGraph, domain.StepEnd)
		}
		if g.steps[name] == nil {
			return nil, fmt.Errorf("%w: step '%s' has no implementation", ErrInvalidGraph, name)
		}
		r := g.routes[name]
		switch {
		case r.Fork != nil && r.Next != "":
			return nil, fmt.Errorf("%w: step '%s' has both a next step and a fork", ErrInvalidGraph, name)
		case r.Fork != nil:
			if r.Fork.Decide == nil {
				return nil, fmt.Errorf("%w: fork at '%s' has no decision", ErrInvalidGraph, name)
			}
			if err := g.checkTarget(name, r.Fork.Retry); err != nil {
				return nil, err
			}
			if err := g.checkTarget(name, r.Fork.Proceed); err != nil {
				return nil, err
			}
		default:
			if err := g.checkTarget(name, r.Next); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (g *Graph) checkTarget(from, to string) error {
	if to == domain.StepEnd {
		return nil
	}
	if to == "" {
		return fmt.Errorf("%w: step '%s' has no successor", ErrInvalidGraph, from)
	}
	if _, ok := g.steps[to]; !ok {
		return fmt.Errorf("%w: step '%s' points to unknown step '%s'", ErrInvalidGraph, from, to)
	}
	return nil
}

// Entry returns the first step executed by Run.
func (g *Graph) Entry() string {
	return g.entry
}

// Has reports whether name is a step of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.steps[name]
	return ok
}

// Transitions lists every edge of the table in declaration order.
// Fork edges carry their branch label.
func (g *Graph) Transitions() []domain.Transition {
	out := make([]domain.Transition, 0, len(g.order)+1)
	for _, name := range g.order {
		r := g.routes[name]
		if r.Fork == nil {
			out = append(out, domain.Transition{From: name, To: r.Next})
			continue
		}
		out = append(out,
			domain.Transition{From: name, To: r.Fork.Retry, Branch: domain.BranchRetry},
			domain.Transition{From: name, To: r.Fork.Proceed, Branch: domain.BranchProceed},
		)
	}
	return out
}

// Steps holds the implementations of the content workflow.
type Steps struct {
	Extract  domain.Step
	Generate domain.Step
	Validate domain.Step
	Analyze  domain.Step
	Render   domain.Step
}

// ContentGraph wires the fixed content workflow:
// extract, generate, validate, then retry to generate or proceed to analyze, then render.
func ContentGraph(s Steps) (*Graph, error) {
	return NewBuilder(domain.StepExtract).
		Then(domain.StepExtract, s.Extract, domain.StepGenerate).
		Then(domain.StepGenerate, s.Generate, domain.StepValidate).
		Fork(domain.StepValidate, s.Validate, Fork{
			Retry:   domain.StepGenerate,
			Proceed: domain.StepAnalyze,
			Decide:  Decide,
		}).
		Then(domain.StepAnalyze, s.Analyze, domain.StepRender).
		Then(domain.StepRender, s.Render, domain.StepEnd).
		Build()
}
