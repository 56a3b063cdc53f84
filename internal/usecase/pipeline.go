package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/trebuchet-org/fundops/internal/domain"
)

// Step is a named unit of the deploy pipeline. Dependencies name other steps
// by name or tag.
type Step struct {
	Name         string
	Tags         []string
	Dependencies []string
	// RunAtTheEnd steps run after every other selected step
	RunAtTheEnd bool
	Run         func(ctx context.Context) error
}

func (s *Step) matches(ref string) bool {
	return s.Name == ref || slices.Contains(s.Tags, ref)
}

// PlanSteps selects the steps matching tags (all steps when tags is empty)
// plus their transitive dependencies, and orders them so dependencies run
// first. Ties keep declaration order.
func PlanSteps(steps []*Step, tags []string) ([]*Step, error) {
	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate step %q", s.Name)
		}
		index[s.Name] = i
	}

	resolve := func(ref string) []int {
		var out []int
		for i, s := range steps {
			if s.matches(ref) {
				out = append(out, i)
			}
		}
		return out
	}

	// Select steps by tag, then close over dependencies
	selected := make(map[int]bool)
	var queue []int
	for i, s := range steps {
		if len(tags) == 0 || slices.ContainsFunc(tags, s.matches) {
			selected[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range steps[current].Dependencies {
			for _, j := range resolve(dep) {
				if !selected[j] {
					selected[j] = true
					queue = append(queue, j)
				}
			}
		}
	}

	// Build in-degrees and dependents among selected steps.
	// Dependencies that match no step are satisfied by existing deployments.
	inDegree := make(map[int]int, len(selected))
	dependents := make(map[int][]int)
	for i := range selected {
		inDegree[i] = 0
	}
	for i := range selected {
		for _, dep := range steps[i].Dependencies {
			for _, j := range resolve(dep) {
				if j == i {
					return nil, fmt.Errorf("step %q depends on itself: %w", steps[i].Name, domain.ErrCyclicDependency)
				}
				inDegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	var ready []int
	for i, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, i)
		}
	}
	sort.Ints(ready)

	var ordered []*Step
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		ordered = append(ordered, steps[current])

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
				sort.Ints(ready)
			}
		}
	}

	if len(ordered) != len(selected) {
		var cycle []string
		for i, degree := range inDegree {
			if degree > 0 {
				cycle = append(cycle, steps[i].Name)
			}
		}
		sort.Strings(cycle)
		return nil, fmt.Errorf("steps %v: %w", cycle, domain.ErrCyclicDependency)
	}

	// Move RunAtTheEnd steps last, keeping relative order
	var head, tail []*Step
	for _, s := range ordered {
		if s.RunAtTheEnd {
			tail = append(tail, s)
		} else {
			head = append(head, s)
		}
	}
	for _, s := range head {
		for _, dep := range s.Dependencies {
			for _, j := range resolve(dep) {
				if selected[j] && steps[j].RunAtTheEnd {
					return nil, fmt.Errorf("step %q depends on %q which runs at the end", s.Name, steps[j].Name)
				}
			}
		}
	}

	return append(head, tail...), nil
}
