package dfkernel

import "golang.org/x/exp/constraints"

// priorityStack is a priority queue in which elements of the same priority
// are popped in LIFO order. Priority 0 is highest (popped first); within a
// priority, the most recently pushed item pops first. P is constrained to
// the integer kinds via golang.org/x/exp/constraints so it can address a
// dense slice-of-stacks directly by priority (spec.md's stratum numbers, in
// this kernel's case, always `int`, but the constraint keeps the data
// structure honest about what it requires of a priority type).
//
// Ported from the slice-of-stacks shape of the reference scheduler's
// PriorityStack: a slice indexed by priority, each holding a small stack,
// scanned from index 0 upward on pop.
type priorityStack[P constraints.Integer, T any] struct {
	stacks [][]T
}

func (p *priorityStack[P, T]) push(priority P, item T) {
	for int(priority) >= len(p.stacks) {
		p.stacks = append(p.stacks, nil)
	}
	p.stacks[priority] = append(p.stacks[priority], item)
}

// pop removes and returns the highest-priority (lowest index), most recently
// pushed item. The second return is false if the stack is empty.
func (p *priorityStack[P, T]) pop() (T, bool) {
	for i := 0; i < len(p.stacks); i++ {
		n := len(p.stacks[i])
		if n == 0 {
			continue
		}
		item := p.stacks[i][n-1]
		p.stacks[i] = p.stacks[i][:n-1]
		return item, true
	}
	var zero T
	return zero, false
}

// popPriority is like pop but also returns the priority the item was popped
// from.
func (p *priorityStack[P, T]) popPriority() (P, T, bool) {
	for i := 0; i < len(p.stacks); i++ {
		n := len(p.stacks[i])
		if n == 0 {
			continue
		}
		item := p.stacks[i][n-1]
		p.stacks[i] = p.stacks[i][:n-1]
		return P(i), item, true
	}
	var zero P
	var zeroT T
	return zero, zeroT, false
}

// peekPriority returns the priority of the next item pop would return,
// without removing it.
func (p *priorityStack[P, T]) peekPriority() (P, bool) {
	for i := 0; i < len(p.stacks); i++ {
		if len(p.stacks[i]) > 0 {
			return P(i), true
		}
	}
	var zero P
	return zero, false
}

func (p *priorityStack[P, T]) len() int {
	n := 0
	for _, s := range p.stacks {
		n += len(s)
	}
	return n
}

func (p *priorityStack[P, T]) isEmpty() bool {
	for _, s := range p.stacks {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

// isEmptyBelow reports whether every stratum strictly below priority is
// empty. popPriority's lowest-index-first scan already guarantees the
// stratum barrier (§4.3.5) by construction, so this backs an explicit
// assertion in Scheduler.runSubgraph rather than driving scheduling
// decisions itself: a violation here means the priority stack's own
// invariant broke, not a graph construction error.
func (p *priorityStack[P, T]) isEmptyBelow(priority P) bool {
	limit := int(priority)
	if limit > len(p.stacks) {
		limit = len(p.stacks)
	}
	for i := 0; i < limit; i++ {
		if len(p.stacks[i]) > 0 {
			return false
		}
	}
	return true
}
