package session

import "github.com/katalvlaran/ghostbfs/gridgraph"

// Step advances the agent by one animation step and cancels the timer on
// arrival. It can be driven directly, without any scheduler.
func (s *Session) Step() StepResult {
	s.mu.Lock()
	res := s.stepLocked()
	snap := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap)
	return res
}

// Arrived reports whether a destination is set and the agent stands on it.
func (s *Session) Arrived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arrivedLocked()
}

// CanAdvance reports whether the next Step would move the agent.
// It is false with no destination, after arrival, and whenever the agent is
// cut off from the destination.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasDest || s.arrivedLocked() {
		return false
	}
	return s.nextLocked() != s.agent
}

func (s *Session) arrivedLocked() bool {
	return s.hasDest && s.agent == s.dest
}

// stepLocked performs one step. The stop check runs first so an agent that
// already stands on the destination never moves.
func (s *Session) stepLocked() StepResult {
	res := StepResult{From: s.agent, To: s.agent}
	if !s.hasDest {
		return res
	}
	if s.arrivedLocked() {
		s.stopLocked()
		res.Arrived = true
		return res
	}

	s.agent = s.nextLocked()
	res.To = s.agent
	res.Moved = res.To != res.From
	if res.Moved {
		s.steps++
	}
	if s.arrivedLocked() {
		s.stopLocked()
		res.Arrived = true
	}
	return res
}

// nextLocked returns where the agent lands under the configured rule.
// Every candidate is compared with the distance of the cell the agent
// occupied at the start of the step.
func (s *Session) nextLocked() int {
	here := s.dist.Get(s.agent)
	to := s.agent
	best := gridgraph.Unset()
	for _, n := range s.grid.Neighbors(s.agent, gridgraph.Frontier, s.dist) {
		d := s.dist.Get(n)
		if !d.Less(here) {
			continue
		}
		switch s.opts.Rule {
		case StepMinimum:
			if !best.IsSet() || d.Less(best) {
				best, to = d, n
			}
		default:
			to = n
		}
	}
	return to
}
