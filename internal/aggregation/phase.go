package aggregation

// Phase is the coordinator's position in a run.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseDiscovering Phase = "discovering"
	PhaseIngesting   Phase = "ingesting"
	PhaseDraining    Phase = "draining"
	PhasePersisting  Phase = "persisting"
	PhaseDone        Phase = "done"
	PhaseFailed      Phase = "failed"
)

var phaseTransitions = map[Phase][]Phase{
	PhaseIdle:        {PhaseDiscovering},
	PhaseDiscovering: {PhaseIngesting, PhaseFailed},
	PhaseIngesting:   {PhaseDraining, PhaseFailed},
	PhaseDraining:    {PhasePersisting, PhaseFailed},
	PhasePersisting:  {PhaseDone, PhaseFailed},
}

// CanTransition reports whether to may follow p. Done and Failed are terminal.
func (p Phase) CanTransition(to Phase) bool {
	for _, next := range phaseTransitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}
