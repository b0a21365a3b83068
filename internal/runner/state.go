package runner

// State is a phase of the sampling run.
type State int

const (
	Idle State = iota
	Collecting
	Persisting
	Evaluating
	Waiting
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	case Persisting:
		return "persisting"
	case Evaluating:
		return "evaluating"
	case Waiting:
		return "waiting"
	case Done:
		return "done"
	}
	return "unknown"
}
