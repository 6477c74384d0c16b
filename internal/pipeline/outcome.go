package pipeline

import "time"

// PairStatus represents the result state of one document pair.
type PairStatus string

const (
	StatusCompleted PairStatus = "completed"
	StatusFailed    PairStatus = "failed"
)

// PairOutcome records how one document pair of a corpus run went.
type PairOutcome struct {
	Name        string        `json:"name"`
	Status      PairStatus    `json:"status"`
	Phase       string        `json:"phase,omitempty"` // Phase in which a failure happened
	RelationsA  int           `json:"relations_a"`
	RelationsB  int           `json:"relations_b"`
	Comparisons int           `json:"comparisons"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

func (o *PairOutcome) fail(phase string, err error) {
	o.Status = StatusFailed
	o.Phase = phase
	o.Error = err.Error()
}

// Summary counts outcomes by status.
func Summary(outcomes []PairOutcome) (completed, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		}
	}
	return completed, failed
}
