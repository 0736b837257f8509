package domain

type Status string

const (
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusPlanned   Status = "planned"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

type Outcome struct {
	Candidate Candidate
	Status    Status
	Timestamp Timestamp
	Rule      string
	Err       error
}

// Summary accumulates the outcomes of one run.
type Summary struct {
	Dir       string
	DryRun    bool
	Outcomes  []Outcome
	Updated   int
	Unchanged int
	Planned   int
	Skipped   int
	Failed    int
	Ignored   int
}

func (s *Summary) Record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case StatusUpdated:
		s.Updated++
	case StatusUnchanged:
		s.Unchanged++
	case StatusPlanned:
		s.Planned++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

func (s Summary) Processed() int {
	return len(s.Outcomes)
}
