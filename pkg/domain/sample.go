package domain

import "time"

// Sample is one (structure, score) pair produced by the oracle.
type Sample struct {
	ID        string    `json:"id"`
	Grammar   string    `json:"grammar"`
	Seed      int64     `json:"seed"`
	Index     int       `json:"index"`
	Tree      *Tree     `json:"tree"`
	Score     float64   `json:"score"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot returns a deep copy of the sample so callers cannot mutate a stored tree.
func (s *Sample) Snapshot() *Sample {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Tree = s.Tree.Clone()
	return &cp
}
