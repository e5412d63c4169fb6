package team

// MergedSet folds team candidates that share a stable id into one record,
// preserving first-seen order for deterministic output.
type MergedSet struct {
	byID  map[string]Team
	order []string
}

func NewMergedSet() *MergedSet {
	return &MergedSet{byID: make(map[string]Team)}
}

// Add inserts a candidate, merging it with any existing record under the
// same id.
func (s *MergedSet) Add(candidate Team) {
	existing, ok := s.byID[candidate.ID]
	if !ok {
		s.byID[candidate.ID] = candidate
		s.order = append(s.order, candidate.ID)
		return
	}
	s.byID[candidate.ID] = merge(existing, candidate)
}

// Teams returns the merged records in first-seen order.
func (s *MergedSet) Teams() []Team {
	out := make([]Team, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *MergedSet) Get(id string) (Team, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// merge folds next into prev. A hold-id, once seen, sticks. The newer
// season decides name and gender; within the same season the longer name
// wins (club exports abbreviate, the fuller spelling is the better one).
func merge(prev, next Team) Team {
	out := prev

	if out.HoldID == "" {
		out.HoldID = next.HoldID
	}

	newerSeason := next.SeasonStartYear > 0 &&
		(prev.SeasonStartYear == 0 || next.SeasonStartYear > prev.SeasonStartYear)

	if newerSeason {
		if next.Name != "" {
			out.Name = next.Name
		}
		if next.Gender != "" {
			out.Gender = next.Gender
		}
	} else {
		if len(next.Name) > len(out.Name) {
			out.Name = next.Name
		}
		if out.Gender == "" {
			out.Gender = next.Gender
		}
	}

	if next.SeasonStartYear > out.SeasonStartYear {
		out.SeasonStartYear = next.SeasonStartYear
	}

	return out
}
