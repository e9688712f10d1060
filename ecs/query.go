package ecs

// intersect returns the ids present in every set, iterating the smallest.
func intersect(sets ...*sparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.len() < sets[smallest].len() {
			smallest = i
		}
	}

	var out []entityID
outer:
	for _, id := range sets[smallest].ids() {
		for i, s := range sets {
			if i != smallest && !s.has(id) {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}
