package reconcile

// keySet is a set of normalized keys.
type keySet map[string]struct{}

// Add inserts key and reports whether it was not already present.
func (s keySet) Add(key string) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}
