package history

import "strings"

// FuzzyMatch returns true if query fuzzy-matches target.
// Matching is case-insensitive and succeeds on substring match or if
// the query characters appear as a subsequence in the target.
func FuzzyMatch(target, query string) bool {
	if query == "" {
		return true
	}
	t := strings.ToLower(target)
	q := strings.ToLower(query)
	if strings.Contains(t, q) {
		return true
	}
	// subsequence match (rune-aware)
	qr := []rune(q)
	i := 0
	for _, ch := range t {
		if i < len(qr) && qr[i] == ch {
			i++
			if i >= len(qr) {
				return true
			}
		}
	}
	return false
}

// fuzzyMatchesRun checks project, version, status, and failed step.
func fuzzyMatchesRun(run *Run, query string) bool {
	if FuzzyMatch(run.Project, query) {
		return true
	}
	if run.Version.Valid && FuzzyMatch(run.Version.String, query) {
		return true
	}
	if FuzzyMatch(run.Status, query) {
		return true
	}
	if run.FailedStep.Valid && FuzzyMatch(run.FailedStep.String, query) {
		return true
	}
	return false
}
