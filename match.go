package movies

import "strings"

// MatchLimit bounds every search result set, local or remote.
const MatchLimit = 20

// Match returns up to MatchLimit movies whose title or extract contains
// query, ignoring case. Results keep replica order.
func Match(query string, replica []*Movie) []*Movie {
	return MatchN(query, replica, MatchLimit)
}

// MatchN is Match with an explicit cap. The scan stops as soon as n
// matches are found.
func MatchN(query string, replica []*Movie, n int) []*Movie {
	if query == "" || n <= 0 {
		return []*Movie{}
	}

	q := strings.ToLower(query)
	matches := make([]*Movie, 0, min(n, len(replica)))
	for _, m := range replica {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Extract), q) {
			matches = append(matches, m)
			if len(matches) >= n {
				break
			}
		}
	}
	return matches
}

// PhraseQuery escapes query for use as an FTS5 match expression. Embedded
// double quotes are doubled and the whole term is quoted, so multi-word
// input matches as one exact phrase rather than as separate keywords.
func PhraseQuery(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}
