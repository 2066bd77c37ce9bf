package ids

import "strings"

// UniquePrefixLengths returns the shortest unique prefix length for each ID,
// keyed by the lowercased ID.
func UniquePrefixLengths(ids []string) map[string]int {
	uniqueIDs := normalizeUnique(ids)
	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}
	return lengths
}

// MatchPrefix finds the ID starting with prefix, ignoring case. An exact
// match wins over longer IDs sharing the prefix.
func MatchPrefix(ids []string, prefix string) (match string, found, ambiguous bool) {
	prefix = strings.ToLower(prefix)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == prefix {
			return id, true, false
		}
		if !strings.HasPrefix(idLower, prefix) {
			continue
		}
		if found && !strings.EqualFold(match, id) {
			ambiguous = true
		}
		if !found {
			match = id
			found = true
		}
	}
	if ambiguous {
		return "", true, true
	}
	return match, found, false
}

func normalizeUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		out = append(out, idLower)
	}
	return out
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
