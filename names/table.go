package names

import "strings"

// Table resolves a name-id (as carried on annotation.Annotation) to its
// display string.
type Table interface {
	NameForID(id uint32) string
}

// SuffixTable is the set of trailing words considered interchangeable when
// comparing two street names, lowercased.
type SuffixTable map[string]bool

// DefaultSuffixes is a small, conservative default suffix set.
func DefaultSuffixes() SuffixTable {
	return SuffixTable{
		"street": true, "st": true,
		"road": true, "rd": true,
		"avenue": true, "ave": true,
		"boulevard": true, "blvd": true,
		"drive": true, "dr": true,
		"lane": true, "ln": true,
		"way": true,
	}
}

// IdenticalNames reports whether name ids a and b refer to the same street,
// either because they share an id, both resolve to the empty string (an
// unnamed road never requires an announcement against another unnamed
// road), or one name's trailing word is a recognized suffix and the
// remaining prefix matches the other name exactly.
func IdenticalNames(a, b uint32, table Table, suffixes SuffixTable) bool {
	if a == b {
		return true
	}

	sa := strings.ToLower(strings.TrimSpace(table.NameForID(a)))
	sb := strings.ToLower(strings.TrimSpace(table.NameForID(b)))

	if sa == "" && sb == "" {
		return true
	}

	if sa == sb {
		return true
	}

	return stripSuffix(sa, suffixes) == sb || stripSuffix(sb, suffixes) == sa
}

func stripSuffix(name string, suffixes SuffixTable) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}

	last := fields[len(fields)-1]
	if !suffixes[last] {
		return name
	}

	return strings.TrimSpace(strings.Join(fields[:len(fields)-1], " "))
}

// RequiresAnnouncement reports whether transitioning from name "from" to
// name "to" should be narrated to the user — the negation of IdenticalNames
// that also treats one empty / one non-empty name as requiring
// announcement (losing a street name, or gaining one, is itself notable).
func RequiresAnnouncement(from, to uint32, table Table, suffixes SuffixTable) bool {
	sa := table.NameForID(from)
	sb := table.NameForID(to)

	if sa == "" && sb == "" {
		return false
	}

	return !IdenticalNames(from, to, table, suffixes)
}
