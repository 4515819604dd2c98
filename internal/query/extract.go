package query

import (
	"regexp"
	"sort"
	"strings"

	"capbot/internal/payroll"
	"capbot/internal/shared/textnorm"
)

// Roster maps folded aliases (full names and first names) to canonical
// employee names. Extraction is closed-world: only names in the roster are
// ever recognized, free-form unknown names are not.
type Roster map[string]string

// RosterFromNames derives a roster from display names: every full name is
// an alias of itself, and a first name becomes an alias when exactly one
// employee carries it.
func RosterFromNames(names []string) Roster {
	r := make(Roster, len(names)*2)
	firstNames := make(map[string][]string)

	for _, name := range names {
		folded := textnorm.Fold(name)
		r[folded] = name

		if fields := strings.Fields(folded); len(fields) > 1 {
			firstNames[fields[0]] = append(firstNames[fields[0]], name)
		}
	}

	for first, owners := range firstNames {
		if len(owners) == 1 {
			r[first] = owners[0]
		}
	}

	return r
}

// sortedAliases returns aliases longest first so "ana souza" is tried
// before "ana"; ties break alphabetically for determinism.
func (r Roster) sortedAliases() []string {
	aliases := make([]string, 0, len(r))
	for alias := range r {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	return aliases
}

// Canonical resolves an alias or candidate name to its canonical form.
func (r Roster) Canonical(candidate string) (string, bool) {
	name, ok := r[textnorm.Fold(candidate)]
	return name, ok
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\((\p{Lu}\p{Ll}+\s+\p{Lu}\p{Ll}+)\)`),        // full name in parentheses
	regexp.MustCompile(`do\s+(\p{Lu}\p{Ll}+\s+\p{Lu}\p{Ll}+)`),       // "do Nome Sobrenome"
	regexp.MustCompile(`da\s+(\p{Lu}\p{Ll}+\s+\p{Lu}\p{Ll}+)`),       // "da Nome Sobrenome"
	regexp.MustCompile(`funcionári?o\s+(\p{Lu}\p{Ll}+\s+\p{Lu}\p{Ll}+)`),
	regexp.MustCompile(`(\p{Lu}\p{Ll}+\s+\p{Lu}\p{Ll}+)`), // bare capitalized pair
}

// ExtractEmployeeName finds a roster employee mentioned in the query.
// Alias containment runs first; the capitalization patterns only rescue a
// candidate that is itself in the roster.
func ExtractEmployeeName(roster Roster, message string) (string, bool) {
	folded := textnorm.Fold(textnorm.CleanMessage(message))

	for _, alias := range roster.sortedAliases() {
		if strings.Contains(folded, alias) {
			return roster[alias], true
		}
	}

	for _, pattern := range namePatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if name, ok := roster.Canonical(strings.TrimSpace(m[1])); ok {
			return name, true
		}
	}

	return "", false
}

// Priority order matters: word/digits first so "maio/2025" is not split by
// the later numeric patterns. The raw matched substring is returned,
// canonicalization is the caller's job.
var competencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([\pL\pN_]+/\d{2,4})`), // maio/2025, mai/25, 05/2025
	regexp.MustCompile(`(\d{4}-\d{2})`),        // 2025-05
	regexp.MustCompile(`(\d{2}/\d{4})`),        // 05/2025
	regexp.MustCompile(`(\d{4}/\d{2})`),        // 2025/05
	regexp.MustCompile(`([\pL_]+\s+\d{4})`),    // maio 2025
}

// ExtractCompetency pulls the first period-looking substring out of the
// message.
func ExtractCompetency(message string) (string, bool) {
	for _, pattern := range competencyPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

var (
	reQuarterOrdinal = regexp.MustCompile(`([1-4])[ºo°]?\s*trimestre`)
	reQuarterWord    = regexp.MustCompile(`(primeiro|segundo|terceiro|quarto)\s+trimestre`)
	reMonthRange     = regexp.MustCompile(`([\pL]+)\s+a(?:te)?\s+([\pL]+)`)
	reYear           = regexp.MustCompile(`\b(20\d{2})\b`)
)

var quarterWords = map[string]int{
	"primeiro": 1,
	"segundo":  2,
	"terceiro": 3,
	"quarto":   4,
}

var quarterMonths = map[int][2]string{
	1: {"01", "03"},
	2: {"04", "06"},
	3: {"07", "09"},
	4: {"10", "12"},
}

// ExtractPeriod resolves quarter expressions ("1º trimestre de 2025") and
// month-name ranges ("janeiro a março de 2025") to a closed competency
// period. The year must appear in the message; without it the extraction
// fails and the caller asks the user to clarify.
func ExtractPeriod(message string) (payroll.Period, bool) {
	msg := textnorm.Fold(textnorm.CleanMessage(message))

	yearMatch := reYear.FindStringSubmatch(msg)
	if yearMatch == nil {
		return payroll.Period{}, false
	}
	year := yearMatch[1]

	quarter := 0
	if m := reQuarterOrdinal.FindStringSubmatch(msg); m != nil {
		quarter = int(m[1][0] - '0')
	} else if m := reQuarterWord.FindStringSubmatch(msg); m != nil {
		quarter = quarterWords[m[1]]
	}
	if quarter != 0 {
		months := quarterMonths[quarter]
		return payroll.Period{Start: year + "-" + months[0], End: year + "-" + months[1]}, true
	}

	for _, m := range reMonthRange.FindAllStringSubmatch(msg, -1) {
		startMonth, okStart := payroll.MonthNumber(m[1])
		endMonth, okEnd := payroll.MonthNumber(m[2])
		if okStart && okEnd && startMonth <= endMonth {
			return payroll.Period{Start: year + "-" + startMonth, End: year + "-" + endMonth}, true
		}
	}

	return payroll.Period{}, false
}
