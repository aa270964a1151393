package synonyms

// Table maps a normalized token to its equivalence class of known
// city/area aliases. Built once at startup and read-only afterwards.
type Table struct {
	classes map[string][]string
}

// New builds a Table from a canonical->aliases map. The table is closed
// under symmetry at construction: every member of a class expands to the
// full class regardless of which spelling was registered as canonical.
func New(aliases map[string][]string) *Table {
	classes := map[string][]string{}
	for canonical, list := range aliases {
		class := append([]string{canonical}, list...)
		for _, member := range class {
			for _, other := range class {
				if other == member {
					continue
				}
				if !contains(classes[member], other) {
					classes[member] = append(classes[member], other)
				}
			}
		}
	}
	return &Table{classes: classes}
}

// Expand returns the token itself plus every registered alias. Lookup is
// a single exact map hit, never fuzzy. Unregistered tokens return a
// singleton.
func (table *Table) Expand(token string) []string {
	return append([]string{token}, table.classes[token]...)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Default returns the built-in table of Indian city and area aliases.
func Default() *Table {
	return New(map[string][]string{
		"bangalore":  {"bengaluru", "blr"},
		"mumbai":     {"bombay"},
		"chennai":    {"madras"},
		"kolkata":    {"calcutta"},
		"hyderabad":  {"hyd"},
		"gurgaon":    {"gurugram"},
		"pune":       {"poona"},
		"varanasi":   {"benares", "banaras"},
		"kochi":      {"cochin"},
		"trivandrum": {"thiruvananthapuram"},
		"vadodara":   {"baroda"},
		"delhi":      {"dilli"},
		"noida":      {"nouida"},
	})
}
