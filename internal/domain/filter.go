package domain

import "strings"

// RegistrationFilter narrows a registration list. Search is a
// case-insensitive substring match over name, mobile, customer id and
// panchayath; Category and Panchayath are exact matches. All populated
// fields must match.
type RegistrationFilter struct {
	Search     string
	Category   string
	Panchayath string
}

func (f RegistrationFilter) Matches(r Registration) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Panchayath != "" && r.Panchayath != f.Panchayath {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Mobile), term) ||
		strings.Contains(strings.ToLower(r.CustomerID), term) ||
		strings.Contains(strings.ToLower(r.Panchayath), term)
}

// FilterRegistrations keeps the order of the input list.
func FilterRegistrations(items []Registration, f RegistrationFilter) []Registration {
	out := make([]Registration, 0, len(items))
	for _, r := range items {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
