package domain

// Admin panel sections.
const (
	SectionDashboard     Section = "dashboard"
	SectionRegistrations Section = "registrations"
	SectionPanchayath    Section = "panchayath"
	SectionCategories    Section = "categories"
	SectionAdmins        Section = "admins"
)

type Section string

type capability struct {
	mutate   bool
	sections map[Section]struct{}
}

// capabilities is the role -> permitted actions table. Built once; an
// unrecognized role falls back to the most restrictive entry (User Admin).
var capabilities = map[Role]capability{
	RoleSuperAdmin: {
		mutate:   true,
		sections: sectionSet(SectionDashboard, SectionRegistrations, SectionPanchayath, SectionCategories, SectionAdmins),
	},
	RoleLocalAdmin: {
		mutate:   true,
		sections: sectionSet(SectionDashboard, SectionRegistrations, SectionPanchayath, SectionCategories),
	},
	RoleUserAdmin: {
		mutate:   false,
		sections: sectionSet(SectionDashboard, SectionRegistrations),
	},
}

func sectionSet(sections ...Section) map[Section]struct{} {
	set := make(map[Section]struct{}, len(sections))
	for _, s := range sections {
		set[s] = struct{}{}
	}
	return set
}

func capabilityFor(role Role) capability {
	if c, ok := capabilities[role]; ok {
		return c
	}
	return capabilities[RoleUserAdmin]
}

// CanMutate reports whether the role may create, update or delete records.
func CanMutate(role Role) bool {
	return capabilityFor(role).mutate
}

// CanAccessSection reports whether the role may open an admin section.
func CanAccessSection(role Role, section Section) bool {
	_, ok := capabilityFor(role).sections[section]
	return ok
}
