package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Enumerations
const (
	RoleSuperAdmin Role = "Super Admin"
	RoleLocalAdmin Role = "Local Admin"
	RoleUserAdmin  Role = "User Admin"

	AdminActive   AdminStatus = "active"
	AdminInactive AdminStatus = "inactive"

	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

type Role string
type AdminStatus string
type RegistrationStatus string

type AdminUser struct {
	ID          int64
	Username    string
	Password    string
	Role        Role
	Permissions string
	Status      AdminStatus
	CreatedAt   time.Time
}

type Panchayath struct {
	ID        int64
	Name      string
	District  string
	CreatedAt time.Time
}

type Category struct {
	ID          string
	Name        string
	Description string
	ActualFee   int64
	OfferFee    int64
	Image       string
	Features    []string
	IsActive    bool
	CreatedAt   time.Time
}

type Registration struct {
	ID           int64
	CustomerID   string
	Name         string
	Address      string
	Mobile       string
	Panchayath   string
	Ward         string
	Category     string
	AgentDetails *string
	Status       RegistrationStatus
	FeeAmount    int64
	CreatedAt    time.Time
}

// CustomerID derives the public identifier handed to a registrant:
// "ESEP" + mobile + first letter of the name upper-cased. Name is a
// required field, so callers validate non-empty before deriving.
func CustomerID(mobile, name string) string {
	first, _ := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return "ESEP" + mobile
	}
	return "ESEP" + mobile + string(unicode.ToUpper(first))
}

// Slug builds a category id from its name, e.g. "Job Card" -> "job-card".
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}

// CanTransition reports whether a registration status change is allowed.
// Only pending registrations move, to approved or rejected; both of those
// are terminal.
func CanTransition(from, to RegistrationStatus) bool {
	if from != RegistrationPending {
		return false
	}
	return to == RegistrationApproved || to == RegistrationRejected
}
