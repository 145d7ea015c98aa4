// Package model defines the database models for the corps-panel service.
package model

// UserRole determines which dashboard variant and privileged actions a user gets.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleStaff     UserRole = "staff"
	RoleVolunteer UserRole = "volunteer"
	RoleIntern    UserRole = "intern"
	RoleAttachee  UserRole = "attachee"
)

// UserRoles lists every assignable role.
var UserRoles = []UserRole{RoleAdmin, RoleStaff, RoleVolunteer, RoleIntern, RoleAttachee}

// Valid reports whether the role belongs to the closed role set.
func (r UserRole) Valid() bool {
	for _, role := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// MembershipType is a descriptive classification with no behavioral effect
// beyond display.
type MembershipType string

const (
	MembershipLife             MembershipType = "life-member"
	MembershipOrdinary         MembershipType = "ordinary-member"
	MembershipYouthInSchool    MembershipType = "youth-in-school"
	MembershipYouthOutOfSchool MembershipType = "youth-out-of-school"
)

// MembershipTypes lists every membership classification.
var MembershipTypes = []MembershipType{
	MembershipLife,
	MembershipOrdinary,
	MembershipYouthInSchool,
	MembershipYouthOutOfSchool,
}

// Valid reports whether the membership type belongs to the closed set.
func (m MembershipType) Valid() bool {
	for _, membership := range MembershipTypes {
		if m == membership {
			return true
		}
	}
	return false
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

// UserStatuses lists the states a panel account may hold. Workers additionally
// use on-leave; accounts do not.
var UserStatuses = []string{StatusActive, StatusInactive}

// ValidUserStatus reports whether the status belongs to the account status set.
func ValidUserStatus(status string) bool {
	for _, s := range UserStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// User is a registered person with panel access rights.
//
// Passwords are stored and compared as plain text. That mirrors the system
// this panel fronts; hardening the credential handling is an explicitly open
// product question, not something this layer decides.
type User struct {
	Id                 string         `json:"id" gorm:"primaryKey"`
	FullName           string         `json:"fullName" form:"fullName"`
	WorkNumber         string         `json:"workNumber" form:"workNumber"`
	Email              string         `json:"email" form:"email" gorm:"index"`
	PhoneNumber        string         `json:"phoneNumber" form:"phoneNumber"`
	Role               UserRole       `json:"role" form:"role"`
	MembershipType     MembershipType `json:"membershipType" form:"membershipType"`
	Password           string         `json:"-" form:"password"`
	Status             string         `json:"status" form:"status"`
	MustChangePassword bool           `json:"mustChangePassword"`
	CreatedAt          string         `json:"createdAt"`
	CreatedBy          string         `json:"createdBy,omitempty"`
}

// Worker is a field-personnel record tracked separately from the
// authentication directory. Workers have no login capability; their role is
// free text, not a UserRole.
type Worker struct {
	Id             string   `json:"id" gorm:"primaryKey"`
	Name           string   `json:"name" form:"name"`
	Role           string   `json:"role" form:"role"`
	Department     string   `json:"department" form:"department"`
	Status         string   `json:"status" form:"status"`
	Phone          string   `json:"phone" form:"phone"`
	Email          string   `json:"email" form:"email"`
	JoinDate       string   `json:"joinDate" form:"joinDate"`
	Certifications []string `json:"certifications" form:"certifications" gorm:"serializer:json"`
	Availability   string   `json:"availability" form:"availability"`
}

// Departments is the fixed set a worker may belong to.
var Departments = []string{
	"Emergency Response",
	"Medical Services",
	"Disaster Relief",
	"Community Outreach",
	"Blood Services",
	"Administration",
}

// ValidDepartment reports whether the department belongs to the fixed set.
func ValidDepartment(department string) bool {
	for _, d := range Departments {
		if department == d {
			return true
		}
	}
	return false
}

// Setting is a key/value row for panel configuration.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}
