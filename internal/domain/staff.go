package domain

import "time"

type StaffRole string

const (
	StaffRoleClerk   StaffRole = "CLERK"
	StaffRoleManager StaffRole = "MANAGER"
)

// StaffUser is a shop employee allowed to drive the rental workflow
// through the API.
type StaffUser struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
}
