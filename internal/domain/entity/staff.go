package entity

import (
	"time"
)

type Department string

const (
	DepartmentElectrical     Department = "Electrical"
	DepartmentPlumbing       Department = "Plumbing"
	DepartmentCarpentry      Department = "Carpentry"
	DepartmentIT             Department = "IT"
	DepartmentAdministration Department = "Administration"
)

func ParseDepartment(s string) (Department, bool) {
	switch Department(s) {
	case DepartmentElectrical, DepartmentPlumbing, DepartmentCarpentry, DepartmentIT, DepartmentAdministration:
		return Department(s), true
	}
	return "", false
}

// StaffAccount is a worker eligible for complaint assignment.
// ActiveComplaintCount tracks the live Assigned/"Awaiting Review"
// attributions and is mutated only inside the same store transaction as the
// complaint status write it accounts for.
type StaffAccount struct {
	ID                   string     `json:"id" firestore:"id"`
	Name                 string     `json:"name" firestore:"name"`
	Email                string     `json:"email" firestore:"email"`
	Phone                string     `json:"phone" firestore:"phone"`
	Department           Department `json:"department" firestore:"department"`
	IsActive             bool       `json:"is_active" firestore:"isActive"`
	ActiveComplaintCount int        `json:"active_complaint_count" firestore:"activeComplaintCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
