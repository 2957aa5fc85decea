package entity

import (
	"time"
)

// User is the account record behind a principal. Staff members additionally
// carry a StaffAccount document under the same id.
type User struct {
	ID     string `json:"id" firestore:"id"`
	Name   string `json:"name" firestore:"name"`
	Email  string `json:"email" firestore:"email"`
	Role   Role   `json:"role" firestore:"role"`
	Phone  string `json:"phone,omitempty" firestore:"phone,omitempty"`
	RollNo string `json:"roll_no,omitempty" firestore:"rollNo,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
