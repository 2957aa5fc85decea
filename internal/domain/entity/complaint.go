package entity

import (
	"time"
)

// Status is the closed complaint lifecycle vocabulary. Wire values match the
// stored data: "Awaiting Review" carries a space.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusAssigned       Status = "Assigned"
	StatusAwaitingReview Status = "Awaiting Review"
	StatusCompleted      Status = "Completed"
	StatusRejected       Status = "Rejected"
)

// Open reports whether a complaint in this status counts against its
// assignee's active workload.
func (s Status) Open() bool {
	return s == StatusAssigned || s == StatusAwaitingReview
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

type Category string

const (
	CategoryElectrical Category = "Electrical"
	CategoryPlumbing   Category = "Plumbing"
	CategoryCarpentry  Category = "Carpentry"
	CategoryIT         Category = "IT"
	CategoryOther      Category = "Other"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryElectrical, CategoryPlumbing, CategoryCarpentry, CategoryIT, CategoryOther:
		return Category(s), true
	}
	return "", false
}

// Attachment is an opaque reference into the upload collaborator. PublicID is
// what the collaborator needs to release the stored object again.
type Attachment struct {
	URL      string `json:"url" firestore:"url"`
	PublicID string `json:"public_id" firestore:"publicId"`
}

type Complaint struct {
	ID             string   `json:"id" firestore:"id"`
	Title          string   `json:"title" firestore:"title"`
	Description    string   `json:"description" firestore:"description"`
	Category       Category `json:"category" firestore:"category"`
	Status         Status   `json:"status" firestore:"status"`
	CreatedBy      string   `json:"created_by" firestore:"createdBy"`
	AssignedTo     string   `json:"assigned_to,omitempty" firestore:"assignedTo,omitempty"`
	StudentContact string   `json:"student_contact,omitempty" firestore:"studentContact,omitempty"`

	Attachment      *Attachment `json:"attachment,omitempty" firestore:"attachment,omitempty"`
	ResolutionProof string      `json:"resolution_proof,omitempty" firestore:"resolutionProof,omitempty"`
	AdminNotes      string      `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty" firestore:"rejectedAt,omitempty"`
}
