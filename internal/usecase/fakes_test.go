package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	apperrors "github.com/campuscare/campuscare-api/pkg/errors"
)

// memStore backs the in-memory repositories. A single mutex covers the
// complaint and staff tables so the lifecycle mutations stay atomic, the
// same guarantee the Firestore transactions give in production.
type memStore struct {
	mu         sync.Mutex
	complaints map[string]*entity.Complaint
	staff      map[string]*entity.StaffAccount
	users      map[string]*entity.User

	failCreateComplaint error
}

func newMemStore() *memStore {
	return &memStore{
		complaints: make(map[string]*entity.Complaint),
		staff:      make(map[string]*entity.StaffAccount),
		users:      make(map[string]*entity.User),
	}
}

func (s *memStore) addStaff(id, name string, department entity.Department, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.staff[id] = &entity.StaffAccount{
		ID:         id,
		Name:       name,
		Email:      id + "@campus.test",
		Department: department,
		IsActive:   active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *memStore) addComplaint(c *entity.Complaint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints[c.ID] = cloneComplaint(c)
}

func (s *memStore) staffCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staff[id].ActiveComplaintCount
}

func (s *memStore) complaintStatus(id string) entity.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complaints[id].Status
}

func cloneComplaint(c *entity.Complaint) *entity.Complaint {
	cp := *c
	if c.Attachment != nil {
		a := *c.Attachment
		cp.Attachment = &a
	}
	return &cp
}

func cloneStaff(s *entity.StaffAccount) *entity.StaffAccount {
	cp := *s
	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

type memComplaintRepo struct {
	store *memStore
}

func (r *memComplaintRepo) Create(ctx context.Context, complaint *entity.Complaint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failCreateComplaint != nil {
		return r.store.failCreateComplaint
	}
	r.store.complaints[complaint.ID] = cloneComplaint(complaint)
	return nil
}

func (r *memComplaintRepo) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.complaints[id]
	if !ok {
		return nil, apperrors.NotFound("Complaint", nil)
	}
	return cloneComplaint(c), nil
}

func (r *memComplaintRepo) ListByCreator(ctx context.Context, creatorID string, statuses []entity.Status) ([]*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wanted := make(map[entity.Status]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var out []*entity.Complaint
	for _, c := range r.store.complaints {
		if c.CreatedBy == creatorID && wanted[c.Status] {
			out = append(out, cloneComplaint(c))
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *memComplaintRepo) ListByAssignee(ctx context.Context, assigneeID string, st entity.Status) ([]*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Complaint
	for _, c := range r.store.complaints {
		if c.AssignedTo == assigneeID && c.Status == st {
			out = append(out, cloneComplaint(c))
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *memComplaintRepo) ListByStatus(ctx context.Context, st entity.Status) ([]*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Complaint
	for _, c := range r.store.complaints {
		if c.Status == st {
			out = append(out, cloneComplaint(c))
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func sortByCreatedDesc(complaints []*entity.Complaint) {
	sort.Slice(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}

func (r *memComplaintRepo) Assign(ctx context.Context, complaintID, staffID string, expectedStatus entity.Status, expectedAssignee string) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	complaint, ok := r.store.complaints[complaintID]
	if !ok {
		return nil, apperrors.NotFound("Complaint", nil)
	}

	staff, ok := r.store.staff[staffID]
	if !ok {
		return nil, apperrors.NotFound("Staff member", nil)
	}

	if !staff.IsActive {
		return nil, apperrors.PreconditionFailed("Cannot assign to inactive staff", nil)
	}

	if complaint.Status != entity.StatusPending && complaint.Status != entity.StatusAssigned {
		return nil, apperrors.PreconditionFailed("Complaint cannot be assigned in its current status", nil)
	}

	if complaint.Status != expectedStatus || complaint.AssignedTo != expectedAssignee {
		return nil, apperrors.PreconditionFailed("Complaint was updated concurrently, please retry", nil)
	}

	if complaint.AssignedTo == staffID {
		return cloneComplaint(complaint), nil
	}

	now := time.Now()

	if complaint.AssignedTo != "" {
		previous := r.store.staff[complaint.AssignedTo]
		previous.ActiveComplaintCount--
		previous.UpdatedAt = now
	}

	staff.ActiveComplaintCount++
	staff.UpdatedAt = now

	complaint.Status = entity.StatusAssigned
	complaint.AssignedTo = staffID
	complaint.UpdatedAt = now

	return cloneComplaint(complaint), nil
}

func (r *memComplaintRepo) SubmitProof(ctx context.Context, complaintID, staffID, proofURL string) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	complaint, ok := r.store.complaints[complaintID]
	if !ok {
		return nil, apperrors.NotFound("Complaint", nil)
	}

	if complaint.AssignedTo != staffID {
		return nil, apperrors.Forbidden("Only the assigned staff member can submit resolution proof", nil)
	}

	if complaint.Status != entity.StatusAssigned {
		return nil, apperrors.PreconditionFailed("Complaint is not awaiting resolution", nil)
	}

	now := time.Now()
	complaint.Status = entity.StatusAwaitingReview
	complaint.ResolutionProof = proofURL
	complaint.ResolvedAt = &now
	complaint.UpdatedAt = now

	return cloneComplaint(complaint), nil
}

func (r *memComplaintRepo) Approve(ctx context.Context, complaintID, notes string) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	complaint, ok := r.store.complaints[complaintID]
	if !ok {
		return nil, apperrors.NotFound("Complaint", nil)
	}

	if complaint.Status != entity.StatusAwaitingReview {
		return nil, apperrors.PreconditionFailed("Complaint is not awaiting review", nil)
	}

	now := time.Now()

	staff := r.store.staff[complaint.AssignedTo]
	staff.ActiveComplaintCount--
	staff.UpdatedAt = now

	complaint.Status = entity.StatusCompleted
	complaint.AdminNotes = notes
	complaint.CompletedAt = &now
	complaint.UpdatedAt = now

	return cloneComplaint(complaint), nil
}

func (r *memComplaintRepo) Reject(ctx context.Context, complaintID string) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	complaint, ok := r.store.complaints[complaintID]
	if !ok {
		return nil, apperrors.NotFound("Complaint", nil)
	}

	if complaint.Status != entity.StatusPending {
		return nil, apperrors.PreconditionFailed("Only pending complaints can be rejected", nil)
	}

	now := time.Now()
	complaint.Status = entity.StatusRejected
	complaint.RejectedAt = &now
	complaint.UpdatedAt = now

	return cloneComplaint(complaint), nil
}

func (r *memComplaintRepo) Retract(ctx context.Context, complaintID, studentID string) (*entity.Complaint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	complaint, ok := r.store.complaints[complaintID]
	if !ok {
		return nil, apperrors.NotFound("Complaint", nil)
	}

	if complaint.CreatedBy != studentID {
		return nil, apperrors.Forbidden("Only the complaint's creator can retract it", nil)
	}

	if complaint.Status != entity.StatusPending {
		return nil, apperrors.PreconditionFailed("Only pending complaints can be retracted", nil)
	}

	delete(r.store.complaints, complaintID)
	return cloneComplaint(complaint), nil
}

type memStaffRepo struct {
	store *memStore
}

func (r *memStaffRepo) Create(ctx context.Context, staff *entity.StaffAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.staff[staff.ID] = cloneStaff(staff)
	return nil
}

func (r *memStaffRepo) GetByID(ctx context.Context, id string) (*entity.StaffAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.staff[id]
	if !ok {
		return nil, apperrors.NotFound("Staff member", nil)
	}
	return cloneStaff(s), nil
}

func (r *memStaffRepo) GetByEmail(ctx context.Context, email string) (*entity.StaffAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.staff {
		if s.Email == email {
			return cloneStaff(s), nil
		}
	}
	return nil, apperrors.NotFound("Staff member", nil)
}

func (r *memStaffRepo) Update(ctx context.Context, staff *entity.StaffAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.staff[staff.ID]; !ok {
		return apperrors.NotFound("Staff member", nil)
	}
	r.store.staff[staff.ID] = cloneStaff(staff)
	return nil
}

func (r *memStaffRepo) List(ctx context.Context, department entity.Department) ([]*entity.StaffAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.StaffAccount
	for _, s := range r.store.staff {
		if department == "" || s.Department == department {
			out = append(out, cloneStaff(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memStaffRepo) Departments(ctx context.Context) ([]entity.Department, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[entity.Department]bool)
	var out []entity.Department
	for _, s := range r.store.staff {
		if !seen[s.Department] {
			seen[s.Department] = true
			out = append(out, s.Department)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *memStaffRepo) SetActive(ctx context.Context, id string, active bool) (*entity.StaffAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.staff[id]
	if !ok {
		return nil, apperrors.NotFound("Staff member", nil)
	}

	if !active && s.ActiveComplaintCount > 0 {
		return nil, apperrors.PreconditionFailed("Cannot deactivate staff with active complaints", nil)
	}

	s.IsActive = active
	s.UpdatedAt = time.Now()
	return cloneStaff(s), nil
}

type memUserRepo struct {
	store *memStore

	failCreate error
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.NotFound("User", nil)
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return apperrors.NotFound("User", nil)
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// fakeUploader records uploads and deletions and can be told to fail.
type fakeUploader struct {
	mu      sync.Mutex
	next    int
	stored  map[string]bool
	deleted []string

	failUpload error
	failDelete error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{stored: make(map[string]bool)}
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, contentType, folder string) (*entity.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload != nil {
		return nil, f.failUpload
	}
	f.next++
	publicID := fmt.Sprintf("%s/object-%d", folder, f.next)
	f.stored[publicID] = true
	return &entity.Attachment{
		URL:      "https://cdn.test/" + publicID,
		PublicID: publicID,
	}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete != nil {
		return f.failDelete
	}
	if !f.stored[publicID] {
		return errors.New("object not stored: " + publicID)
	}
	delete(f.stored, publicID)
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeUploader) Close() error { return nil }

func (f *fakeUploader) storedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

type fakeCredential struct {
	uid      string
	password string
}

// fakeAuth implements FirebaseAuthClient against an in-memory credential
// table. Tokens are "token:<uid>".
type fakeAuth struct {
	mu      sync.Mutex
	next    int
	byEmail map[string]fakeCredential
	deleted []string

	failCreate error
	failSignIn error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{byEmail: make(map[string]fakeCredential)}
}

func (f *fakeAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return "", f.failCreate
	}
	f.next++
	uid := fmt.Sprintf("uid-%d", f.next)
	f.byEmail[email] = fakeCredential{uid: uid, password: password}
	return uid, nil
}

func (f *fakeAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	const prefix = "token:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", errors.New("malformed token")
	}
	return token[len(prefix):], nil
}

func (f *fakeAuth) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "token:" + uid, nil
}

func (f *fakeAuth) SignInWithEmailPassword(email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSignIn != nil {
		return "", f.failSignIn
	}
	cred, ok := f.byEmail[email]
	if !ok || cred.password != password {
		return "", errors.New("invalid credentials")
	}
	return "token:" + cred.uid, nil
}

func (f *fakeAuth) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, cred := range f.byEmail {
		if cred.uid == uid {
			cred.password = newPassword
			f.byEmail[email] = cred
			return nil
		}
	}
	return errors.New("unknown uid: " + uid)
}

func (f *fakeAuth) DeleteUser(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, uid)
	for email, cred := range f.byEmail {
		if cred.uid == uid {
			delete(f.byEmail, email)
			break
		}
	}
	return nil
}
