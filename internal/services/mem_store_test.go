package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/escrow"
	"github.com/freelance-market/backend/internal/events"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/repositories"
)

// In-memory stores mirroring the SQL repositories' guarded-mutation
// semantics: failed preconditions leave every record untouched, the fill
// and release paths are compare-and-swap under one lock.

type memState struct {
	mu        sync.Mutex
	custodian *escrow.Custodian
	users     map[uuid.UUID]*models.User
	jobs      map[uuid.UUID]*models.JobPost
	apps      map[uuid.UUID]*models.Application
	escrows   map[uuid.UUID]*models.EscrowAccount // by job id
}

func newMemState(c *escrow.Custodian) *memState {
	return &memState{
		custodian: c,
		users:     make(map[uuid.UUID]*models.User),
		jobs:      make(map[uuid.UUID]*models.JobPost),
		apps:      make(map[uuid.UUID]*models.Application),
		escrows:   make(map[uuid.UUID]*models.EscrowAccount),
	}
}

type memUsers struct{ st *memState }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, existing := range m.st.users {
		if existing.Address == u.Address {
			return fmt.Errorf("%w: user %s", apperr.ErrAlreadyExists, u.Address)
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	cp := *u
	m.st.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	u, ok := m.st.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByAddress(_ context.Context, address string) (*models.User, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, u := range m.st.users {
		if u.Address == address {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) Credit(_ context.Context, id uuid.UUID, amount int64) (int64, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	u, ok := m.st.users[id]
	if !ok {
		return 0, apperr.ErrNotFound
	}
	u.Balance += amount
	return u.Balance, nil
}

type memJobs struct{ st *memState }

func (m *memJobs) CreateFunded(_ context.Context, j *models.JobPost) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	client, ok := m.st.users[j.ClientID]
	if !ok {
		return apperr.ErrNotFound
	}
	for _, existing := range m.st.jobs {
		if existing.ClientID == j.ClientID && existing.Title == j.Title {
			return fmt.Errorf("%w: job %q for this client", apperr.ErrAlreadyExists, j.Title)
		}
	}
	if client.Balance < j.Amount {
		return fmt.Errorf("%w: need %d", apperr.ErrInsufficientFunds, j.Amount)
	}

	client.Balance -= j.Amount
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	cp := *j
	m.st.jobs[j.ID] = &cp
	m.st.escrows[j.ID] = &models.EscrowAccount{
		ID:        uuid.New(),
		JobID:     j.ID,
		Vault:     j.EscrowVault,
		Nonce:     j.EscrowNonce,
		Balance:   j.Amount,
		Status:    models.EscrowStatusHolding,
		CreatedAt: j.CreatedAt,
	}
	return nil
}

func (m *memJobs) GetByID(_ context.Context, id uuid.UUID) (*models.JobPost, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	j, ok := m.st.jobs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobs) List(_ context.Context, f repositories.JobFilter) ([]models.JobPost, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	var out []models.JobPost
	for _, j := range m.st.jobs {
		if f.ClientID != nil && j.ClientID != *f.ClientID {
			continue
		}
		if f.Status != nil && j.Status != *f.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (m *memJobs) Fill(_ context.Context, jobID, applicationID uuid.UUID) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	j, ok := m.st.jobs[jobID]
	if !ok {
		return apperr.ErrNotFound
	}
	if j.Status != models.JobStatusOpen {
		return apperr.ErrJobAlreadyFilled
	}
	a, ok := m.st.apps[applicationID]
	if !ok || a.JobID != jobID {
		return apperr.ErrNotFound
	}

	j.Status = models.JobStatusFilled
	j.UpdatedAt = time.Now()
	a.Approved = true
	a.UpdatedAt = j.UpdatedAt
	return nil
}

func (m *memJobs) ReleaseEscrow(_ context.Context, v escrow.ReleaseVoucher, applicationID, freelancerID uuid.UUID, review string) (int64, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	if !m.st.custodian.Verify(v) {
		return 0, apperr.ErrUnauthorized
	}
	j, ok := m.st.jobs[v.JobID]
	if !ok {
		return 0, apperr.ErrNotFound
	}
	if j.Status != models.JobStatusWorkSubmitted {
		return 0, apperr.ErrWorkNotCompleted
	}
	e := m.st.escrows[v.JobID]
	if e == nil || e.Status != models.EscrowStatusHolding || e.Vault != v.Vault || e.Balance != j.Amount {
		return 0, fmt.Errorf("%w: vault for job %s", apperr.ErrEscrowMismatch, v.JobID)
	}
	freelancer, ok := m.st.users[freelancerID]
	if !ok {
		return 0, apperr.ErrNotFound
	}
	a, ok := m.st.apps[applicationID]
	if !ok || a.JobID != v.JobID {
		return 0, apperr.ErrNotFound
	}

	now := time.Now()
	j.Status = models.JobStatusPaid
	j.UpdatedAt = now
	amount := e.Balance
	e.Balance = 0
	e.Status = models.EscrowStatusReleased
	e.ReleasedAt = &now
	e.ReleasedTo = &freelancerID
	freelancer.Balance += amount
	a.ClientReview = review
	a.UpdatedAt = now
	return amount, nil
}

type memApps struct{ st *memState }

func (m *memApps) Create(_ context.Context, a *models.Application) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	for _, existing := range m.st.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return fmt.Errorf("%w: application to job %s", apperr.ErrAlreadyExists, a.JobID)
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.st.apps[a.ID] = &cp
	return nil
}

func (m *memApps) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	a, ok := m.st.apps[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memApps) ListByJob(_ context.Context, jobID uuid.UUID) ([]models.Application, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	var out []models.Application
	for _, a := range m.st.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memApps) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]models.Application, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	var out []models.Application
	for _, a := range m.st.apps {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memApps) SubmitWork(_ context.Context, applicationID uuid.UUID, submissionLink, narration string) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	a, ok := m.st.apps[applicationID]
	if !ok {
		return apperr.ErrNotFound
	}
	j := m.st.jobs[a.JobID]
	if !a.Approved || j == nil || (j.Status != models.JobStatusFilled && j.Status != models.JobStatusWorkSubmitted) {
		return apperr.ErrApplicationNotApproved
	}

	now := time.Now()
	a.SubmissionLink = submissionLink
	a.Narration = narration
	a.Completed = true
	a.UpdatedAt = now
	if j.Status == models.JobStatusFilled {
		j.Status = models.JobStatusWorkSubmitted
		j.UpdatedAt = now
	}
	return nil
}

type memEscrows struct{ st *memState }

func (m *memEscrows) GetByJobID(_ context.Context, jobID uuid.UUID) (*models.EscrowAccount, error) {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()
	e, ok := m.st.escrows[jobID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *memAudit) Log(_ context.Context, entry models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

type memPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *memPublisher) Publish(_ context.Context, _ string, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}
