package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
)

// In-memory doubles mirroring the behavior of the postgres repositories,
// unique-constraint conflicts included.

type memAccounts struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]domain.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[uuid.UUID]domain.Account)}
}

func (m *memAccounts) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == account.Username {
			return domain.ErrUsernameTaken
		}
		if a.Email == account.Email {
			return domain.ErrEmailTaken
		}
		if account.DocumentNumber != "" && a.DocumentType == account.DocumentType && a.DocumentNumber == account.DocumentNumber {
			return domain.ErrDocumentTaken
		}
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		out := a
		return &out, nil
	}
	return nil, nil
}

func (m *memAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == username {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) GetByDocument(_ context.Context, docType domain.DocumentType, number string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.DocumentType == docType && a.DocumentNumber == number {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) List(_ context.Context, pendingOnly bool) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.accounts {
		if pendingOnly && (a.Verified || a.Admin) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memAccounts) SetVerified(_ context.Context, id uuid.UUID, verified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Verified = verified
	m.accounts[id] = a
	return nil
}

func (m *memAccounts) SetAdmin(_ context.Context, id uuid.UUID, admin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Admin = admin
	m.accounts[id] = a
	return nil
}

func (m *memAccounts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

type memCandidates struct {
	mu         sync.Mutex
	order      []uuid.UUID
	candidates map[uuid.UUID]domain.Candidate
}

func newMemCandidates() *memCandidates {
	return &memCandidates{candidates: make(map[uuid.UUID]domain.Candidate)}
}

func (m *memCandidates) Create(_ context.Context, candidate *domain.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	candidate.Position = int64(len(m.order) + 1)
	m.candidates[candidate.ID] = *candidate
	m.order = append(m.order, candidate.ID)
	return nil
}

func (m *memCandidates) GetByID(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.candidates[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (m *memCandidates) List(_ context.Context) ([]domain.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Candidate, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.candidates[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCandidates) Update(_ context.Context, candidate *domain.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[candidate.ID]; !ok {
		return domain.ErrCandidateNotFound
	}
	m.candidates[candidate.ID] = *candidate
	return nil
}

func (m *memCandidates) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[id]; !ok {
		return domain.ErrCandidateNotFound
	}
	delete(m.candidates, id)
	return nil
}

type memElections struct {
	mu        sync.Mutex
	elections map[uuid.UUID]domain.Election
}

func newMemElections() *memElections {
	return &memElections{elections: make(map[uuid.UUID]domain.Election)}
}

func (m *memElections) Create(_ context.Context, e *domain.Election) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elections[e.ID] = *e
	return nil
}

func (m *memElections) GetByID(_ context.Context, id uuid.UUID) (*domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.elections[id]; ok {
		out := e
		return &out, nil
	}
	return nil, nil
}

func (m *memElections) GetActive(_ context.Context) (*domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.elections {
		if e.Active {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memElections) List(_ context.Context) ([]domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Election, 0, len(m.elections))
	for _, e := range m.elections {
		out = append(out, e)
	}
	return out, nil
}

func (m *memElections) Update(_ context.Context, e *domain.Election) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.elections[e.ID]; !ok {
		return domain.ErrElectionNotFound
	}
	m.elections[e.ID] = *e
	return nil
}

func (m *memElections) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.elections[id]; !ok {
		return domain.ErrElectionNotFound
	}
	delete(m.elections, id)
	return nil
}

func (m *memElections) Activate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.elections[id]; !ok {
		return domain.ErrElectionNotFound
	}
	for k, e := range m.elections {
		e.Active = k == id
		m.elections[k] = e
	}
	return nil
}

func (m *memElections) Deactivate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.elections[id]
	if !ok {
		return domain.ErrElectionNotFound
	}
	e.Active = false
	m.elections[id] = e
	return nil
}

type memVotes struct {
	mu    sync.Mutex
	votes map[uuid.UUID]domain.Vote
}

func newMemVotes() *memVotes {
	return &memVotes{votes: make(map[uuid.UUID]domain.Vote)}
}

func (m *memVotes) Create(_ context.Context, vote *domain.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.AccountID == vote.AccountID {
			return domain.ErrAlreadyVoted
		}
	}
	m.votes[vote.ID] = *vote
	return nil
}

func (m *memVotes) GetByAccount(_ context.Context, accountID uuid.UUID) (*domain.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.AccountID == accountID {
			out := v
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memVotes) GetByCode(_ context.Context, code string) (*domain.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.ConfirmationCode == code {
			out := v
			return &out, nil
		}
	}
	return nil, nil
}

type memArtifacts struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{blobs: make(map[string][]byte)}
}

func (m *memArtifacts) Store(_ context.Context, name string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = data
	return name, nil
}

func (m *memArtifacts) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[ref]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memArtifacts) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, ref)
	return nil
}

type memTally struct {
	accounts   *memAccounts
	candidates *memCandidates
	votes      *memVotes
}

func (m *memTally) CountByCandidate(ctx context.Context) ([]domain.CandidateCount, error) {
	candidates, _ := m.candidates.List(ctx)
	out := make([]domain.CandidateCount, 0, len(candidates))
	for _, c := range candidates {
		var n int64
		for _, v := range m.votes.votes {
			if v.CandidateID == c.ID {
				n++
			}
		}
		out = append(out, domain.CandidateCount{Candidate: c, Votes: n})
	}
	return out, nil
}

func (m *memTally) TotalVotes(context.Context) (int64, error) {
	return int64(len(m.votes.votes)), nil
}

func (m *memTally) TotalVoters(context.Context) (int64, error) {
	var n int64
	for _, a := range m.accounts.accounts {
		if !a.Admin {
			n++
		}
	}
	return n, nil
}

func (m *memTally) PendingVerifications(context.Context) (int64, error) {
	var n int64
	for _, a := range m.accounts.accounts {
		if !a.Admin && !a.Verified {
			n++
		}
	}
	return n, nil
}
