package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballothub/ballot/internal/core/domain"
)

func TestResults(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Admin: true}

	f := newVoteFixture(t, true)
	f.openElection(t)
	tally := NewTallyService(&memTally{accounts: f.accounts, candidates: f.candidates, votes: f.votes})

	a := f.addCandidate(t, "A")
	b := f.addCandidate(t, "B")
	c := f.addCandidate(t, "C")

	castN := func(candidate *domain.Candidate, n int) {
		for i := 0; i < n; i++ {
			voter := f.addAccount(t, true)
			_, err := f.svc.Cast(ctx, voter, candidate.ID)
			require.NoError(t, err)
		}
	}
	castN(a, 3)
	castN(b, 5)
	castN(c, 5)

	report, err := tally.Results(ctx, admin)
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Equal(t, int64(13), report.TotalVotes)

	// B and C tie on 5; insertion order puts B first, A trails with 3.
	assert.Equal(t, "B", report.Results[0].Candidate.Name)
	assert.Equal(t, int64(5), report.Results[0].Votes)
	assert.Equal(t, "C", report.Results[1].Candidate.Name)
	assert.Equal(t, int64(5), report.Results[1].Votes)
	assert.Equal(t, "A", report.Results[2].Candidate.Name)
	assert.Equal(t, int64(3), report.Results[2].Votes)
}

func TestResultsIncludeZeroVoteCandidates(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Admin: true}

	f := newVoteFixture(t, true)
	tally := NewTallyService(&memTally{accounts: f.accounts, candidates: f.candidates, votes: f.votes})
	f.addCandidate(t, "Lonely")

	report, err := tally.Results(ctx, admin)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, int64(0), report.Results[0].Votes)
	assert.Equal(t, int64(0), report.TotalVotes)
}

func TestResultsRequireAdmin(t *testing.T) {
	f := newVoteFixture(t, true)
	tally := NewTallyService(&memTally{accounts: f.accounts, candidates: f.candidates, votes: f.votes})

	_, err := tally.Results(context.Background(), domain.Principal{Admin: false})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Admin: true}

	f := newVoteFixture(t, true)
	f.openElection(t)
	tally := NewTallyService(&memTally{accounts: f.accounts, candidates: f.candidates, votes: f.votes})

	candidate := f.addCandidate(t, "Ada")
	verified := f.addAccount(t, true)
	f.addAccount(t, false)

	_, err := f.svc.Cast(ctx, verified, candidate.ID)
	require.NoError(t, err)

	// An admin account should not count as a voter.
	require.NoError(t, f.accounts.Create(ctx, &domain.Account{
		ID: uuid.New(), Username: "root", Email: "root@example.com",
		Admin: true, Verified: true, CreatedAt: time.Now(),
	}))

	stats, err := tally.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVoters)
	assert.Equal(t, int64(1), stats.TotalVotes)
	assert.Equal(t, int64(1), stats.PendingVerifications)
}
