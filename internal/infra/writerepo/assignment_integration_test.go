//go:build integration

package writerepo_test

import (
	"context"
	"testing"
	"time"

	"interpreter-booking/internal/domain/assignment"
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/infra/writerepo"
	"interpreter-booking/tests/common/builder"
	"interpreter-booking/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AssignmentRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	pg   *dbtest.Postgres
	repo *writerepo.AssignmentRepository
	jobs *writerepo.JobRepository
}

func TestAssignmentRepositorySuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositorySuite))
}

func (s *AssignmentRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	pg, err := dbtest.StartPostgres(s.ctx)
	s.Require().NoError(err)
	s.pg = pg
	s.repo = writerepo.NewAssignmentRepository(discardLogger())
	s.jobs = writerepo.NewJobRepository(discardLogger())
}

func (s *AssignmentRepositorySuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx))
}

func (s *AssignmentRepositorySuite) TearDownSuite() {
	s.pg.Close(s.ctx)
}

func (s *AssignmentRepositorySuite) seedTranslator() uuid.UUID {
	translator := builder.NewUserBuilder().AsTranslator()
	s.Require().NoError(s.pg.SeedUser(s.ctx, translator.BuildDomain()))
	return translator.ID
}

func (s *AssignmentRepositorySuite) seedJob(mutators ...func(*builder.JobBuilder)) *job.Job {
	customer := builder.NewUserBuilder()
	s.Require().NoError(s.pg.SeedUser(s.ctx, customer.BuildDomain()))

	b := builder.NewJobBuilder().WithCustomerID(customer.ID)
	for _, mutate := range mutators {
		b.With(mutate)
	}
	j := b.BuildDomain()
	s.Require().NoError(s.jobs.Create(s.ctx, s.pg.Pool, j))
	return j
}

func (s *AssignmentRepositorySuite) TestCreateAndActiveByJobID() {
	j := s.seedJob()
	translatorID := s.seedTranslator()
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	a := assignment.NewAssignment(j.ID(), translatorID, now)
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, a))

	got, err := s.repo.ActiveByJobID(s.ctx, s.pg.Pool, j.ID())
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(a.ID(), got.ID())
	s.Equal(j.ID(), got.JobID())
	s.Equal(translatorID, got.TranslatorID())
	s.WithinDuration(now, got.CreatedAt(), 0)
	s.True(got.IsActive())
}

func (s *AssignmentRepositorySuite) TestActiveByJobIDNoneIsNil() {
	j := s.seedJob()

	got, err := s.repo.ActiveByJobID(s.ctx, s.pg.Pool, j.ID())

	s.Require().NoError(err)
	s.Nil(got)
}

func (s *AssignmentRepositorySuite) TestSecondActiveAssignmentIsRejected() {
	j := s.seedJob()
	first := s.seedTranslator()
	second := s.seedTranslator()
	now := time.Now().UTC()

	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, assignment.NewAssignment(j.ID(), first, now)))
	err := s.repo.Create(s.ctx, s.pg.Pool, assignment.NewAssignment(j.ID(), second, now))

	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *AssignmentRepositorySuite) TestCancelledRowMakesRoomForAReplacement() {
	j := s.seedJob()
	first := s.seedTranslator()
	second := s.seedTranslator()
	now := time.Now().UTC()

	a := assignment.NewAssignment(j.ID(), first, now)
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, a))
	s.Require().NoError(a.Cancel(now.Add(time.Hour)))
	s.Require().NoError(s.repo.Update(s.ctx, s.pg.Pool, a))

	replacement := assignment.NewAssignment(j.ID(), second, now.Add(time.Hour))
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, replacement))

	got, err := s.repo.ActiveByJobID(s.ctx, s.pg.Pool, j.ID())
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(second, got.TranslatorID())
}

func (s *AssignmentRepositorySuite) TestUpdateMissing() {
	a := assignment.NewAssignment(uuid.New(), uuid.New(), time.Now().UTC())

	err := s.repo.Update(s.ctx, s.pg.Pool, a)

	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *AssignmentRepositorySuite) TestUpdatePersistsCompletion() {
	j := s.seedJob()
	translatorID := s.seedTranslator()
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	a := assignment.NewAssignment(j.ID(), translatorID, now)
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, a))
	s.Require().NoError(a.Complete(now.Add(time.Hour), translatorID))
	s.Require().NoError(s.repo.Update(s.ctx, s.pg.Pool, a))

	active, err := s.repo.ActiveByJobID(s.ctx, s.pg.Pool, j.ID())
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *AssignmentRepositorySuite) TestHasActiveAtMatchesExactDue() {
	due := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	j := s.seedJob(func(b *builder.JobBuilder) { b.WithDue(due) })
	translatorID := s.seedTranslator()

	a := assignment.NewAssignment(j.ID(), translatorID, due.Add(-24*time.Hour))
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, a))

	busy, err := s.repo.HasActiveAt(s.ctx, s.pg.Pool, translatorID, due)
	s.Require().NoError(err)
	s.True(busy)

	// overlap is not considered, only the exact timestamp collides
	busy, err = s.repo.HasActiveAt(s.ctx, s.pg.Pool, translatorID, due.Add(30*time.Minute))
	s.Require().NoError(err)
	s.False(busy)

	busy, err = s.repo.HasActiveAt(s.ctx, s.pg.Pool, uuid.New(), due)
	s.Require().NoError(err)
	s.False(busy)
}

func (s *AssignmentRepositorySuite) TestHasActiveAtIgnoresCancelledRows() {
	due := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	j := s.seedJob(func(b *builder.JobBuilder) { b.WithDue(due) })
	translatorID := s.seedTranslator()

	a := assignment.NewAssignment(j.ID(), translatorID, due.Add(-24*time.Hour))
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, a))
	s.Require().NoError(a.Cancel(due.Add(-23*time.Hour)))
	s.Require().NoError(s.repo.Update(s.ctx, s.pg.Pool, a))

	busy, err := s.repo.HasActiveAt(s.ctx, s.pg.Pool, translatorID, due)
	s.Require().NoError(err)
	s.False(busy)
}

func (s *AssignmentRepositorySuite) TestCancelActiveByJobID() {
	j := s.seedJob()
	translatorID := s.seedTranslator()
	now := time.Now().UTC().Truncate(time.Microsecond)

	a := assignment.NewAssignment(j.ID(), translatorID, now)
	s.Require().NoError(s.repo.Create(s.ctx, s.pg.Pool, a))

	s.Require().NoError(s.repo.CancelActiveByJobID(s.ctx, s.pg.Pool, j.ID(), now.Add(time.Minute)))

	active, err := s.repo.ActiveByJobID(s.ctx, s.pg.Pool, j.ID())
	s.Require().NoError(err)
	s.Nil(active)

	// cancelling again is a no-op, not an error
	s.Require().NoError(s.repo.CancelActiveByJobID(s.ctx, s.pg.Pool, j.ID(), now.Add(2*time.Minute)))
}
