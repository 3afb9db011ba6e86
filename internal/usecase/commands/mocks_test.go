//go:build unit

package commands_test

import (
	"context"
	"time"

	"interpreter-booking/internal/domain/assignment"
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/matching"
	"interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockJobRepo struct {
	mock.Mock
}

func (m *mockJobRepo) Create(ctx context.Context, tx infra.DBTX, j *job.Job) error {
	return m.Called(ctx, tx, j).Error(0)
}

func (m *mockJobRepo) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*job.Job, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *mockJobRepo) Update(ctx context.Context, tx infra.DBTX, j *job.Job) error {
	return m.Called(ctx, tx, j).Error(0)
}

func (m *mockJobRepo) AssignIfPending(ctx context.Context, tx infra.DBTX, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *mockJobRepo) FindExpiredPending(ctx context.Context, db infra.DBTX, now time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, db, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

type mockAssignmentRepo struct {
	mock.Mock
}

func (m *mockAssignmentRepo) Create(ctx context.Context, tx infra.DBTX, a *assignment.Assignment) error {
	return m.Called(ctx, tx, a).Error(0)
}

func (m *mockAssignmentRepo) Update(ctx context.Context, tx infra.DBTX, a *assignment.Assignment) error {
	return m.Called(ctx, tx, a).Error(0)
}

func (m *mockAssignmentRepo) ActiveByJobID(ctx context.Context, db infra.DBTX, jobID uuid.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, db, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *mockAssignmentRepo) HasActiveAt(ctx context.Context, db infra.DBTX, translatorID uuid.UUID, due time.Time) (bool, error) {
	args := m.Called(ctx, db, translatorID, due)
	return args.Bool(0), args.Error(1)
}

func (m *mockAssignmentRepo) CancelActiveByJobID(ctx context.Context, tx infra.DBTX, jobID uuid.UUID, now time.Time) error {
	return m.Called(ctx, tx, jobID, now).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockTranslatorPool struct {
	mock.Mock
}

func (m *mockTranslatorPool) PotentialTranslators(ctx context.Context, spec matching.JobSpec) ([]notify.Recipient, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notify.Recipient), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BroadcastJobCreated(ctx context.Context, j notify.JobInfo, translators []notify.Recipient) int {
	return m.Called(ctx, j, translators).Int(0)
}

func (m *mockNotifier) JobAccepted(ctx context.Context, j notify.JobInfo, customer notify.Recipient) {
	m.Called(ctx, j, customer)
}

func (m *mockNotifier) TranslatorChanged(ctx context.Context, j notify.JobInfo, customer notify.Recipient, previous *notify.Recipient, replacement notify.Recipient) {
	m.Called(ctx, j, customer, previous, replacement)
}

func (m *mockNotifier) DateChanged(ctx context.Context, j notify.JobInfo, oldDue time.Time, customer, translator notify.Recipient) {
	m.Called(ctx, j, oldDue, customer, translator)
}

func (m *mockNotifier) LanguageChanged(ctx context.Context, j notify.JobInfo, oldLanguage string, customer, translator notify.Recipient) {
	m.Called(ctx, j, oldLanguage, customer, translator)
}

func (m *mockNotifier) SessionEnded(ctx context.Context, j notify.JobInfo, sessionTime string, customer, translator notify.Recipient) {
	m.Called(ctx, j, sessionTime, customer, translator)
}

func (m *mockNotifier) BookingReceived(ctx context.Context, j notify.JobInfo, customer notify.Recipient) {
	m.Called(ctx, j, customer)
}

func (m *mockNotifier) AssignmentCancelled(ctx context.Context, j notify.JobInfo, translator notify.Recipient) {
	m.Called(ctx, j, translator)
}

func (m *mockNotifier) CancelledByCustomer(ctx context.Context, j notify.JobInfo, translator notify.Recipient) {
	m.Called(ctx, j, translator)
}

func (m *mockNotifier) CancelledByTranslator(ctx context.Context, j notify.JobInfo, customer notify.Recipient) {
	m.Called(ctx, j, customer)
}

func (m *mockNotifier) WithdrawnNotice(ctx context.Context, j notify.JobInfo, customer notify.Recipient) {
	m.Called(ctx, j, customer)
}

func (m *mockNotifier) JobExpired(ctx context.Context, j notify.JobInfo, customer notify.Recipient) {
	m.Called(ctx, j, customer)
}

func (m *mockNotifier) SessionReminder(ctx context.Context, j notify.JobInfo, r notify.Recipient) {
	m.Called(ctx, j, r)
}

// stubTxRunner hands the callback a nil handle: the repo mocks never touch it.
type stubTxRunner struct{}

func (stubTxRunner) RunInTx(_ context.Context, fn func(tx infra.DBTX) error) error {
	return fn(nil)
}

func (stubTxRunner) DB() infra.DBTX {
	return nil
}
