//go:build unit

package job_test

import (
	"testing"
	"time"

	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/pkg/clock"
	"interpreter-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const immediateLead = 5 * time.Minute

func newCustomer() job.CustomerSpec {
	return job.CustomerSpec{ID: uuid.New(), ConsumerType: "paid", Town: "Stockholm"}
}

func TestNewJob(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("pre-booked job", func(t *testing.T) {
		due := now.Add(48 * time.Hour)
		j, err := job.NewJob(clk, immediateLead, newCustomer(), job.NewJobParams{
			FromLanguage: "arabiska",
			Due:          due,
			Duration:     60,
			Phone:        true,
		})

		require.NoError(t, err)
		assert.Equal(t, job.StatusPending, j.Status())
		assert.Equal(t, job.TypePaid, j.Type())
		assert.Equal(t, due, j.Due())
		assert.Equal(t, job.ModePhone, j.Mode())
		assert.Equal(t, "Stockholm", j.Town())
		assert.Equal(t, clock.WillExpireAt(due, now), j.WillExpireAt())
	})

	t.Run("immediate job overrides due and forces phone mode", func(t *testing.T) {
		j, err := job.NewJob(clk, immediateLead, newCustomer(), job.NewJobParams{
			FromLanguage: "somaliska",
			Duration:     30,
			Immediate:    true,
			Physical:     true,
		})

		require.NoError(t, err)
		assert.True(t, j.Immediate())
		assert.Equal(t, now.Add(immediateLead), j.Due())
		assert.Equal(t, job.ModePhone, j.Mode())
	})

	t.Run("due in the past", func(t *testing.T) {
		_, err := job.NewJob(clk, immediateLead, newCustomer(), job.NewJobParams{
			FromLanguage: "arabiska",
			Due:          now.Add(-time.Hour),
			Duration:     60,
		})

		require.ErrorIs(t, err, job.ErrDueInPast)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := job.NewJob(clk, immediateLead, newCustomer(), job.NewJobParams{
			Due:      now.Add(time.Hour),
			Duration: 60,
		})
		require.ErrorIs(t, err, job.ErrInvalidLanguage)

		_, err = job.NewJob(clk, immediateLead, newCustomer(), job.NewJobParams{
			FromLanguage: "arabiska",
			Due:          now.Add(time.Hour),
			Duration:     0,
		})
		require.ErrorIs(t, err, job.ErrInvalidDuration)
	})

	t.Run("job type follows consumer type", func(t *testing.T) {
		cases := map[string]job.Type{
			"paid":        job.TypePaid,
			"rwsconsumer": job.TypeRWS,
			"ngo":         job.TypeUnpaid,
		}
		for consumerType, want := range cases {
			j, err := job.NewJob(clk, immediateLead, job.CustomerSpec{ID: uuid.New(), ConsumerType: consumerType}, job.NewJobParams{
				FromLanguage: "arabiska",
				Due:          now.Add(time.Hour),
				Duration:     60,
			})
			require.NoError(t, err)
			assert.Equal(t, want, j.Type())
		}
	})
}

func TestWithdraw(t *testing.T) {
	due := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	lateWindow := 24 * time.Hour

	t.Run("more than the window ahead", func(t *testing.T) {
		j := builder.NewJobBuilder().WithDue(due).WithStatus(job.StatusAssigned).BuildDomain()
		now := due.Add(-25 * time.Hour)

		got := j.Withdraw(now, lateWindow)

		assert.Equal(t, job.StatusWithdrawBefore, got)
		require.NotNil(t, j.WithdrawAt())
		assert.Equal(t, now, *j.WithdrawAt())
	})

	t.Run("inside the window", func(t *testing.T) {
		j := builder.NewJobBuilder().WithDue(due).WithStatus(job.StatusAssigned).BuildDomain()

		got := j.Withdraw(due.Add(-2*time.Hour), lateWindow)

		assert.Equal(t, job.StatusWithdrawAfter, got)
	})

	t.Run("exactly at the window boundary counts as before", func(t *testing.T) {
		j := builder.NewJobBuilder().WithDue(due).WithStatus(job.StatusAssigned).BuildDomain()

		got := j.Withdraw(due.Add(-lateWindow), lateWindow)

		assert.Equal(t, job.StatusWithdrawBefore, got)
	})
}

func TestReturnToPending(t *testing.T) {
	j := builder.NewJobBuilder().WithStatus(job.StatusAssigned).BuildDomain()
	now := j.Due().Add(-20 * time.Hour)

	j.ReturnToPending(now)

	assert.Equal(t, job.StatusPending, j.Status())
	assert.Equal(t, now, j.CreatedAt())
	assert.Equal(t, clock.WillExpireAt(j.Due(), now), j.WillExpireAt())
}

func TestReschedule(t *testing.T) {
	j := builder.NewJobBuilder().BuildDomain()
	oldDue := j.Due()
	newDue := oldDue.Add(72 * time.Hour)
	now := j.CreatedAt()

	got := j.Reschedule(newDue, now)

	assert.Equal(t, oldDue, got)
	assert.Equal(t, newDue, j.Due())
	assert.Equal(t, clock.WillExpireAt(newDue, now), j.WillExpireAt())
}

func TestCloneForReopen(t *testing.T) {
	original := builder.NewJobBuilder().WithStatus(job.StatusTimedOut).BuildDomain()
	now := original.Due().Add(-10 * time.Hour)

	clone := original.CloneForReopen(now)

	assert.NotEqual(t, original.ID(), clone.ID())
	assert.Equal(t, job.StatusPending, clone.Status())
	assert.Equal(t, original.Due(), clone.Due())
	assert.Equal(t, now, clone.CreatedAt())
	assert.Equal(t, clock.WillExpireAt(original.Due(), now), clone.WillExpireAt())
	assert.Contains(t, clone.AdminComments(), original.ID().String())
	assert.Nil(t, clone.SessionTime())
	assert.Nil(t, clone.EndAt())
	assert.Nil(t, clone.WithdrawAt())

	// original stays behind as history
	assert.Equal(t, job.StatusTimedOut, original.Status())
}

func TestEndSession(t *testing.T) {
	j := builder.NewJobBuilder().WithStatus(job.StatusStarted).BuildDomain()
	now := j.Due().Add(90 * time.Minute)
	st := job.SessionTimeBetween(j.Due(), now)

	j.EndSession(now, st)

	assert.Equal(t, job.StatusCompleted, j.Status())
	require.NotNil(t, j.SessionTime())
	assert.Equal(t, "1:30:00", j.SessionTime().Raw())
	require.NotNil(t, j.EndAt())
	assert.Equal(t, now, *j.EndAt())
}
