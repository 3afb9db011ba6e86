//go:build unit

package job_test

import (
	"testing"
	"time"

	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/pkg/clock"
	"interpreter-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var editTime = time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

func TestApplyStatusChange_SameStatusIsNoOp(t *testing.T) {
	j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

	tr, err := j.ApplyStatusChange(job.StatusPending, job.ChangeContext{Now: editTime})

	require.NoError(t, err)
	assert.False(t, tr.Changed)
	assert.Equal(t, job.StatusPending, j.Status())
}

func TestApplyStatusChange_InvalidStatus(t *testing.T) {
	j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

	_, err := j.ApplyStatusChange(job.Status("bogus"), job.ChangeContext{Now: editTime})

	require.ErrorIs(t, err, job.ErrUnsupportedTransition)
	assert.Equal(t, job.StatusPending, j.Status())
}

func TestApplyStatusChange_FromPending(t *testing.T) {
	t.Run("to timedout requires comment", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{Now: editTime})
		require.ErrorIs(t, err, job.ErrCommentRequired)
		assert.Equal(t, job.StatusPending, j.Status())

		tr, err := j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{AdminComments: "nobody took it", Now: editTime})
		require.NoError(t, err)
		assert.True(t, tr.Changed)
		assert.Equal(t, job.StatusTimedOut, j.Status())
		assert.Equal(t, "nobody took it", j.AdminComments())
	})

	t.Run("to assigned with translator swap notifies both sides", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

		tr, err := j.ApplyStatusChange(job.StatusAssigned, job.ChangeContext{TranslatorChanged: true, Now: editTime})

		require.NoError(t, err)
		assert.Equal(t, []job.Effect{job.EffectNotifyAccepted, job.EffectNotifyNewTranslator, job.EffectScheduleReminders}, tr.Effects)
		assert.Equal(t, job.StatusAssigned, j.Status())
	})

	t.Run("to assigned without translator reads as off-market", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

		tr, err := j.ApplyStatusChange(job.StatusAssigned, job.ChangeContext{Now: editTime})

		require.NoError(t, err)
		assert.Equal(t, []job.Effect{job.EffectWithdrawnNotice}, tr.Effects)
	})

	t.Run("to withdraw statuses", func(t *testing.T) {
		for _, target := range []job.Status{job.StatusWithdrawBefore, job.StatusWithdrawAfter} {
			j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

			tr, err := j.ApplyStatusChange(target, job.ChangeContext{Now: editTime})

			require.NoError(t, err)
			assert.Equal(t, target, j.Status())
			assert.Equal(t, []job.Effect{job.EffectWithdrawnNotice}, tr.Effects)
		}
	})

	t.Run("to started is not allowed", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusPending).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusStarted, job.ChangeContext{Now: editTime})

		require.ErrorIs(t, err, job.ErrUnsupportedTransition)
	})
}

func TestApplyStatusChange_FromAssigned(t *testing.T) {
	t.Run("to withdraw records withdraw time and owes cancellation notices", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusAssigned).BuildDomain()

		tr, err := j.ApplyStatusChange(job.StatusWithdrawAfter, job.ChangeContext{Now: editTime})

		require.NoError(t, err)
		assert.Equal(t, []job.Effect{job.EffectCancellationNotices}, tr.Effects)
		require.NotNil(t, j.WithdrawAt())
		assert.Equal(t, editTime, *j.WithdrawAt())
	})

	t.Run("to timedout requires comment", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusAssigned).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{Now: editTime})
		require.ErrorIs(t, err, job.ErrCommentRequired)

		_, err = j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{AdminComments: "mistake", Now: editTime})
		require.NoError(t, err)
		assert.Equal(t, job.StatusTimedOut, j.Status())
	})

	t.Run("to completed is not allowed", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusAssigned).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusCompleted, job.ChangeContext{AdminComments: "x", Now: editTime})

		require.ErrorIs(t, err, job.ErrUnsupportedTransition)
	})
}

func TestApplyStatusChange_FromStarted(t *testing.T) {
	t.Run("every correction needs a comment", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusStarted).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{Now: editTime})

		require.ErrorIs(t, err, job.ErrCommentRequired)
	})

	t.Run("to completed needs a parseable session time", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusStarted).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusCompleted, job.ChangeContext{AdminComments: "done", Now: editTime})
		require.ErrorIs(t, err, job.ErrSessionTimeRequired)

		tr, err := j.ApplyStatusChange(job.StatusCompleted, job.ChangeContext{
			AdminComments: "done",
			SessionTime:   "1:30:00",
			Now:           editTime,
		})
		require.NoError(t, err)
		assert.Equal(t, []job.Effect{job.EffectSessionEnded}, tr.Effects)
		require.NotNil(t, tr.SessionTime)
		assert.Equal(t, "1:30:00", tr.SessionTime.Raw())
		require.NotNil(t, j.EndAt())
		assert.Equal(t, editTime, *j.EndAt())
	})

	t.Run("to any other status with comment", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusStarted).BuildDomain()

		tr, err := j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{AdminComments: "never happened", Now: editTime})

		require.NoError(t, err)
		assert.True(t, tr.Changed)
		assert.Empty(t, tr.Effects)
	})
}

func TestApplyStatusChange_FromTimedOut(t *testing.T) {
	t.Run("back to pending resets the expiry window", func(t *testing.T) {
		b := builder.NewJobBuilder().WithStatus(job.StatusTimedOut)
		j := b.BuildDomain()

		tr, err := j.ApplyStatusChange(job.StatusPending, job.ChangeContext{Now: editTime})

		require.NoError(t, err)
		assert.Equal(t, []job.Effect{job.EffectBroadcastCreated}, tr.Effects)
		assert.Equal(t, job.StatusPending, j.Status())
		assert.Equal(t, editTime, j.CreatedAt())
		assert.Equal(t, clock.WillExpireAt(b.Due, editTime), j.WillExpireAt())
	})

	t.Run("to assigned only together with a translator swap", func(t *testing.T) {
		j := builder.NewJobBuilder().WithStatus(job.StatusTimedOut).BuildDomain()

		_, err := j.ApplyStatusChange(job.StatusAssigned, job.ChangeContext{Now: editTime})
		require.ErrorIs(t, err, job.ErrUnsupportedTransition)

		tr, err := j.ApplyStatusChange(job.StatusAssigned, job.ChangeContext{TranslatorChanged: true, Now: editTime})
		require.NoError(t, err)
		assert.Equal(t, []job.Effect{job.EffectNotifyAccepted}, tr.Effects)
	})
}

func TestApplyStatusChange_FromCompleted(t *testing.T) {
	j := builder.NewJobBuilder().WithStatus(job.StatusCompleted).BuildDomain()

	_, err := j.ApplyStatusChange(job.StatusPending, job.ChangeContext{AdminComments: "x", Now: editTime})
	require.ErrorIs(t, err, job.ErrUnsupportedTransition)

	_, err = j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{Now: editTime})
	require.ErrorIs(t, err, job.ErrCommentRequired)

	tr, err := j.ApplyStatusChange(job.StatusTimedOut, job.ChangeContext{AdminComments: "billing dispute", Now: editTime})
	require.NoError(t, err)
	assert.True(t, tr.Changed)
	assert.Equal(t, job.StatusTimedOut, j.Status())
}

func TestApplyStatusChange_TerminalStatuses(t *testing.T) {
	for _, from := range []job.Status{job.StatusWithdrawBefore, job.StatusWithdrawAfter, job.StatusNotCarriedOut} {
		t.Run(string(from), func(t *testing.T) {
			j := builder.NewJobBuilder().WithStatus(from).BuildDomain()

			_, err := j.ApplyStatusChange(job.StatusPending, job.ChangeContext{AdminComments: "x", Now: editTime})

			require.ErrorIs(t, err, job.ErrUnsupportedTransition)
			assert.Equal(t, from, j.Status())
		})
	}
}
