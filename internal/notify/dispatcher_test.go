//go:build unit

package notify

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"interpreter-booking/internal/domain/user"
	"interpreter-booking/internal/pkg/clock"
)

type mockPushGateway struct{ mock.Mock }

func (m *mockPushGateway) Send(ctx context.Context, userIDs []uuid.UUID, payload Payload, title, text string, sendAfter *time.Time) error {
	args := m.Called(ctx, userIDs, payload, title, text, sendAfter)
	return args.Error(0)
}

type mockSMSGateway struct{ mock.Mock }

func (m *mockSMSGateway) Send(ctx context.Context, mobile, message string) error {
	args := m.Called(ctx, mobile, message)
	return args.Error(0)
}

type mockMailGateway struct{ mock.Mock }

func (m *mockMailGateway) Send(ctx context.Context, to, name, subject, template string, data map[string]any) error {
	args := m.Called(ctx, to, name, subject, template, data)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func daytime() *clock.MockClock {
	return clock.NewMockClock(time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC))
}

func nighttime() *clock.MockClock {
	return clock.NewMockClock(time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC))
}

func testJob() JobInfo {
	return JobInfo{
		ID:       uuid.New(),
		Language: "arabic",
		Duration: 90,
		Due:      time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		Town:     "Stockholm",
	}
}

func recipient(prefs user.NotificationPrefs) Recipient {
	return Recipient{
		ID:     uuid.New(),
		Email:  "translator@example.com",
		Name:   "Test Translator",
		Mobile: "+46700000000",
		Prefs:  prefs,
	}
}

func TestDispatcher_BroadcastJobCreated(t *testing.T) {
	t.Parallel()

	t.Run("pushes and texts every eligible translator", func(t *testing.T) {
		t.Parallel()
		push := new(mockPushGateway)
		sms := new(mockSMSGateway)
		d := NewDispatcher(push, sms, new(mockMailGateway), daytime(), discardLogger())

		r1, r2 := recipient(user.NotificationPrefs{}), recipient(user.NotificationPrefs{})
		push.On("Send", mock.Anything, []uuid.UUID{r1.ID, r2.ID}, mock.Anything, pushTitle, mock.Anything, (*time.Time)(nil)).Return(nil)
		sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

		sent := d.BroadcastJobCreated(context.Background(), testJob(), []Recipient{r1, r2})
		assert.Equal(t, 2, sent)
		push.AssertExpectations(t)
		sms.AssertExpectations(t)
	})

	t.Run("skips push opt-outs entirely", func(t *testing.T) {
		t.Parallel()
		push := new(mockPushGateway)
		sms := new(mockSMSGateway)
		d := NewDispatcher(push, sms, new(mockMailGateway), daytime(), discardLogger())

		optedOut := recipient(user.NotificationPrefs{NoPush: true})
		sms.On("Send", mock.Anything, optedOut.Mobile, mock.Anything).Return(nil)

		d.BroadcastJobCreated(context.Background(), testJob(), []Recipient{optedOut})
		push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips emergency opt-outs for immediate jobs only", func(t *testing.T) {
		t.Parallel()
		push := new(mockPushGateway)
		sms := new(mockSMSGateway)
		d := NewDispatcher(push, sms, new(mockMailGateway), daytime(), discardLogger())

		noEmergency := recipient(user.NotificationPrefs{NoEmergency: true})
		sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		j := testJob()
		j.Immediate = true
		d.BroadcastJobCreated(context.Background(), j, []Recipient{noEmergency})
		push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("defers quiet-hour recipients to the next business morning", func(t *testing.T) {
		t.Parallel()
		push := new(mockPushGateway)
		sms := new(mockSMSGateway)
		clk := nighttime()
		d := NewDispatcher(push, sms, new(mockMailGateway), clk, discardLogger())

		awake := recipient(user.NotificationPrefs{})
		asleep := recipient(user.NotificationPrefs{NoNightTime: true})
		sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		push.On("Send", mock.Anything, []uuid.UUID{awake.ID}, mock.Anything, pushTitle, mock.Anything, (*time.Time)(nil)).Return(nil)
		push.On("Send", mock.Anything, []uuid.UUID{asleep.ID}, mock.Anything, pushTitle, mock.Anything, mock.MatchedBy(func(after *time.Time) bool {
			return after != nil && after.Equal(clk.NextBusinessTime())
		})).Return(nil)

		d.BroadcastJobCreated(context.Background(), testJob(), []Recipient{awake, asleep})
		push.AssertExpectations(t)
	})

	t.Run("uses the physical SMS template for physical jobs", func(t *testing.T) {
		t.Parallel()
		push := new(mockPushGateway)
		sms := new(mockSMSGateway)
		d := NewDispatcher(push, sms, new(mockMailGateway), daytime(), discardLogger())

		r := recipient(user.NotificationPrefs{})
		push.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		sms.On("Send", mock.Anything, r.Mobile, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "platstolkning") && strings.Contains(msg, "Stockholm")
		})).Return(nil)

		j := testJob()
		j.Physical = true
		d.BroadcastJobCreated(context.Background(), j, []Recipient{r})
		sms.AssertExpectations(t)
	})
}

func TestDispatcher_SessionEnded(t *testing.T) {
	t.Parallel()
	mail := new(mockMailGateway)
	d := NewDispatcher(new(mockPushGateway), new(mockSMSGateway), mail, daytime(), discardLogger())

	j := testJob()
	customer := recipient(user.NotificationPrefs{})
	customer.Email = "customer@example.com"
	translator := recipient(user.NotificationPrefs{})

	mail.On("Send", mock.Anything, customer.Email, customer.Name, sessionEndedSubject(j.ID), "emails.session-ended",
		mock.MatchedBy(func(data map[string]any) bool { return data["for_text"] == "faktura" })).Return(nil)
	mail.On("Send", mock.Anything, translator.Email, translator.Name, sessionEndedSubject(j.ID), "emails.session-ended",
		mock.MatchedBy(func(data map[string]any) bool { return data["for_text"] == "lön" })).Return(nil)

	d.SessionEnded(context.Background(), j, "1 tim 30 min", customer, translator)
	mail.AssertExpectations(t)
}

func TestDispatcher_BookingReceived(t *testing.T) {
	t.Parallel()
	mail := new(mockMailGateway)
	d := NewDispatcher(new(mockPushGateway), new(mockSMSGateway), mail, daytime(), discardLogger())

	j := testJob()
	customer := recipient(user.NotificationPrefs{})
	customer.Email = "reception@vc.example.se"

	mail.On("Send", mock.Anything, customer.Email, customer.Name, bookingReceivedSubject(j.ID), "emails.job-created",
		mock.Anything).Return(nil)

	d.BookingReceived(context.Background(), j, customer)
	mail.AssertExpectations(t)
}

func TestDispatcher_AssignmentCancelled(t *testing.T) {
	t.Parallel()
	mail := new(mockMailGateway)
	push := new(mockPushGateway)
	d := NewDispatcher(push, new(mockSMSGateway), mail, daytime(), discardLogger())

	j := testJob()
	translator := recipient(user.NotificationPrefs{})

	mail.On("Send", mock.Anything, translator.Email, translator.Name, sessionEndedSubject(j.ID), "emails.job-cancel-translator",
		mock.Anything).Return(nil)

	d.AssignmentCancelled(context.Background(), j, translator)
	mail.AssertExpectations(t)
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_TranslatorChanged(t *testing.T) {
	t.Parallel()

	t.Run("mails customer, both translators, and pushes the replacement", func(t *testing.T) {
		t.Parallel()
		mail := new(mockMailGateway)
		push := new(mockPushGateway)
		d := NewDispatcher(push, new(mockSMSGateway), mail, daytime(), discardLogger())

		j := testJob()
		customer := recipient(user.NotificationPrefs{})
		previous := recipient(user.NotificationPrefs{})
		replacement := recipient(user.NotificationPrefs{})

		mail.On("Send", mock.Anything, mock.Anything, mock.Anything, translatorChangedSubject(j.ID), mock.Anything, mock.Anything).
			Return(nil).Times(3)
		push.On("Send", mock.Anything, []uuid.UUID{replacement.ID}, mock.Anything, pushTitle, mock.Anything, (*time.Time)(nil)).Return(nil)

		d.TranslatorChanged(context.Background(), j, customer, &previous, replacement)
		mail.AssertExpectations(t)
		push.AssertExpectations(t)
	})

	t.Run("no previous translator means two mails", func(t *testing.T) {
		t.Parallel()
		mail := new(mockMailGateway)
		push := new(mockPushGateway)
		d := NewDispatcher(push, new(mockSMSGateway), mail, daytime(), discardLogger())

		j := testJob()
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Twice()
		push.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		d.TranslatorChanged(context.Background(), j, recipient(user.NotificationPrefs{}), nil, recipient(user.NotificationPrefs{}))
		mail.AssertExpectations(t)
	})
}

func TestDispatcher_GatewayFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	push := new(mockPushGateway)
	sms := new(mockSMSGateway)
	d := NewDispatcher(push, sms, new(mockMailGateway), daytime(), discardLogger())

	r := recipient(user.NotificationPrefs{})
	push.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)
	sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	sent := d.BroadcastJobCreated(context.Background(), testJob(), []Recipient{r})
	assert.Equal(t, 0, sent)
}

func TestDispatcher_QuietHourPushCarriesSendAfter(t *testing.T) {
	t.Parallel()
	push := new(mockPushGateway)
	clk := nighttime()
	d := NewDispatcher(push, new(mockSMSGateway), new(mockMailGateway), clk, discardLogger())

	j := testJob()
	r := recipient(user.NotificationPrefs{NoNightTime: true})
	push.On("Send", mock.Anything, []uuid.UUID{r.ID}, mock.Anything, pushTitle, mock.Anything,
		mock.MatchedBy(func(after *time.Time) bool {
			return after != nil && after.Equal(clk.NextBusinessTime())
		})).Return(nil)

	d.JobExpired(context.Background(), j, r)
	push.AssertExpectations(t)
}
