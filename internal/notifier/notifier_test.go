package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"sandgrund/pkg/kafka"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/mailer"
	"sandgrund/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	sent []mailer.Mail
	err  error
}

func (m *mockSender) Send(_ context.Context, mail mailer.Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

func assignedMessage(t *testing.T, event model.GuideAssigned) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithEventType(model.EventGuideAssigned).
		WithValue(event).
		Build()
	require.NoError(t, err)
	return msg
}

func sampleEvent() model.GuideAssigned {
	return model.GuideAssigned{
		BookingID:     "b-1",
		Title:         "Fossils & <Flint>",
		Start:         time.Date(2024, 6, 14, 8, 0, 0, 0, time.UTC),
		End:           time.Date(2024, 6, 14, 10, 30, 0, 0, time.UTC),
		Guide:         "Anna",
		GuideEmail:    "anna@sandgrund.se",
		ContactPerson: "Per",
		ContactPhone:  "+46701234567",
		Participants:  23,
		Snacks:        true,
	}
}

func TestHandle_SendsMail(t *testing.T) {
	sender := &mockSender{}
	n := New(sender, time.FixedZone("CEST", 2*60*60), logger.Discard())

	require.NoError(t, n.Handle(context.Background(), assignedMessage(t, sampleEvent())))
	require.Len(t, sender.sent, 1)

	mail := sender.sent[0]
	assert.Equal(t, "anna@sandgrund.se", mail.To)
	assert.Equal(t, "Anna", mail.ToName)
	assert.Equal(t, "New tour: Fossils & <Flint>, 14 Jun", mail.Subject)
	assert.Contains(t, mail.HTMLBody, "Fossils &amp; &lt;Flint&gt;")
	assert.Contains(t, mail.HTMLBody, "Fri 14 Jun 2024 10:00 to 12:30")
	assert.Contains(t, mail.HTMLBody, "Participants: 23")
	assert.Contains(t, mail.HTMLBody, "Snacks are ordered")
}

func TestHandle_Errors(t *testing.T) {
	noEmail := sampleEvent()
	noEmail.GuideEmail = " "

	tests := []struct {
		name     string
		msg      func(t *testing.T) kafka.Message
		sendErr  error
		wantType kafka.ErrorType
	}{
		{
			name: "undecodable payload",
			msg: func(t *testing.T) kafka.Message {
				return kafka.Message{Value: []byte("{"), Headers: map[string]string{kafka.HeaderEventType: model.EventGuideAssigned}}
			},
			wantType: kafka.ErrorTypePermanent,
		},
		{
			name:     "missing recipient",
			msg:      func(t *testing.T) kafka.Message { return assignedMessage(t, noEmail) },
			wantType: kafka.ErrorTypePermanent,
		},
		{
			name:     "rate limited",
			msg:      func(t *testing.T) kafka.Message { return assignedMessage(t, sampleEvent()) },
			sendErr:  &mailer.StatusError{StatusCode: 429, Status: "429 Too Many Requests"},
			wantType: kafka.ErrorTypeTransient,
		},
		{
			name:     "rejected by API",
			msg:      func(t *testing.T) kafka.Message { return assignedMessage(t, sampleEvent()) },
			sendErr:  &mailer.StatusError{StatusCode: 400, Status: "400 Bad Request"},
			wantType: kafka.ErrorTypePermanent,
		},
		{
			name:     "transport failure",
			msg:      func(t *testing.T) kafka.Message { return assignedMessage(t, sampleEvent()) },
			sendErr:  errors.New("dial tcp: connection refused"),
			wantType: kafka.ErrorTypeTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(&mockSender{err: tt.sendErr}, nil, logger.Discard())
			err := n.Handle(context.Background(), tt.msg(t))
			require.Error(t, err)
			assert.Equal(t, tt.wantType, kafka.ClassifyError(err))
		})
	}
}

func TestHandle_IgnoresOtherEvents(t *testing.T) {
	sender := &mockSender{}
	n := New(sender, nil, logger.Discard())

	msg, err := kafka.NewMessage().WithKey("b-1").WithEventType("booking.deleted").WithValue(map[string]string{}).Build()
	require.NoError(t, err)

	assert.NoError(t, n.Handle(context.Background(), msg))
	assert.Empty(t, sender.sent)
}
