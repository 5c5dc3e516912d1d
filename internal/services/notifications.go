package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/healthease-api/internal/models"
)

type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Notification is one outbound message.
type Notification struct {
	Channel   Channel
	Recipient string
	Subject   string
	Body      string
}

// Sender delivers a notification over one channel.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// ErrNoRecipient is returned for notifications with nowhere to go.
var ErrNoRecipient = errors.New("notification has no recipient")

const sendTimeout = 15 * time.Second

// NotificationService fans notifications out to the channel senders.
// Delivery runs in the background so it never blocks the API response.
type NotificationService struct {
	sms   Sender
	email Sender
	log   zerolog.Logger
	wg    sync.WaitGroup
}

func NewNotificationService(sms, email Sender, log zerolog.Logger) *NotificationService {
	if sms == nil {
		sms = NewLogSender(log)
	}
	if email == nil {
		email = NewLogSender(log)
	}
	return &NotificationService{sms: sms, email: email, log: log}
}

// SendAppointmentConfirmationSMS texts the booking details to phone.
func (s *NotificationService) SendAppointmentConfirmationSMS(phone string, apt models.Appointment) {
	if phone == "" {
		s.log.Info().Str("appointment_id", apt.ID).Msg("SMS not sent: patient has no phone number")
		return
	}
	s.dispatch(Notification{
		Channel:   ChannelSMS,
		Recipient: phone,
		Body: fmt.Sprintf(
			"Appointment Confirmed: %s with %s on %s at %s.",
			apt.VisitType,
			apt.DoctorName,
			apt.Date.Format("Jan 2"),
			apt.Time,
		),
	})
}

// SendPasswordReset emails reset instructions to address.
func (s *NotificationService) SendPasswordReset(address string) {
	s.dispatch(Notification{
		Channel:   ChannelEmail,
		Recipient: address,
		Subject:   "Reset your HealthEase password",
		Body:      "We received a request to reset your password. Follow the link in the HealthEase app to choose a new one. If you did not ask for this, ignore this email.",
	})
}

func (s *NotificationService) dispatch(n Notification) {
	sender := s.sms
	if n.Channel == ChannelEmail {
		sender = s.email
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := sender.Send(ctx, n); err != nil {
			s.log.Error().Err(err).
				Str("channel", string(n.Channel)).
				Str("recipient", n.Recipient).
				Msg("failed to send notification")
			return
		}
		s.log.Info().
			Str("channel", string(n.Channel)).
			Str("recipient", n.Recipient).
			Msg("notification sent")
	}()
}

// Wait blocks until every dispatched notification has finished.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

// TextbeltSender posts SMS messages to the Textbelt HTTP API.
type TextbeltSender struct {
	url    string
	key    string
	client *http.Client
}

func NewTextbeltSender(url, key string) *TextbeltSender {
	return &TextbeltSender{
		url:    url,
		key:    key,
		client: &http.Client{Timeout: sendTimeout},
	}
}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (t *TextbeltSender) Send(ctx context.Context, n Notification) error {
	if n.Recipient == "" {
		return ErrNoRecipient
	}

	postBody, err := json.Marshal(map[string]string{
		"phone":   n.Recipient,
		"message": n.Body,
		"key":     t.key,
	})
	if err != nil {
		return fmt.Errorf("encode textbelt request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(postBody))
	if err != nil {
		return fmt.Errorf("build textbelt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textbelt response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}

// SMTPSender delivers plain-text email through an SMTP relay.
type SMTPSender struct {
	addr     string
	host     string
	username string
	password string
	from     string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%d", host, port),
		host:     host,
		username: username,
		password: password,
		from:     from,
		send:     smtp.SendMail,
	}
}

func (m *SMTPSender) Send(_ context.Context, n Notification) error {
	if n.Recipient == "" {
		return ErrNoRecipient
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", n.Recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", n.Subject)
	msg.WriteString("\r\n")
	msg.WriteString(n.Body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := m.send(m.addr, auth, m.from, []string{n.Recipient}, msg.Bytes()); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// LogSender only records the notification. It stands in for a channel
// with no provider configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (l *LogSender) Send(_ context.Context, n Notification) error {
	l.log.Info().
		Str("channel", string(n.Channel)).
		Str("recipient", n.Recipient).
		Str("subject", n.Subject).
		Msg("notification delivery skipped: no provider configured")
	return nil
}
