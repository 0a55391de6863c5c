package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"leaguehq-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendInvitationNotice(ctx context.Context, toEmail, toName, leagueName, inviterName string) error {
	subject := fmt.Sprintf("Invitation to join %s", leagueName)
	body := fmt.Sprintf("Hello %s,\n\n%s has invited you to join the league %s.\n\nSign in to accept or decline the invitation.\n\nThe LeagueHQ Team",
		toName, inviterName, leagueName)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendModerationNotice(ctx context.Context, toEmail, toName, leagueName string, action domain.ModerationActionKind, reason string, until *time.Time) error {
	subject := fmt.Sprintf("Moderation notice from %s", leagueName)
	body := fmt.Sprintf("Hello %s,\n\nA moderator of %s has taken the following action on your membership: %s.\n\nReason: %s", toName, leagueName, action, reason)
	if until != nil {
		body += fmt.Sprintf("\n\nYour suspension ends on %s.", until.Format("January 2, 2006"))
	}
	body += "\n\nThe LeagueHQ Team"
	return s.send(toEmail, toName, subject, body)
}
