// Package sender отправляет почтовые уведомления из очередей сообщений.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/lib/smtp"
	"github.com/kruenglish/course-platform/internal/models"
)

// SenderService обрабатывает сообщения очередей и отправляет письма.
type SenderService struct {
	transport  smtp.TransportInterface
	adminEmail string
	log        *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, adminEmail string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:  transport,
		adminEmail: adminEmail,
		log:        log,
	}
}

// SendEnrollmentConfirmation отправляет пользователю подтверждение записи.
func (s *SenderService) SendEnrollmentConfirmation(body []byte) error {
	var message models.EnrollmentNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.UserEmail}
	subject := "Welcome to Kru English!"
	bodyText := fmt.Sprintf(`Hello %s!

Your payment has been confirmed and you are now enrolled in %s (%d THB).

You will receive your class schedule and meeting links shortly.

See you in class!
Kru English Team`, message.UserName, message.CourseName, message.Price)

	return s.sendEmail(to, subject, bodyText)
}

// SendContactNotification пересылает сообщение с формы администратору.
func (s *SenderService) SendContactNotification(body []byte) error {
	var message models.ContactNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	phone := "-"
	if message.Phone != nil {
		phone = *message.Phone
	}

	to := []string{s.adminEmail}
	subject := "New contact request from " + message.Name
	bodyText := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
		message.Name, message.Email, phone, message.Message)

	return s.sendEmail(to, subject, bodyText)
}

// SendLevelTestResults отправляет пользователю результаты теста уровня.
func (s *SenderService) SendLevelTestResults(body []byte) error {
	var message models.LevelTestNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.UserEmail}
	subject := "Your English level test results"
	bodyText := fmt.Sprintf(`Hello %s!

You scored %d points. Your English level is %s.

%s

Kru English Team`, message.UserName, message.Score, message.Level, message.Recommendation)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
