// Package contact содержит обработку заявок обратной связи.
package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
	"github.com/kruenglish/course-platform/internal/rabbitmq"
)

// Repository определяет методы хранилища для заявок.
type Repository interface {
	CreateContact(ctx context.Context, req models.DummyContact) (*models.Contact, error)
	GetAllContacts(ctx context.Context) ([]*models.Contact, error)
}

// Queue публикует уведомления. Допустим nil.
type Queue interface {
	Publish(routingKey string, message any) error
}

// Service реализует обработку заявок обратной связи.
type Service struct {
	repo  Repository
	queue Queue
	log   *slog.Logger
}

// New создаёт новый Service.
func New(repo Repository, queue Queue, log *slog.Logger) *Service {
	return &Service{repo: repo, queue: queue, log: log}
}

// Create сохраняет заявку и публикует уведомление для администратора.
func (s *Service) Create(ctx context.Context, req models.DummyContact) (*models.Contact, error) {
	const op = "contact.Create"

	contact, err := s.repo.CreateContact(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contact request received", slog.Int("contact_id", contact.ID))

	if s.queue != nil {
		notification := models.ContactNotification{
			Name:    contact.Name,
			Email:   contact.Email,
			Phone:   contact.Phone,
			Message: contact.Message,
		}
		if err := s.queue.Publish(rabbitmq.KeyContact, notification); err != nil {
			s.log.Warn("failed to publish contact notification", sl.Err(err))
		}
	}

	return contact, nil
}

// ListAll возвращает все заявки для панели администратора.
func (s *Service) ListAll(ctx context.Context) ([]*models.Contact, error) {
	const op = "contact.ListAll"

	contacts, err := s.repo.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contacts, nil
}
