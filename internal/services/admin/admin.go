// Package admin содержит операции панели администратора: вход,
// сводная статистика, список платежей и возвраты.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/jwt"
	"github.com/kruenglish/course-platform/internal/lib/password"
	"github.com/kruenglish/course-platform/internal/paymentprovider"
)

const statsWindow = 30 * 24 * time.Hour

// Repository определяет методы хранилища для статистики.
type Repository interface {
	CountUsers(ctx context.Context) (int, error)
}

// Provider определяет операции платёжного провайдера для админ-панели.
type Provider interface {
	ListCharges(ctx context.Context, limit int, createdAfter time.Time) ([]paymentprovider.Charge, error)
	CreateRefund(ctx context.Context, chargeID string) (*paymentprovider.Refund, error)
}

// Payment платёж в списке админ-панели.
type Payment struct {
	ID            string `json:"id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Refunded      bool   `json:"refunded"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	Created       int64  `json:"created"`
}

// DashboardStats сводная статистика за последние 30 дней.
type DashboardStats struct {
	TotalUsers     int       `json:"total_users"`
	TotalRevenue   int64     `json:"total_revenue"` // в минимальных единицах валюты
	PaymentCount   int       `json:"payment_count"`
	RecentPayments []Payment `json:"recent_payments"`
}

// Service реализует операции панели администратора.
type Service struct {
	repo         Repository
	provider     Provider
	tokenMaker   jwt.Maker
	username     string
	passwordHash string
	log          *slog.Logger
}

// New создаёт новый Service.
func New(repo Repository, provider Provider, tokenMaker jwt.Maker, username, passwordHash string, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		provider:     provider,
		tokenMaker:   tokenMaker,
		username:     username,
		passwordHash: passwordHash,
		log:          log,
	}
}

// Login проверяет учётные данные администратора и выдаёт токен.
func (s *Service) Login(ctx context.Context, username, pass string) (string, error) {
	const op = "admin.Login"

	if username != s.username || password.CompareHash(s.passwordHash, pass) != nil {
		s.log.Warn("failed admin login attempt", slog.String("username", username))
		return "", fmt.Errorf("%s: %w", op, &errs.AuthError{Message: "invalid credentials"})
	}

	token, err := s.tokenMaker.GenerateToken(username, "admin")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("admin logged in", slog.String("username", username))
	return token, nil
}

// Stats собирает сводную статистику: число пользователей из хранилища и
// доход по успешным платежам провайдера за последние 30 дней.
func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	const op = "admin.Stats"

	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	charges, err := s.provider.ListCharges(ctx, 100, time.Now().Add(-statsWindow))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &DashboardStats{TotalUsers: users, RecentPayments: []Payment{}}
	for _, charge := range charges {
		if charge.Status != "succeeded" || charge.Refunded {
			continue
		}
		stats.TotalRevenue += charge.Amount
		stats.PaymentCount++
		if len(stats.RecentPayments) < 10 {
			stats.RecentPayments = append(stats.RecentPayments, toPayment(charge))
		}
	}
	return stats, nil
}

// Payments возвращает список платежей для админ-панели.
func (s *Service) Payments(ctx context.Context, limit int) ([]Payment, error) {
	const op = "admin.Payments"

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	charges, err := s.provider.ListCharges(ctx, limit, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payments := make([]Payment, 0, len(charges))
	for _, charge := range charges {
		payments = append(payments, toPayment(charge))
	}
	return payments, nil
}

// Refund выполняет возврат платежа по идентификатору списания.
func (s *Service) Refund(ctx context.Context, chargeID string) (*paymentprovider.Refund, error) {
	const op = "admin.Refund"

	refund, err := s.provider.CreateRefund(ctx, chargeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("refund issued",
		slog.String("charge_id", chargeID),
		slog.String("refund_id", refund.ID))
	return refund, nil
}

func toPayment(charge paymentprovider.Charge) Payment {
	return Payment{
		ID:            charge.ID,
		Amount:        charge.Amount,
		Currency:      charge.Currency,
		Status:        charge.Status,
		Refunded:      charge.Refunded,
		CustomerEmail: charge.BillingDetails.Email,
		CustomerName:  charge.BillingDetails.Name,
		Created:       charge.Created,
	}
}
