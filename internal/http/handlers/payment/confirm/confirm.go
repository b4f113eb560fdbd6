// Package confirm реализует HTTP-обработчик подтверждения оплаты.
//
// Handler запрашивает статус платёжного намерения у провайдера через сервис.
// Неуспешный статус возвращается как 400 без активации записи. Успешная оплата
// без локальной записи — 404, признак рассинхронизации данных.
package confirm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
	"github.com/kruenglish/course-platform/internal/services/enrollment"
)

// Handler управляет HTTP-запросами подтверждения оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс воркфлоу записи на курс.
type Service interface {
	Confirm(ctx context.Context, paymentIntentID string) (*enrollment.ConfirmResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату
// @Description Проверяет статус оплаты у провайдера и активирует запись на курс.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.DummyConfirm true "ID платёжного намерения"
// @Success 200 {object} response.Response "Запись активирована"
// @Failure 400 {object} response.ErrorResponse "Оплата не завершена"
// @Failure 404 {object} response.ErrorResponse "Запись для оплаты не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment-confirmations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.Confirm(r.Context(), req.PaymentIntentID)
	if err != nil {
		var orphanErr *errs.OrphanedPaymentError
		var gatewayErr *errs.GatewayError
		switch {
		case errors.As(err, &orphanErr):
			log.Error("payment succeeded without enrollment record",
				slog.String("payment_intent_id", req.PaymentIntentID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no enrollment found for this payment"))
		case errors.As(err, &gatewayErr):
			log.Error("payment provider error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
		default:
			log.Error("failed to confirm payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not confirm payment"))
		}
		return
	}

	if !result.Success {
		log.Info("payment not completed yet", slog.String("payment_intent_id", req.PaymentIntentID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("payment has not succeeded"))
		return
	}

	log.Info("payment confirmed", slog.Int("enrollment_id", result.EnrollmentID))
	render.JSON(w, r, response.OKWithData(result))
}
