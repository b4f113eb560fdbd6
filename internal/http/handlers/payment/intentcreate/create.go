// Package intentcreate реализует HTTP-обработчик создания платёжного намерения.
//
// Handler принимает JSON-запрос с курсом и данными покупателя, валидирует их,
// создаёт платёжное намерение у провайдера и запись на курс в статусе pending,
// после чего возвращает клиентский секрет для завершения оплаты.
package intentcreate

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

// Handler управляет HTTP-запросами на создание платёжного намерения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс воркфлоу записи на курс.
type Service interface {
	CreateIntent(ctx context.Context, req models.DummyIntent) (*enrollment.IntentResult, error)
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
// @Summary Создать платёжное намерение
// @Description Создаёт платёжное намерение у провайдера и запись на курс в статусе pending.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.DummyIntent true "Курс и данные покупателя"
// @Success 200 {object} response.Response "Клиентский секрет и ID намерения"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment-intents [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intentcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyIntent
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

	result, err := h.service.CreateIntent(r.Context(), req)
	if err != nil {
		var gatewayErr *errs.GatewayError
		switch {
		case errors.Is(err, errs.ErrNotFound):
			log.Error("course not found", slog.Int("course_id", req.CourseID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
		case errors.As(err, &gatewayErr):
			log.Error("payment provider error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
		default:
			log.Error("failed to create payment intent", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create payment intent"))
		}
		return
	}

	log.Info("payment intent created", slog.String("payment_intent_id", result.PaymentIntentID))
	render.JSON(w, r, response.OKWithData(result))
}
