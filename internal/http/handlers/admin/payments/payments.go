// Package payments реализует HTTP-обработчики списка платежей и возвратов
// панели администратора.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/paymentprovider"
	"github.com/kruenglish/course-platform/internal/services/admin"
)

// RefundRequest тело запроса возврата платежа.
type RefundRequest struct {
	ChargeID string `json:"charge_id" validate:"required"`
}

// Handler управляет HTTP-запросами платежей панели администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики панели администратора.
type Service interface {
	Payments(ctx context.Context, limit int) ([]admin.Payment, error)
	Refund(ctx context.Context, chargeID string) (*paymentprovider.Refund, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// List godoc
// @Summary Список платежей
// @Description Возвращает последние платежи от платёжного провайдера.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Максимум записей, по умолчанию 50"
// @Success 200 {object} response.Response "Список платежей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/payments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.payments.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	payments, err := h.service.Payments(r.Context(), limit)
	if err != nil {
		var gatewayErr *errs.GatewayError
		if errors.As(err, &gatewayErr) {
			log.Error("payment provider error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
			return
		}
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	render.JSON(w, r, response.OKWithData(payments))
}

// Refund godoc
// @Summary Вернуть платёж
// @Description Выполняет возврат платежа по идентификатору списания.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RefundRequest true "ID списания"
// @Success 200 {object} response.Response "Данные возврата"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/payments/refund [post]
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.payments.refund"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req RefundRequest
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

	refund, err := h.service.Refund(r.Context(), req.ChargeID)
	if err != nil {
		var gatewayErr *errs.GatewayError
		if errors.As(err, &gatewayErr) {
			log.Error("payment provider error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
			return
		}
		log.Error("failed to refund payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not refund payment"))
		return
	}

	log.Info("refund created", slog.String("refund_id", refund.ID))
	render.JSON(w, r, response.OKWithData(refund))
}
