// Package submit реализует HTTP-обработчик приёма ответов теста уровня языка.
//
// Handler принимает массив ответов, подсчитывает результат через сервис и
// возвращает балл, уровень CEFR и рекомендацию курса.
package submit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
	"github.com/kruenglish/course-platform/internal/services/leveltest"
)

// Handler управляет HTTP-запросами теста уровня.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики теста уровня.
type Service interface {
	Submit(ctx context.Context, req models.DummyLevelTest) (*leveltest.Result, error)
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
// @Summary Отправить ответы теста уровня
// @Description Подсчитывает результат теста и возвращает уровень CEFR с рекомендацией.
// @Tags LevelTest
// @Accept json
// @Produce json
// @Param request body models.DummyLevelTest true "Ответы теста"
// @Success 200 {object} response.Response "Результат теста"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /level-tests [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.leveltest.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLevelTest
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

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		log.Error("failed to process level test", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process level test"))
		return
	}

	log.Info("level test processed", slog.String("level", result.Level))
	render.JSON(w, r, response.OKWithData(result))
}
