// Package recommend реализует HTTP-обработчик подбора курса по уровню и целям.
package recommend

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
)

// Request тело запроса подбора курса.
type Request struct {
	Level string `json:"level" validate:"required"`
	Goal  string `json:"goal,omitempty"`
}

// Handler управляет HTTP-запросами подбора курса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс чат-помощника.
type Service interface {
	RecommendCourse(ctx context.Context, level, goal string) (*models.Course, string, error)
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
// @Summary Подобрать курс
// @Description Рекомендует курс исходя из уровня CEFR и целей пользователя.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body Request true "Уровень и цели"
// @Success 200 {object} response.Response "Рекомендованный курс"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assistant/recommend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.recommend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	course, reason, err := h.service.RecommendCourse(r.Context(), req.Level, req.Goal)
	if err != nil {
		log.Error("failed to recommend course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not recommend course"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"course": course,
		"reason": reason,
	}))
}
