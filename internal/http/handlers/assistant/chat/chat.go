// Package chat реализует HTTP-обработчик чат-помощника по курсам.
package chat

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
)

// Request тело запроса чат-помощника.
type Request struct {
	Message string `json:"message" validate:"required"`
}

// Handler управляет HTTP-запросами чат-помощника.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс чат-помощника.
type Service interface {
	Chat(ctx context.Context, message string) (string, error)
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
// @Summary Спросить помощника
// @Description Отвечает на вопрос о курсах, ценах и расписании.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body Request true "Сообщение пользователя"
// @Success 200 {object} response.Response "Ответ помощника"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assistant/chat [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.chat"
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

	reply, err := h.service.Chat(r.Context(), req.Message)
	if err != nil {
		log.Error("failed to get assistant reply", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get reply"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"reply": reply,
	}))
}
