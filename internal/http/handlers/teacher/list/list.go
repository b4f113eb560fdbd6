// Package list реализует HTTP-обработчик для получения списка преподавателей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
)

// Handler управляет HTTP-запросами на получение списка преподавателей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Teachers(ctx context.Context) ([]*models.Teacher, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список преподавателей
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Response "Список преподавателей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /teachers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.teacher.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	teachers, err := h.service.Teachers(r.Context())
	if err != nil {
		log.Error("failed to list teachers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list teachers"))
		return
	}

	render.JSON(w, r, response.OKWithData(teachers))
}
