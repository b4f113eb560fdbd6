// Package contacts реализует HTTP-обработчик просмотра сообщений обратной связи
// в панели администратора.
package contacts

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

// Handler управляет HTTP-запросами просмотра сообщений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обратной связи.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Contact, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сообщения обратной связи
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список сообщений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/contacts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.contacts"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	contacts, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list contacts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list contacts"))
		return
	}

	render.JSON(w, r, response.OKWithData(contacts))
}
