// Package list реализует HTTP-обработчик списка предстоящих занятий.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/meetingprovider"
)

// Handler управляет HTTP-запросами списка занятий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики занятий.
type Service interface {
	List(ctx context.Context) ([]meetingprovider.Meeting, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список занятий
// @Description Возвращает предстоящие занятия аккаунта видеоконференций.
// @Tags Meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список занятий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера видеоконференций"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/meetings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	meetings, err := h.service.List(r.Context())
	if err != nil {
		var authErr *errs.AuthError
		if errors.As(err, &authErr) {
			log.Error("meeting provider auth failed", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("meeting provider authentication failed"))
			return
		}
		var providerErr *errs.MeetingProviderError
		if errors.As(err, &providerErr) {
			log.Error("meeting provider error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("meeting provider unavailable"))
			return
		}
		log.Error("failed to list meetings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list meetings"))
		return
	}

	render.JSON(w, r, response.OKWithData(meetings))
}
