// Package read реализует HTTP-обработчик чтения одного занятия.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/errs"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/meetingprovider"
)

// Handler управляет HTTP-запросами чтения занятия.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики занятий.
type Service interface {
	Get(ctx context.Context, meetingID string) (*meetingprovider.Meeting, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить занятие
// @Tags Meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID занятия"
// @Success 200 {object} response.Response "Данные занятия"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера видеоконференций"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/meetings/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing meeting id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid meeting id"))
		return
	}

	meeting, err := h.service.Get(r.Context(), id)
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
		log.Error("failed to get meeting", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get meeting"))
		return
	}

	render.JSON(w, r, response.OKWithData(meeting))
}
