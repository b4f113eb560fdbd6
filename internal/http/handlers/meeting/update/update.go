// Package update реализует HTTP-обработчик изменения занятия.
package update

import (
	"context"
	"encoding/json"
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

// Handler управляет HTTP-запросами изменения занятий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики занятий.
type Service interface {
	Update(ctx context.Context, meetingID string, patch meetingprovider.CreateMeetingRequest) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить занятие
// @Tags Meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID занятия"
// @Param request body meetingprovider.CreateMeetingRequest true "Новые параметры"
// @Success 200 {object} response.Response "Занятие обновлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера видеоконференций"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/meetings/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.update"
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

	var req meetingprovider.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
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
		log.Error("failed to update meeting", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update meeting"))
		return
	}

	log.Info("meeting updated", slog.String("meeting_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_id": id,
	}))
}
