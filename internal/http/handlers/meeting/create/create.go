// Package create реализует HTTP-обработчик создания онлайн-занятия.
//
// Handler принимает название курса и текст расписания, по которому
// выводится правило повторения, либо явную структуру повторения.
package create

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
	"github.com/kruenglish/course-platform/internal/meetingprovider"
)

// Request тело запроса создания занятия.
type Request struct {
	CourseName      string                      `json:"course_name" validate:"required"`
	Schedule        string                      `json:"schedule,omitempty"`
	DurationMinutes int                         `json:"duration_minutes,omitempty"`
	Recurrence      *meetingprovider.Recurrence `json:"recurrence,omitempty"`
}

// Handler управляет HTTP-запросами создания занятий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики занятий.
type Service interface {
	Create(ctx context.Context, courseName, scheduleText string, durationMinutes int, recurrence *meetingprovider.Recurrence) (*meetingprovider.Meeting, error)
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
// @Summary Создать занятие
// @Description Создаёт онлайн-занятие у провайдера видеоконференций.
// @Tags Meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Параметры занятия"
// @Success 200 {object} response.Response "Созданное занятие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка провайдера видеоконференций"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/meetings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.create"
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

	meeting, err := h.service.Create(r.Context(), req.CourseName, req.Schedule, req.DurationMinutes, req.Recurrence)
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
		log.Error("failed to create meeting", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create meeting"))
		return
	}

	log.Info("meeting created", slog.Int64("meeting_id", meeting.ID))
	render.JSON(w, r, response.OKWithData(meeting))
}
