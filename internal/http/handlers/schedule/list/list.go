// Package list реализует HTTP-обработчик для получения расписания занятий по типу курса.
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

// Handler управляет HTTP-запросами на получение расписания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	Schedules(ctx context.Context, courseType string) ([]*models.ScheduleWithTeacher, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Расписание занятий
// @Description Возвращает слоты занятий для типа курса вместе с данными преподавателей.
// @Tags Schedules
// @Produce json
// @Param type query string true "Тип курса: general, cefr или combo"
// @Success 200 {object} response.Response "Слоты занятий"
// @Failure 400 {object} response.ErrorResponse "Не указан тип курса"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /schedules [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseType := r.URL.Query().Get("type")
	if courseType == "" {
		log.Error("missing course type")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter type is required"))
		return
	}

	schedules, err := h.service.Schedules(r.Context(), courseType)
	if err != nil {
		log.Error("failed to list schedules", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list schedules"))
		return
	}

	render.JSON(w, r, response.OKWithData(schedules))
}
