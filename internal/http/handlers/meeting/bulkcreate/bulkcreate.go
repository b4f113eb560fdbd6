// Package bulkcreate реализует HTTP-обработчик массового создания занятий
// для всех расписаний всех курсов.
package bulkcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/services/meeting"
)

// Request тело запроса массового создания.
type Request struct {
	DurationMinutes int `json:"duration_minutes,omitempty"`
}

// Handler управляет HTTP-запросами массового создания занятий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики занятий.
type Service interface {
	BulkCreate(ctx context.Context, durationMinutes int) (*meeting.BulkResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать занятия по всем расписаниям
// @Description Создаёт занятие для каждого слота расписания каждого курса. Неудачи по отдельным слотам не прерывают остальные.
// @Tags Meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request false "Длительность занятий в минутах"
// @Success 200 {object} response.Response "Итог создания с результатами по слотам"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/meetings/bulk [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.bulkcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if r.Body != nil {
		// Тело опционально, ошибки разбора пустого тела игнорируются.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.service.BulkCreate(r.Context(), req.DurationMinutes)
	if err != nil {
		log.Error("failed to bulk create meetings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create meetings"))
		return
	}

	log.Info("bulk meeting creation finished",
		slog.Int("total", result.Total),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed))
	render.JSON(w, r, response.OKWithData(result))
}
