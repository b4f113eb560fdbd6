// Package list реализует HTTP-обработчик для получения записей пользователя на курсы.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kruenglish/course-platform/internal/http/response"
	"github.com/kruenglish/course-platform/internal/lib/sl"
	"github.com/kruenglish/course-platform/internal/models"
)

// Handler управляет HTTP-запросами на список записей пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс воркфлоу записи на курс.
type Service interface {
	ListUserEnrollments(ctx context.Context, userID int) ([]*models.EnrollmentWithCourse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Записи пользователя
// @Description Возвращает записи пользователя на курсы вместе с данными курсов.
// @Tags Enrollments
// @Produce json
// @Param user_id path int true "ID пользователя"
// @Success 200 {object} response.Response "Список записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /enrollments/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	enrollments, err := h.service.ListUserEnrollments(r.Context(), userID)
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list enrollments"))
		return
	}

	render.JSON(w, r, response.OKWithData(enrollments))
}
