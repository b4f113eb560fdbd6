// Package courseplatform предоставляет маршруты для основного приложения.
package courseplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	admincontacts "github.com/kruenglish/course-platform/internal/http/handlers/admin/contacts"
	adminlogin "github.com/kruenglish/course-platform/internal/http/handlers/admin/login"
	adminpayments "github.com/kruenglish/course-platform/internal/http/handlers/admin/payments"
	adminstats "github.com/kruenglish/course-platform/internal/http/handlers/admin/stats"
	assistantchat "github.com/kruenglish/course-platform/internal/http/handlers/assistant/chat"
	assistantrecommend "github.com/kruenglish/course-platform/internal/http/handlers/assistant/recommend"
	contactcreate "github.com/kruenglish/course-platform/internal/http/handlers/contact/create"
	coursecreate "github.com/kruenglish/course-platform/internal/http/handlers/course/create"
	courselist "github.com/kruenglish/course-platform/internal/http/handlers/course/list"
	courseread "github.com/kruenglish/course-platform/internal/http/handlers/course/read"
	enrollmentlist "github.com/kruenglish/course-platform/internal/http/handlers/enrollment/list"
	"github.com/kruenglish/course-platform/internal/http/handlers/health"
	leveltestsubmit "github.com/kruenglish/course-platform/internal/http/handlers/leveltest/submit"
	meetingbulkcreate "github.com/kruenglish/course-platform/internal/http/handlers/meeting/bulkcreate"
	meetingcreate "github.com/kruenglish/course-platform/internal/http/handlers/meeting/create"
	meetinglist "github.com/kruenglish/course-platform/internal/http/handlers/meeting/list"
	meetingread "github.com/kruenglish/course-platform/internal/http/handlers/meeting/read"
	meetingremove "github.com/kruenglish/course-platform/internal/http/handlers/meeting/remove"
	meetingupdate "github.com/kruenglish/course-platform/internal/http/handlers/meeting/update"
	paymentconfirm "github.com/kruenglish/course-platform/internal/http/handlers/payment/confirm"
	paymentintentcreate "github.com/kruenglish/course-platform/internal/http/handlers/payment/intentcreate"
	schedulecreate "github.com/kruenglish/course-platform/internal/http/handlers/schedule/create"
	schedulelist "github.com/kruenglish/course-platform/internal/http/handlers/schedule/list"
	teachercreate "github.com/kruenglish/course-platform/internal/http/handlers/teacher/create"
	teacherlist "github.com/kruenglish/course-platform/internal/http/handlers/teacher/list"
	"github.com/kruenglish/course-platform/internal/http/middlewarectx"
	"github.com/kruenglish/course-platform/internal/lib/jwt"
	adminservice "github.com/kruenglish/course-platform/internal/services/admin"
	assistantservice "github.com/kruenglish/course-platform/internal/services/assistant"
	contactservice "github.com/kruenglish/course-platform/internal/services/contact"
	courseservice "github.com/kruenglish/course-platform/internal/services/course"
	enrollmentservice "github.com/kruenglish/course-platform/internal/services/enrollment"
	leveltestservice "github.com/kruenglish/course-platform/internal/services/leveltest"
	meetingservice "github.com/kruenglish/course-platform/internal/services/meeting"
)

// Services сервисы, используемые маршрутами приложения.
type Services struct {
	Enrollment *enrollmentservice.Service
	Course     *courseservice.Service
	LevelTest  *leveltestservice.Service
	Contact    *contactservice.Service
	Meeting    *meetingservice.Service
	Assistant  *assistantservice.Service
	Admin      *adminservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokenMaker jwt.Maker, services *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки витрины
		r.Get("/courses", courselist.New(logger, services.Course).ServeHTTP)
		r.Get("/courses/{id}", courseread.New(logger, services.Course).ServeHTTP)
		r.Get("/teachers", teacherlist.New(logger, services.Course).ServeHTTP)
		r.Get("/schedules", schedulelist.New(logger, services.Course).ServeHTTP)
		r.Post("/contacts", contactcreate.New(logger, services.Contact).ServeHTTP)
		r.Post("/level-tests", leveltestsubmit.New(logger, services.LevelTest).ServeHTTP)
		r.Post("/assistant/chat", assistantchat.New(logger, services.Assistant).ServeHTTP)
		r.Post("/assistant/recommend", assistantrecommend.New(logger, services.Assistant).ServeHTTP)

		// Оформление записи и оплата
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/payment-intents", paymentintentcreate.New(logger, services.Enrollment).ServeHTTP)
			r.Post("/payment-confirmations", paymentconfirm.New(logger, services.Enrollment).ServeHTTP)
		})
		r.Get("/enrollments/{user_id}", enrollmentlist.New(logger, services.Enrollment).ServeHTTP)

		// Панель администратора
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminlogin.New(logger, services.Admin).ServeHTTP)

			// Защищённые маршруты, доступ по JWT
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.JWTMiddleware(tokenMaker, logger))
				r.Use(middlewarectx.RequireRole("admin", logger))
				r.Get("/stats", adminstats.New(logger, services.Admin).ServeHTTP)
				r.Get("/payments", adminpayments.New(logger, services.Admin).List)
				r.Post("/payments/refund", adminpayments.New(logger, services.Admin).Refund)
				r.Get("/contacts", admincontacts.New(logger, services.Contact).ServeHTTP)
				r.Post("/courses", coursecreate.New(logger, services.Course).ServeHTTP)
				r.Post("/teachers", teachercreate.New(logger, services.Course).ServeHTTP)
				r.Post("/schedules", schedulecreate.New(logger, services.Course).ServeHTTP)

				r.Post("/meetings", meetingcreate.New(logger, services.Meeting).ServeHTTP)
				r.Get("/meetings", meetinglist.New(logger, services.Meeting).ServeHTTP)
				r.Get("/meetings/{id}", meetingread.New(logger, services.Meeting).ServeHTTP)
				r.Patch("/meetings/{id}", meetingupdate.New(logger, services.Meeting).ServeHTTP)
				r.Delete("/meetings/{id}", meetingremove.New(logger, services.Meeting).ServeHTTP)
				r.Post("/meetings/bulk", meetingbulkcreate.New(logger, services.Meeting).ServeHTTP)
			})
		})

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
