package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/api/handler"
	"github.com/truongminh05/VCI-Web/internal/api/middleware"
	"github.com/truongminh05/VCI-Web/pkg/metrics"
	"github.com/truongminh05/VCI-Web/pkg/redis"
)

// Deps collects what the router needs besides the handlers.
type Deps struct {
	Sessions middleware.SessionSource
	Redis    *redis.Client
	DB       *gorm.DB
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Setup builds the Gin engine.
func Setup(cfg *config.Config, h *handler.Handler, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if d.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, status)
	})

	if cfg.Metrics.Enabled && d.Gatherer != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	cookie := cfg.Auth.Cookie.Name
	wait := cfg.Auth.GuardWait

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// session endpoints never reject; the handlers answer per state
		auth := v1.Group("/auth")
		auth.Use(middleware.SessionLoader(d.Sessions, cookie, wait))
		{
			auth.POST("/login",
				middleware.RateLimit(d.Redis, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow),
				h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", h.Auth.Me)
			auth.POST("/refresh-profile", h.Auth.RefreshProfile)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminGuard(d.Sessions, cookie, wait))
		{
			admin.GET("/dashboard", h.Dashboard.Counts)

			classes := admin.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.POST("", h.Class.CreateClass)
				classes.GET("/:id/roster", h.Class.Roster)
				classes.POST("/:id/students", h.Class.AddStudent)
				classes.DELETE("/:id/students/:student_id", h.Class.RemoveStudent)
				classes.POST("/:id/import", h.Class.ImportRoster)
				classes.GET("/:id/meetings", h.Meeting.ListMeetings)
				classes.POST("/:id/meetings", h.Meeting.CreateMeeting)
			}

			subjects := admin.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.POST("", h.Subject.CreateSubject)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.PUT("/:id", h.Subject.UpdateSubject)
			}

			admin.GET("/teachers", h.Meeting.ListTeachers)

			users := admin.Group("/users")
			{
				users.GET("", h.User.ListUsers)
				users.POST("", h.User.CreateUser)
				users.GET("/check-code", h.User.CheckCode)
				users.DELETE("/:id", h.User.DisableUser)
			}

			students := admin.Group("/students")
			{
				students.GET("/lookup", h.Student.Lookup)
				students.PUT("/:id", h.Student.UpdateStudent)
			}

			accounts := admin.Group("/accounts")
			{
				accounts.POST("/bulk", h.Account.BulkCreate)
				accounts.GET("/distribution", h.Account.Distribution)
			}

			reports := admin.Group("/reports")
			{
				reports.GET("/attendance", h.Report.Attendance)
				reports.GET("/attendance/export", h.Report.ExportAttendance)
			}
		}
	}

	return r
}
