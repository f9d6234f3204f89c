package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/infrastructure"
	"lovepages-admin/internal/repository"
	"lovepages-admin/internal/usecases"
)

// authService is the slice of the auth usecase the handlers consume.
type authService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Identity(ctx context.Context, userID int) (*entities.User, error)
}

type Handler struct {
	authUsecase      authService
	dashboardUsecase *usecases.DashboardUsecase
	notifications    *usecases.NotificationService
	userRepo         *repository.UserRepository
	pageRepo         *repository.PageRepository
	contactRepo      *repository.ContactRepository
	notificationRepo *repository.NotificationRepository
	templateRepo     *repository.TemplateRepository
	auditLog         *infrastructure.AuditLog
	frontendURL      string
}

type Deps struct {
	Auth          *usecases.AuthUsecase
	Dashboard     *usecases.DashboardUsecase
	Notifications *usecases.NotificationService
	Users         *repository.UserRepository
	Pages         *repository.PageRepository
	Contacts      *repository.ContactRepository
	NotifRepo     *repository.NotificationRepository
	Templates     *repository.TemplateRepository
	Audit         *infrastructure.AuditLog
	FrontendURL   string
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		authUsecase:      d.Auth,
		dashboardUsecase: d.Dashboard,
		notifications:    d.Notifications,
		userRepo:         d.Users,
		pageRepo:         d.Pages,
		contactRepo:      d.Contacts,
		notificationRepo: d.NotifRepo,
		templateRepo:     d.Templates,
		auditLog:         d.Audit,
		frontendURL:      d.FrontendURL,
	}
}

func SetupRoutes(r *gin.Engine, h *Handler, middleware *Middleware) {
	// Apply Security Middleware
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(10 << 20)) // 10MB max request size
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public Auth Routes
	r.POST("/api/auth/login", h.Login)

	// Authenticated routes
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/auth/me", h.Me)
	}

	// Admin-only routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired())
	admin.Use(middleware.AdminRequired())
	admin.Use(middleware.RateLimitPerUser(10, 20))
	{
		admin.GET("/dashboard", h.GetDashboardStats)
		admin.GET("/audit", h.GetAuditLog)

		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)

		admin.GET("/pages", h.ListPages)
		admin.GET("/pages/:id", h.GetPage)
		admin.PATCH("/pages/:id/toggle", h.TogglePage)
		admin.DELETE("/pages/:id", h.DeletePage)
		admin.GET("/pages/:id/qr", h.GetPageQR)

		admin.GET("/contacts", h.ListContacts)
		admin.GET("/contacts/:id", h.GetContact)
		admin.PATCH("/contacts/:id", h.UpdateContact)
		admin.POST("/contacts/:id/reply", h.ReplyContact)
		admin.DELETE("/contacts/:id", h.DeleteContact)

		admin.GET("/templates", h.ListTemplates)
		admin.POST("/templates", h.CreateTemplate)
		admin.PATCH("/templates/:id", h.UpdateTemplate)
		admin.PATCH("/templates/:id/toggle", h.ToggleTemplate)
		admin.DELETE("/templates/:id", h.DeleteTemplate)
		admin.POST("/templates/preview", h.PreviewTemplate)
	}

	// Notification admin routes keep the consumer backend's path layout so
	// the console can share one client.
	notif := r.Group("/api/notifications/admin")
	notif.Use(middleware.AuthRequired())
	notif.Use(middleware.AdminRequired())
	notif.Use(middleware.RateLimitPerUser(10, 20))
	{
		notif.POST("/send", h.SendNotification)
		notif.POST("/broadcast", h.BroadcastNotification)
		notif.POST("/send-bulk", h.SendBulkNotifications)
		notif.GET("/all", h.ListNotifications)
		notif.GET("/stats", h.GetNotificationStats)
		notif.DELETE("/:id", h.DeleteNotification)
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// audit records an admin mutation. Failures are logged, never surfaced.
func (h *Handler) audit(c *gin.Context, resource string, targetID int, action, detail string) {
	if h.auditLog == nil {
		return
	}
	adminID := 0
	if v, ok := c.Get("current_user"); ok {
		if u, ok := v.(*entities.User); ok {
			adminID = u.ID
		}
	}
	if err := h.auditLog.Record(c.Request.Context(), adminID, resource, strconv.Itoa(targetID), action, detail); err != nil {
		log.Printf("audit record failed: %v", err)
	}
}

// GetAuditLog returns recent admin actions from the local audit store.
func (h *Handler) GetAuditLog(c *gin.Context) {
	if h.auditLog == nil {
		respondOK(c, []infrastructure.AuditEntry{})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.auditLog.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to read audit log")
		return
	}
	if entries == nil {
		entries = []infrastructure.AuditEntry{}
	}
	respondOK(c, entries)
}
