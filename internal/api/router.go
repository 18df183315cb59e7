package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/quillchat/quill/internal/app"
	iauth "github.com/quillchat/quill/internal/auth"
	"github.com/quillchat/quill/internal/handlers"
	"github.com/quillchat/quill/internal/middleware"
	"github.com/quillchat/quill/internal/realtime"
	"github.com/quillchat/quill/internal/services"
	"github.com/quillchat/quill/pkg/mail"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, rateStore middleware.RateStore, hub *realtime.Hub) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if hub == nil {
		hub = realtime.NewHub()
	}

	auditSvc, err := services.NewAuditService(db)
	if err != nil {
		return nil, err
	}
	userSvc, err := services.NewUserService(db, auditSvc)
	if err != nil {
		return nil, err
	}
	orgSvc, err := services.NewOrganizationService(db)
	if err != nil {
		return nil, err
	}
	workspaceSvc, err := services.NewWorkspaceService(db, auditSvc)
	if err != nil {
		return nil, err
	}
	channelSvc, err := services.NewChannelService(db, workspaceSvc, auditSvc)
	if err != nil {
		return nil, err
	}

	mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
	if err != nil {
		return nil, err
	}

	inviteSvc, err := services.NewInviteService(db, jwt, userSvc, workspaceSvc, channelSvc, auditSvc,
		services.WithInviteMailer(mailer),
		services.WithInviteBroadcaster(hub),
		services.WithInviteBaseURL(cfg.Server.BaseURL),
	)
	if err != nil {
		return nil, err
	}

	messageSvc, err := services.NewMessageService(db, channelSvc, hub, auditSvc)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	if rateStore == nil {
		rateStore = middleware.NewMemoryRateStore()
	}
	maxRequests := cfg.Server.RateLimit.Requests
	window := cfg.Server.RateLimit.Window
	if window <= 0 {
		window = time.Minute
	}
	r.Use(middleware.RateLimit(rateStore, maxRequests, window))

	r.GET("/health", handlers.Health(db))

	requireAuth := middleware.Auth(jwt)
	api := r.Group("/api")
	api.Use(requireAuth)

	registerAuthRoutes(r, api, authRouteDeps{
		AuthHandler: handlers.NewAuthHandler(userSvc, jwt),
	})
	registerWorkspaceRoutes(r, api, workspaceRouteDeps{
		WorkspaceHandler: handlers.NewWorkspaceHandler(workspaceSvc, orgSvc, inviteSvc),
	})
	registerChannelRoutes(r, api, channelRouteDeps{
		ChannelHandler: handlers.NewChannelHandler(channelSvc, workspaceSvc, inviteSvc),
	})
	registerMessageRoutes(api, messageRouteDeps{
		MessageHandler: handlers.NewMessageHandler(messageSvc),
	})
	registerUserRoutes(api, userRouteDeps{
		UserHandler:         handlers.NewUserHandler(userSvc),
		OrganizationHandler: handlers.NewOrganizationHandler(orgSvc),
	})
	registerRealtimeRoutes(r, realtimeRouteDeps{
		RealtimeHandler: handlers.NewRealtimeHandler(hub, jwt, channelSvc),
	})

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
