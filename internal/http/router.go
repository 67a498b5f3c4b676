package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/telecom/internal/auth"
	"github.com/mrlokans/telecom/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	if cfg.RequestLogging {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before the session so the session context survives the
	// request replacement done by gorilla/csrf.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadAndSave())
	}

	mw := auth.NewMiddleware(cfg.SessionManager)
	router.Use(mw.Handler())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", mw.Require(auth.CommandHealth), health.Status)

	api := router.Group("/api")

	if cfg.AuthService != nil {
		authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.LoginLimiter, log)
		api.GET("/auth/me", mw.Require(auth.CommandHome), authController.Me)
		api.POST("/auth/register", mw.Require(auth.CommandRegister), authController.Register)
		api.POST("/auth/login", mw.Require(auth.CommandLogin), authController.Login)
		api.POST("/auth/logout", mw.Require(auth.CommandLogout), authController.Logout)
	}

	if cfg.Subscribers != nil && cfg.Services != nil && cfg.Invoices != nil {
		subs := NewSubscribersController(cfg.Subscribers, cfg.Services, cfg.Invoices, log)
		api.GET("/subscribers", mw.Require(auth.CommandListSubscribers), subs.List)
		api.POST("/subscribers", mw.Require(auth.CommandAddSubscriber), subs.Create)
		api.GET("/subscribers/:id", mw.Require(auth.CommandSubscriberDetails), subs.Details)
		api.POST("/subscribers/:id/block", mw.Require(auth.CommandBlockSubscriber), subs.Block)
		api.POST("/subscribers/:id/services", mw.Require(auth.CommandLinkService), subs.LinkService)
	}

	if cfg.Services != nil {
		svcs := NewServicesController(cfg.Services, log)
		api.GET("/services", mw.Require(auth.CommandListServices), svcs.List)
		api.POST("/services", mw.Require(auth.CommandAddService), svcs.Create)
	}

	if cfg.Invoices != nil {
		invs := NewInvoicesController(cfg.Invoices, log)
		api.GET("/invoices/unpaid", mw.Require(auth.CommandListUnpaid), invs.ListUnpaid)
		api.POST("/invoices", mw.Require(auth.CommandAddInvoice), invs.Create)
		api.POST("/invoices/:id/pay", mw.Require(auth.CommandPayInvoice), invs.Pay)
	}

	if cfg.Seeder != nil {
		admin := NewAdminController(cfg.Seeder, log)
		api.POST("/admin/init-data", mw.Require(auth.CommandInitData), admin.InitData)
	}

	return router
}
