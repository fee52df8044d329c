package server

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rithysak/gatepass/config"
	"github.com/rithysak/gatepass/internal/handlers"
	"github.com/rithysak/gatepass/internal/middleware"
	"github.com/rithysak/gatepass/internal/notify"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	mailerCfg, err := config.LoadMailerConfig()
	if err != nil {
		return fmt.Errorf("failed to load mailer config: %v", err)
	}

	var mailer notify.Mailer
	if mailerCfg.APIKey != "" {
		mailer = notify.NewMailerSendMailer(mailerCfg.APIKey, mailerCfg.FromName, mailerCfg.FromAddress)
	} else {
		log.Println("MAILERSEND_API_KEY not set, ticket emails disabled")
	}

	r := gin.Default()

	setupRoutes(r, db, mailer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, mailer notify.Mailer) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.MailerMiddleware(mailer))

	public := r.Group("/v1")
	{
		public.GET("/events", handlers.ListEvents)
		public.POST("/register", handlers.IssueTickets)
		public.POST("/admin/login", handlers.AdminLogin)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	{
		admin.POST("/tickets", handlers.IssueTickets)
		admin.POST("/tickets/resend", handlers.ResendTickets)
		admin.GET("/tickets/:id/qr", handlers.TicketQR)
		admin.POST("/verify", handlers.VerifyTicket)
		admin.GET("/attendance", handlers.GetAttendance)
	}
}
