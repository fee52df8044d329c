package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rithysak/gatepass/internal/notify"
)

func MailerMiddleware(mailer notify.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("mailer", mailer)
		c.Next()
	}
}

func GetMailer(c *gin.Context) notify.Mailer {
	mailer, exists := c.Get("mailer")
	if !exists {
		return nil
	}
	if m, ok := mailer.(notify.Mailer); ok {
		return m
	}
	return nil
}
