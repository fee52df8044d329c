package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/helpers"
	"github.com/rithysak/gatepass/internal/models"
)

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var events []models.Event
	if err := gormDB.Order("id ASC").Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	if len(events) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No events found.")
		return
	}

	c.JSON(http.StatusOK, events)
}
