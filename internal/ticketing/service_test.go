package ticketing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rithysak/gatepass/internal/models"
)

const testSecret = "test-secret-key"

func newTestService(t *testing.T) *Service {
	t.Helper()

	// A named shared-cache DSN so every pooled connection sees the
	// same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Event{}, &models.Ticket{}))

	return NewService(db, testSecret)
}

func seedEvent(t *testing.T, svc *Service, id int, name, code string) models.Event {
	t.Helper()
	event := models.Event{ID: id, Name: name, Code: code}
	require.NoError(t, svc.db.Create(&event).Error)
	return event
}

func ticketCount(t *testing.T, svc *Service) int64 {
	t.Helper()
	var count int64
	require.NoError(t, svc.db.Model(&models.Ticket{}).Count(&count).Error)
	return count
}
