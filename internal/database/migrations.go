package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/daybook-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the list and sweep queries rely on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Owned todo listing sorted by due date
		{&models.Todo{}, "todos", "idx_todos_user_due", "user_id, due_date"},
		// Reminder sweep
		{&models.Todo{}, "todos", "idx_todos_status_due", "status, due_date"},

		// Recommendation and trending aggregation
		{&models.PlayHistory{}, "play_histories", "idx_play_histories_user_created", "user_id, created_at"},
		{&models.PlayHistory{}, "play_histories", "idx_play_histories_song_created", "song_id, created_at"},

		// Notification inbox
		{&models.Notification{}, "notifications", "idx_notifications_user_date", "user_id, date"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
