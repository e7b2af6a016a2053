package main

import (
	"context"
	"log"
	"os"
	"time"

	"draftdeck/internal/database"
	"draftdeck/internal/repository"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	res := db.Exec(
		`UPDATE users SET reset_token = NULL, reset_token_expiry = NULL WHERE reset_token_expiry < ?`,
		time.Now().UTC(),
	)
	if res.Error != nil {
		log.Fatalf("cleanup reset tokens failed: %v", res.Error)
	}

	chatRepo := repository.NewChatRepository(db)
	if err := chatRepo.DeleteOrphaned(context.Background()); err != nil {
		log.Fatalf("cleanup orphaned chat messages failed: %v", err)
	}

	log.Printf("auth cleanup completed: expired_reset_tokens=%d", res.RowsAffected)
}
