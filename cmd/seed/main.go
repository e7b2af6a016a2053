package main

import (
	"context"
	"log"
	"os"

	"draftdeck/internal/database"
	"draftdeck/internal/domain"
	"draftdeck/internal/pkg/password"
	"draftdeck/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "draftdeck.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM chat_messages")
	db.Exec("DELETE FROM documents")
	db.Exec("DELETE FROM waitlist_entries")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	docs := repository.NewDocumentRepository(db)
	waitlist := repository.NewWaitlistRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, err := password.Hash("admin123")
	if err != nil {
		log.Fatal(err)
	}
	admin := &domain.User{
		Email:        "admin@draftdeck.app",
		PasswordHash: adminHash,
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		BetaStatus:   domain.BetaApproved,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("create admin:", err)
	}
	log.Println("Admin created: admin@draftdeck.app / admin123")

	writerHash, err := password.Hash("writer123")
	if err != nil {
		log.Fatal(err)
	}
	writer := &domain.User{
		Email:        "writer@example.com",
		PasswordHash: writerHash,
		Name:         "Demo Writer",
		Role:         domain.RoleUser,
		BetaStatus:   domain.BetaApproved,
	}
	if err := users.Create(ctx, writer); err != nil {
		log.Fatal("create writer:", err)
	}
	log.Println("Writer created: writer@example.com / writer123")

	// ================== DOCUMENTS ==================
	log.Println("Creating sample document...")
	doc := &domain.Document{
		OwnerID:   writer.ID,
		Title:     "Welcome to DraftDeck",
		Content:   "Start writing here. Use the assistant to expand, rewrite or polish your draft.",
		WordCount: 14,
	}
	if err := docs.Create(ctx, doc); err != nil {
		log.Fatal("create document:", err)
	}

	// ================== WAITLIST ==================
	log.Println("Creating waitlist entries...")
	pending := []domain.WaitlistEntry{
		{Email: "early.bird@example.com", Name: "Early Bird", Status: domain.WaitlistPending},
		{Email: "curious@example.com", Name: "Curious Tester", Status: domain.WaitlistPending},
	}
	for i := range pending {
		if err := waitlist.Create(ctx, &pending[i]); err != nil {
			log.Fatal("create waitlist entry:", err)
		}
	}

	log.Println("Seed completed")
}
