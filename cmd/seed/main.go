// Command seed populates the configured database with demo forum data.
package main

import (
	"context"
	"flag"
	"log"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/repository"
	"agora/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	threads := flag.Int("threads", 5, "number of threads to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		log.Fatalf("seeding requires DB_DRIVER=postgres, got %q", cfg.DBDriver)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	factory := seed.NewFactory(
		repository.NewUserRepository(db),
		repository.NewThreadRepository(db, nil),
		repository.NewCommentRepository(db, nil),
		repository.NewReplyRepository(db, nil),
	)

	opts := seed.DefaultOptions()
	opts.Users = *users
	opts.Threads = *threads

	if err := factory.Run(context.Background(), opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
