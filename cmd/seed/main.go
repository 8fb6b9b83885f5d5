// Command seed populates the database with development data.
package main

import (
	"flag"
	"log"

	"gastronet/internal/config"
	"gastronet/internal/database"
	"gastronet/internal/middleware"
	"gastronet/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Optional YAML fixture file applied before generated data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}
	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
	})

	if *shouldClean {
		if err := seeder.ClearAll(); err != nil {
			log.Fatalf("cleanup failed: %v", err)
		}
	}

	if err := seed.Suppliers(db); err != nil {
		log.Fatalf("built-in supplier seeding failed: %v", err)
	}

	if *fixtures != "" {
		f, err := seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("fixture load failed: %v", err)
		}
		if err := f.Apply(db); err != nil {
			log.Fatalf("fixture apply failed: %v", err)
		}
		log.Printf("applied fixtures from %s", *fixtures)
	}

	users, err := seeder.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("user seeding failed: %v", err)
	}
	if _, err := seeder.SeedEngagement(users, *numPosts); err != nil {
		log.Fatalf("engagement seeding failed: %v", err)
	}

	log.Println("seeding complete; all generated users have the password password123")
}
