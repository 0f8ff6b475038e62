// Command main runs the database seeder for Quill.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numGroups := flag.Int("groups", 5, "Number of groups to create")
	numPosts := flag.Int("posts", 150, "Number of posts to create")
	numComments := flag.Int("comments", 300, "Number of comments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d groups, %d posts, %d comments, clean=%v\n",
		*numUsers, *numGroups, *numPosts, *numComments, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumGroups:   *numGroups,
		NumPosts:    *numPosts,
		NumComments: *numComments,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
