// Command admin manages admin accounts from the shell. It exists for
// bootstrapping the first admin; after that the API endpoints cover
// promotion and demotion.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gastronet/internal/config"
	"gastronet/internal/database"
	"gastronet/internal/middleware"
	"gastronet/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <handle>     - Promote user to admin")
		fmt.Println("  go run ./cmd/admin/main.go demote <handle>      - Demote user from admin")
		fmt.Println("  go run ./cmd/admin/main.go list-admins          - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <handle>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], true)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <handle>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], false)

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func setAdmin(db *gorm.DB, handle string, admin bool) {
	var user models.User
	if err := db.Where("handle = ?", handle).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User %q not found\n", handle)
		} else {
			log.Fatalf("database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsAdmin == admin {
		if admin {
			fmt.Printf("%s (ID: %d) is already an admin\n", user.Handle, user.ID)
		} else {
			fmt.Printf("%s (ID: %d) is not an admin\n", user.Handle, user.ID)
		}
		return
	}

	user.IsAdmin = admin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("failed to update user: %v", err)
	}

	if admin {
		fmt.Printf("promoted %s (ID: %d) to admin\n", user.Handle, user.ID)
	} else {
		fmt.Printf("demoted %s (ID: %d) from admin\n", user.Handle, user.ID)
	}
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}

	for _, admin := range admins {
		fmt.Printf("ID: %d | Handle: %s | Email: %s\n", admin.ID, admin.Handle, admin.Email)
	}
}
