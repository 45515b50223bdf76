// cmd/initadmin/main.go
// Creates or updates the admin account in the database.
//
// Usage:
//
//	go run ./cmd/initadmin -username admin -email admin@example.com -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/pokedexapi/config"
	bundb "github.com/padraicbc/pokedexapi/db"
	"github.com/padraicbc/pokedexapi/models"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(context.Background(), db); err != nil {
		log.Fatal("create tables:", err)
	}

	user := &models.User{
		Username: *username,
		Email:    *email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET email = EXCLUDED.email, password = EXCLUDED.password, role = EXCLUDED.role").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert admin:", err)
	}

	fmt.Printf("admin %q saved\n", *username)
}
