// Command adminuser creates or updates a dashboard admin account. Existing
// accounts with the same email get their password replaced.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/komolbek/expostandai/internal/sqlinline"
)

func main() {
	var (
		emailFlag    string
		passwordFlag string
	)

	flag.StringVar(&emailFlag, "email", "", "admin email address")
	flag.StringVar(&passwordFlag, "password", "", "admin password (min 8 characters)")
	flag.Parse()

	email := strings.ToLower(strings.TrimSpace(emailFlag))
	password := passwordFlag

	if email == "" || !strings.Contains(email, "@") {
		exitWithError(errors.New("-email must be a valid address"))
	}
	if len(password) < 8 {
		exitWithError(errors.New("-password must be at least 8 characters"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		exitWithError(fmt.Errorf("failed to hash password: %w", err))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var id string
	if err := db.QueryRowContext(ctx, sqlinline.QInsertAdmin, email, string(hash)).Scan(&id); err != nil {
		exitWithError(fmt.Errorf("failed to upsert admin user: %w", err))
	}

	fmt.Printf("Admin %s (%s) is ready\n", id, email)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
