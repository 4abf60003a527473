// Command adminctl seeds an ADMIN account directly in the credential
// store. Registration over HTTP only creates regular roles, so the
// first administrator has to come from here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/medimart/medimart/internal/crypto"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/server/storage/sqlite"
)

func main() {
	dbPath := flag.String("db", "medimart.db", "Path to the SQLite database")
	name := flag.String("name", "", "Admin display name")
	email := flag.String("email", "", "Admin email")
	flag.Parse()

	if *name == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "both -name and -email are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*dbPath, *name, *email); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dbPath, name, email string) error {
	ctx := context.Background()

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("admin %s created (id %s)\n", email, user.ID)
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pwBytes), nil
}
