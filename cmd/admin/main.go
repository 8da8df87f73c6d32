// Command admin bootstraps the first user account against the database
// directly, bypassing the HTTP API. Useful on a fresh deployment when no
// account exists to authenticate with.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/logging"
	"github.com/ummataliyev/estatehub/internal/server/auth"
	"github.com/ummataliyev/estatehub/internal/server/config"
	"github.com/ummataliyev/estatehub/internal/server/services"
	"github.com/ummataliyev/estatehub/internal/server/uow"
)

// readPassword is a seam for term.ReadPassword.
var readPassword = term.ReadPassword

func getPassword() (string, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func run(ctx context.Context) error {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	dsn := flag.String("d", defaults.DatabaseDSN, "database DSN")
	email := flag.String("u", "", "email for the new user")
	migrate := flag.Bool("m", false, "apply migrations before creating the user")
	flag.Parse()

	if *email == "" {
		return fmt.Errorf("%w: -u email is required", common.ErrInvalidArgument)
	}

	password, err := getPassword()
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: empty password", common.ErrInvalidArgument)
	}

	manager, err := uow.NewManager(*dsn)
	if err != nil {
		return err
	}
	defer manager.Close()

	if *migrate {
		if err := manager.RunMigrations(ctx); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	svc := services.NewUserService(manager.DB(),
		auth.NewBcryptHasher(bcrypt.DefaultCost), defaults.MaxPageSize, logging.NewNopLogger())

	user, err := svc.Create(ctx, *email, password)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return fmt.Errorf("user %s already exists", *email)
		}
		return err
	}

	fmt.Printf("created user %d (%s)\n", user.ID, user.Email)
	return nil
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
