// Package main is the entry point for the backctl admin CLI: migrations,
// demo seeding, and principal management against the SQLite store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"backoffice/internal/app"
	"backoffice/internal/config"
	internaldb "backoffice/internal/db"
	"backoffice/internal/db/repository"
	"backoffice/internal/domain"
	"backoffice/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "backctl",
		Short:         "Back-office administration CLI",
		Long:          "Command-line interface for managing the back-office store: migrations, seeding, and principals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")

	rootCmd.AddCommand(newMigrateCmd(&configFile))
	rootCmd.AddCommand(newSeedCmd(&configFile))
	rootCmd.AddCommand(newCreatePrincipalCmd(&configFile, domain.KindAdmin))
	rootCmd.AddCommand(newCreatePrincipalCmd(&configFile, domain.KindCustomer))
	return rootCmd
}

// loadConfig applies .env, the optional YAML file, and the environment.
func loadConfig(configFile string) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}
	return config.Load(configFile)
}

func openWriteDB(cfg *config.Config) (*repository.PrincipalRepo, func(), error) {
	db, err := internaldb.OpenSQLite(cfg.DBPath, "write", 0)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := internaldb.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return repository.NewPrincipalRepo(db), func() { db.Close() }, nil
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			db, err := internaldb.OpenSQLite(cfg.DBPath, "write", 0)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := internaldb.RunMigrations(db); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}

func newSeedCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo principals, products, and orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to seed demo data in production")
			}
			db, err := internaldb.OpenSQLite(cfg.DBPath, "write", 0)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := internaldb.RunMigrations(db); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			principals := repository.NewPrincipalRepo(db)
			products := repository.NewProductRepo(db)
			orders := repository.NewOrderRepo(db)
			if err := app.SeedDemoData(context.Background(), principals, products, orders, logger); err != nil {
				return err
			}
			cmd.Println("demo data seeded")
			return nil
		},
	}
}

func newCreatePrincipalCmd(configFile *string, kind domain.PrincipalKind) *cobra.Command {
	var (
		email string
		name  string
	)

	use := "create-admin"
	short := "Create an operator account"
	if kind == domain.KindCustomer {
		use = "create-customer"
		short = "Create a customer account"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if name == "" {
				name = email
			}

			secret, err := promptSecret(cmd)
			if err != nil {
				return err
			}
			hash, err := service.HashSecret(secret)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			principals, closeDB, err := openWriteDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			p, err := principals.Create(cmd.Context(), &domain.Principal{
				Kind:        kind,
				DisplayName: name,
				Email:       email,
				SecretHash:  hash,
			})
			if err != nil {
				return err
			}
			cmd.Printf("created %s %s (%s)\n", kind, p.Email, p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "sign-in email (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to email)")
	return cmd
}

// promptSecret reads the password without echo, twice, and checks they match.
func promptSecret(cmd *cobra.Command) (string, error) {
	cmd.Print("Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	cmd.Print("Confirm: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	secret := strings.TrimSpace(string(first))
	if secret == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	if secret != strings.TrimSpace(string(second)) {
		return "", fmt.Errorf("passwords do not match")
	}
	return secret, nil
}
