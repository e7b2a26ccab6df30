// Command createadmin creates a superuser account, or deletes an account with -delete.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/recipe-service/internal/config"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/observability"
	"github.com/spec-kit/recipe-service/internal/persistence"
	"github.com/spec-kit/recipe-service/internal/repository"
	"github.com/spec-kit/recipe-service/internal/service"
)

type options struct {
	email    string
	password string
	delete   bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.email, "email", "", "account email (required)")
	fs.StringVar(&opts.password, "password", "", "account password; prompted when omitted")
	fs.BoolVar(&opts.delete, "delete", false, "delete the account and its recipes instead of creating it")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.email == "" {
		return opts, errors.New("-email is required")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()
	if !pg.Enabled() {
		return errors.New("POSTGRES_DSN is required")
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	repos := repository.NewPostgresRepositories(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()
	accounts := service.NewAccountService(service.AccountDependencies{
		AccountRepo: repos.Accounts,
		RecipeRepo:  repos.Recipes,
		Dispatcher:  dispatcher,
		BcryptCost:  cfg.Auth.BcryptCost,
	})

	logger.Debug("createadmin", zap.String("email", opts.email), zap.Bool("delete", opts.delete))
	return execute(ctx, opts, accounts, os.Stdin, os.Stdout)
}

func execute(ctx context.Context, opts options, accounts *service.AccountService, stdin io.Reader, stdout io.Writer) error {
	if opts.delete {
		account, err := accounts.GetAccountByEmail(ctx, opts.email)
		if err != nil {
			return err
		}
		if err := accounts.DeleteAccount(ctx, account.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Account %s deleted.\n", account.Email)
		return nil
	}

	password := opts.password
	if password == "" {
		var err error
		if password, err = promptPassword(stdin, stdout); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	account, err := accounts.CreateAdminAccount(ctx, opts.email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Superuser %s created.\n", account.Email)
	return nil
}
