package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"ferryops/internal/adapters/in/http/auth"
	"ferryops/internal/adapters/out/postgres"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand returns the ferryops CLI.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "ferryops",
		Short:         "Supply orders, ferry bookings and supplier chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	root.AddCommand(
		newServeCommand(&envFile),
		newMigrateCommand(&envFile),
		newTokenCommand(&envFile),
	)
	return root
}

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, chat relay and scheduled jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*envFile)
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return Serve(ctx, cfg, logger)
		},
	}
}

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*envFile)
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg)
			if err != nil {
				return err
			}

			db, err := postgres.Open(cfg.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			logger.Info("schema is up to date", zap.String("database", cfg.DBName))
			return nil
		},
	}
}

// newTokenCommand issues a signed token for local development; the service
// itself has no login.
func newTokenCommand(envFile *string) *cobra.Command {
	var (
		id     string
		role   string
		ttl    time.Duration
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed development token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*envFile)
			if err != nil {
				return err
			}

			r, err := auth.ParseRole(role)
			if err != nil {
				return err
			}
			subject := kernel.NewUUID()
			if id != "" {
				if subject, err = kernel.UUIDFromString(id); err != nil {
					return err
				}
			}
			if ttl == 0 {
				ttl = cfg.JWTTTL
			}
			if verify && r == auth.RoleSupplier {
				if err = checkSupplierSignIn(cmd.Context(), cfg.DSN(), subject); err != nil {
					return err
				}
			}

			token, err := auth.NewGate(cfg.JWTSecret).Issue(subject, r, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "subject id (random when empty)")
	cmd.Flags().StringVar(&role, "role", "", "supplier, inventory, finance, passenger or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "lifetime (JWT_TTL when zero)")
	cmd.Flags().BoolVar(&verify, "verify", false, "refuse supplier tokens unless the supplier is active")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func checkSupplierSignIn(ctx context.Context, dsn string, id kernel.UUID) error {
	db, err := postgres.Open(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := postgres.NewGormUnitOfWorkFactory(db).Create().SupplierRepository().Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.CanSignIn() {
		return errs.NewForbiddenError(fmt.Sprintf("supplier %s is %s", id, s.Status()))
	}
	return nil
}
