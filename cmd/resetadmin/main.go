package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/cmd/app"
	"github.com/bigbull/event-ticket-api/internal/config"
	"github.com/bigbull/event-ticket-api/internal/logger"
	"github.com/bigbull/event-ticket-api/internal/repository"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
	"github.com/bigbull/event-ticket-api/internal/service"
)

func main() {
	configPath := pflag.StringP("config", "c", "./cmd/app/config.yml", "path to the config file")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "resetadmin: %v\n", err)
		os.Exit(1)
	}
}

// run deletes every admin account and recreates the configured default one.
func run(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	postgresDB, err := app.OpenDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	adminRepo := repository.NewAdminRepository(dao.NewAdminDAO(postgresDB))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(postgresDB))
	svc := service.NewAuthService(adminRepo, userRepo, conf.Admin.InitialUsername)

	if err = svc.ResetAdmin(context.Background(), conf.Admin.InitialUsername, conf.Admin.InitialPassword); err != nil {
		return fmt.Errorf("svc.ResetAdmin -> %w", err)
	}

	zap.L().Info("admin account reset", zap.String("username", conf.Admin.InitialUsername))

	return nil
}
