package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/user-directory/internal/config"
	"github.com/iliyamo/user-directory/internal/handler"
	"github.com/iliyamo/user-directory/internal/repository"
	"github.com/iliyamo/user-directory/internal/router"
	"github.com/iliyamo/user-directory/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "user-directory").Logger()

	cfg := config.Load()

	client, err := config.NewRedisClient()
	if err != nil {
		log.Fatal().Err(err).Msg("redis unreachable")
	}
	store := repository.NewRedisStore(client)
	users := repository.NewUserRepo(store)
	roles := repository.NewRoleRepo(store)

	roleSvc := service.NewRoleService(roles, users, log)
	userSvc := service.NewUserService(
		users,
		roleSvc,
		cfg.JWTSecret,
		time.Duration(cfg.TokenValidityMin)*time.Minute,
		cfg.BcryptCost,
		log,
	)

	// Seeding is fire-and-forget: the listener comes up immediately and
	// the emptiness checks inside Seed keep a rerun or a racing request
	// from duplicating the defaults.
	go func() {
		if err := roleSvc.Seed(context.Background(), "root@"+cfg.SeedDomain, cfg.SeedPassword, cfg.BcryptCost); err != nil {
			log.Error().Err(err).Msg("seeding failed")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterUsers(e, handler.NewUserHandler(userSvc, roleSvc), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
