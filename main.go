package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/pokedexapi/config"
	"github.com/padraicbc/pokedexapi/db"
	"github.com/padraicbc/pokedexapi/handlers"
	applog "github.com/padraicbc/pokedexapi/logger"
	mw "github.com/padraicbc/pokedexapi/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	h := handlers.New(bdb, cfg.JWTKey())

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Signin)
	e.GET("/api/pkmn/search", h.SearchPokemon)
	e.GET("/api/pkmn/types", h.PokemonTypes)
	e.GET("/api/pkmn", h.GetPokemon)

	// Catalog writes – admin role required
	admin := e.Group("/api/pkmn", mw.JWT(cfg.JWTKey()), mw.RequireAdmin)
	admin.POST("", h.CreatePokemon)
	admin.PUT("", h.UpdatePokemon)
	admin.DELETE("", h.DeletePokemon)
	admin.POST("/region", h.AddRegion)
	admin.DELETE("/region", h.RemoveRegion)

	// Trainer self-service – any valid token
	trainer := e.Group("/api/trainer", mw.JWT(cfg.JWTKey()))
	trainer.POST("", h.CreateTrainer)
	trainer.GET("", h.GetTrainer)
	trainer.PUT("", h.UpdateTrainer)
	trainer.DELETE("", h.DeleteTrainer)
	trainer.POST("/mark", h.MarkPokemon)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
