package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"librarydesk/internal/config"
	"librarydesk/internal/handlers"
	"librarydesk/internal/repositories"
	"librarydesk/internal/services"
	"librarydesk/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	libraryService := services.NewLibraryService(db, userRepo, bookRepo, txnRepo)

	router := gin.Default()
	router.LoadHTMLGlob(cfg.Templates.Glob)

	store := memstore.NewStore([]byte(cfg.Session.Secret))
	router.Use(sessions.Sessions(cfg.Session.CookieName, store))
	router.Use(handlers.RequestID())

	handlers.RegisterRoutes(router, libraryService)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Starting server on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
