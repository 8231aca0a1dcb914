package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"smartlist/internal/access"
	"smartlist/internal/ai"
	"smartlist/internal/api"
	"smartlist/internal/auth"
	"smartlist/internal/config"
	"smartlist/internal/database"
	"smartlist/internal/services"
	"smartlist/internal/storage"
	"smartlist/internal/store"
	"smartlist/internal/tasks"
	"smartlist/internal/websocket"
)

func main() {
	cfg := config.Load()

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(ctx, cfg.Database)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	files, err := storage.New(cfg.Storage.Dir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize file storage")
	}

	hub := websocket.NewHub()
	go hub.Run()

	dispatcher := tasks.NewDispatcher(cfg.Tasks.Workers, cfg.Tasks.Buffer)
	defer dispatcher.Stop()

	stores := store.New(db)
	evaluator := access.NewEvaluator(stores.Shares)
	completer := ai.NewClient(cfg.AI)
	jwtManager := auth.NewJWTManager(cfg.JWT)

	notifications := services.NewNotificationService(stores.Notifications, stores.Shares, stores.Lists, stores.Users, hub)
	suggestions := services.NewSuggestionService(stores.Suggestions, completer)
	lists := services.NewListService(stores.Lists, stores.Items, evaluator, dispatcher, notifications, suggestions, hub)
	sharing := services.NewSharingService(stores.Lists, stores.Shares, stores.Users, evaluator, dispatcher, notifications, hub)
	profiles := services.NewProfileService(stores.Users, stores.Profiles)

	router := api.SetupRouter(api.Deps{
		Config:        cfg,
		Stores:        stores,
		Lists:         lists,
		Sharing:       sharing,
		Notifications: notifications,
		Suggestions:   suggestions,
		Profiles:      profiles,
		Files:         files,
		Hub:           hub,
		JWT:           jwtManager,
	})

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
