package main

import (
	"alcyxob/fitness-notes/internal/api"
	"alcyxob/fitness-notes/internal/config"
	"alcyxob/fitness-notes/internal/repository"
	"alcyxob/fitness-notes/internal/repository/mongo"
	"alcyxob/fitness-notes/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.Info("Starting Fitness Notes API...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("Could not load config")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.Log.Level).Warn("Unknown log level, keeping info")
	}
	log.WithFields(logrus.Fields{
		"database_url_set":  cfg.Database.URL != "",
		"database_name_set": cfg.Database.Name != "",
	}).Info("Configuration loaded.")

	// --- Database Connection ---
	// The API still starts without a database; diagnostics report it and
	// workout routes answer 500.
	var store repository.DocumentStore
	if cfg.Database.URL == "" || cfg.Database.Name == "" {
		log.Warn("DATABASE_URL or DATABASE_NAME not set, running without a database")
	} else {
		dbClient, err := mongo.ConnectDB(cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			log.WithError(err).Error("Could not connect to MongoDB, running without a database")
		} else {
			defer func() {
				log.Info("Disconnecting MongoDB...")
				if err := mongo.DisconnectDB(dbClient); err != nil {
					log.WithError(err).Error("Failed to disconnect MongoDB")
				}
			}()
			store = mongo.NewMongoDocumentStore(dbClient.Database(cfg.Database.Name))
			log.WithField("database", cfg.Database.Name).Info("Database connection established.")
		}
	}

	// --- Initialize Services ---
	workoutService := service.NewWorkoutService(store)
	diagnosticsService := service.NewDiagnosticsService(store, cfg.Database.URL != "", cfg.Database.Name != "")

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Gin.Mode)
	router := api.NewRouter(log, workoutService, diagnosticsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe Error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exiting.")
}
