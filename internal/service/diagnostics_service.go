package service

import (
	"alcyxob/fitness-notes/internal/repository"
	"context"
	"time"
)

const (
	maxListedCollections = 10
	maxErrorLength       = 50
	listCollectionsLimit = 5 * time.Second
)

// Status strings reported by the diagnostics endpoint.
const (
	StatusRunning            = "Running"
	StatusNotAvailable       = "Not Available"
	StatusNotInitialized     = "Available but not initialized"
	StatusWorking            = "Connected & Working"
	StatusConnectedWithError = "Connected but Error: "
	StatusConnected          = "Connected"
	StatusNotConnected       = "Not Connected"
	StatusSet                = "Set"
	StatusNotSet             = "Not Set"
)

// Status reports store connectivity without exposing configuration values.
type Status struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// DiagnosticsService never fails; problems are folded into the Status.
type DiagnosticsService interface {
	Status(ctx context.Context) Status
}

type diagnosticsService struct {
	store         repository.DocumentStore
	urlConfigured bool
	dbConfigured  bool
}

// NewDiagnosticsService takes the store (possibly nil) and whether the
// connection URL and database name were configured.
func NewDiagnosticsService(store repository.DocumentStore, urlConfigured, dbConfigured bool) DiagnosticsService {
	return &diagnosticsService{
		store:         store,
		urlConfigured: urlConfigured,
		dbConfigured:  dbConfigured,
	}
}

func (s *diagnosticsService) Status(ctx context.Context) Status {
	status := Status{
		Backend:          StatusRunning,
		Database:         StatusNotAvailable,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}

	if s.store == nil {
		if s.urlConfigured {
			status.Database = StatusNotInitialized
		}
	} else {
		status.ConnectionStatus = StatusConnected
		status.Database = StatusConnected
		s.listCollections(ctx, &status)
	}

	status.DatabaseURL = presence(s.urlConfigured)
	status.DatabaseName = presence(s.dbConfigured)
	return status
}

func (s *diagnosticsService) listCollections(ctx context.Context, status *Status) {
	defer func() {
		if r := recover(); r != nil {
			status.Database = StatusConnectedWithError + "unexpected failure"
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, listCollectionsLimit)
	defer cancel()

	names, err := s.store.ListCollectionNames(ctx)
	if err != nil {
		status.Database = StatusConnectedWithError + truncate(err.Error(), maxErrorLength)
		return
	}
	if names == nil {
		names = []string{}
	}
	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	status.Collections = names
	status.Database = StatusWorking
}

func presence(set bool) string {
	if set {
		return StatusSet
	}
	return StatusNotSet
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
