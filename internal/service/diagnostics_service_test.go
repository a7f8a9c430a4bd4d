package service

import (
	"alcyxob/fitness-notes/internal/repository/memory"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDiagnosticsWithoutStore(t *testing.T) {
	status := NewDiagnosticsService(nil, false, false).Status(context.Background())

	assert.Equal(t, StatusRunning, status.Backend)
	assert.Equal(t, StatusNotAvailable, status.Database)
	assert.Equal(t, StatusNotConnected, status.ConnectionStatus)
	assert.Equal(t, StatusNotSet, status.DatabaseURL)
	assert.Equal(t, StatusNotSet, status.DatabaseName)
	assert.Empty(t, status.Collections)
}

func TestDiagnosticsConfiguredButNotConnected(t *testing.T) {
	status := NewDiagnosticsService(nil, true, true).Status(context.Background())

	assert.Equal(t, StatusNotInitialized, status.Database)
	assert.Equal(t, StatusSet, status.DatabaseURL)
	assert.Equal(t, StatusSet, status.DatabaseName)
}

func TestDiagnosticsListsAtMostTenCollections(t *testing.T) {
	store := memory.NewStore("fitness")
	for i := 0; i < 12; i++ {
		_, err := store.CreateDocument(context.Background(), fmt.Sprintf("c%02d", i), bson.D{})
		assert.NoError(t, err)
	}

	status := NewDiagnosticsService(store, true, true).Status(context.Background())
	assert.Equal(t, StatusWorking, status.Database)
	assert.Equal(t, StatusConnected, status.ConnectionStatus)
	assert.Len(t, status.Collections, 10)
}

func TestDiagnosticsDowngradesListingErrors(t *testing.T) {
	store := memory.NewStore("fitness")
	store.FailWith(errors.New(strings.Repeat("x", 80)))

	status := NewDiagnosticsService(store, true, false).Status(context.Background())
	assert.Equal(t, StatusConnectedWithError+strings.Repeat("x", 50), status.Database)
	assert.Equal(t, StatusConnected, status.ConnectionStatus)
	assert.Equal(t, StatusNotSet, status.DatabaseName)
	assert.Empty(t, status.Collections)
}
