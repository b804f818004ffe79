package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/usecases"
)

func TestStatsService_Dashboard(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	seedAlphaBeta(t, usecases.NewUniversityService(store, nil, nil))

	seed := map[string][]map[string]interface{}{
		repositories.CollectionUsers: {
			{"email": "a@example.com"},
		},
		repositories.CollectionApplications: {
			{"userId": "u1", "status": "pending"},
			{"userId": "u1", "status": "submitted"},
			{"userId": "u2", "status": "accepted"},
		},
		repositories.CollectionScrapeJobs: {
			{"status": "pending", "target": "https://www.qau.edu.pk"},
			{"status": "completed", "target": "https://www.nust.edu.pk"},
		},
		repositories.CollectionScrapeRequests: {
			{"status": "pending", "universityUrl": "https://www.lums.edu.pk"},
			{"status": "pending", "universityUrl": "https://www.giki.edu.pk"},
			{"status": "failed", "universityUrl": "https://www.uet.edu.pk"},
		},
	}
	for collection, docs := range seed {
		for _, fields := range docs {
			_, err := store.Add(ctx, collection, fields)
			require.NoError(t, err)
		}
	}

	stats, err := usecases.NewStatsService(store).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entities.DashboardStats{
		TotalUniversities:     2,
		TotalUsers:            1,
		TotalApplications:     3,
		PendingScrapeJobs:     1,
		PendingScrapeRequests: 2,
	}, stats)
}

func TestStatsService_DashboardEmptyStore(t *testing.T) {
	stats, err := usecases.NewStatsService(newSQLiteStore(t)).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entities.DashboardStats{}, stats)
}

func TestStatsService_DashboardStoreFailure(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("Find", mock.Anything, repositories.CollectionUniversities, repositories.Query{}).
		Return([]*entities.Document{{ID: "u1"}}, nil).Once()
	store.On("Find", mock.Anything, repositories.CollectionUsers, repositories.Query{}).
		Return(nil, errors.New("deadline exceeded")).Once()

	_, err := usecases.NewStatsService(store).Dashboard(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrBackendUnavailable)
	store.AssertExpectations(t)
}
