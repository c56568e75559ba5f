package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShortURL(t *testing.T, repo *fakeShortURLRepo, code string, expiresAt *time.Time) *models.ShortURL {
	t.Helper()
	row := &models.ShortURL{
		ShortCode:   code,
		OriginalURL: "https://example.com/target",
		ExpiresAt:   expiresAt,
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}
	require.NoError(t, repo.Save(context.Background(), row))
	return row
}

func TestVisit_ResolvesOriginalURL(t *testing.T) {
	repo := newFakeShortURLRepo()
	clicks := newFakeClickRepo()
	seedShortURL(t, repo, "abc12345", nil)

	flow := NewShortURLVisitFlow(repo, clicks, nil, nil)

	resp, err := flow.Visit(context.Background(), "abc12345", NewClientMetadata("203.0.113.9", "test-agent"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/target", resp.OriginalURL)
}

func TestVisit_NotFound(t *testing.T) {
	flow := NewShortURLVisitFlow(newFakeShortURLRepo(), newFakeClickRepo(), nil, nil)

	_, err := flow.Visit(context.Background(), "missing1", nil)
	assert.True(t, IsShortURLNotFound(err))
}

func TestVisit_Expired(t *testing.T) {
	repo := newFakeShortURLRepo()
	expiresAt := utils.UTCNow().Add(-time.Minute)
	seedShortURL(t, repo, "expired1", &expiresAt)

	flow := NewShortURLVisitFlow(repo, newFakeClickRepo(), nil, nil)

	_, err := flow.Visit(context.Background(), "expired1", nil)
	assert.True(t, IsShortURLExpired(err))
}

func TestVisit_TracksClick(t *testing.T) {
	repo := newFakeShortURLRepo()
	clicks := newFakeClickRepo()
	row := seedShortURL(t, repo, "tracked1", nil)

	flow := NewShortURLVisitFlow(repo, clicks, nil, nil)

	_, err := flow.Visit(context.Background(), "tracked1", NewClientMetadata("203.0.113.9", "test-agent"))
	require.NoError(t, err)

	// Tracking runs detached from the request
	assert.Eventually(t, func() bool {
		return repo.clickCount("tracked1") == 1 && len(clicks.all()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	recorded := clicks.all()[0]
	assert.Equal(t, row.ID, recorded.ShortURLID)
	require.NotNil(t, recorded.ShortCode)
	assert.Equal(t, "tracked1", *recorded.ShortCode)
	require.NotNil(t, recorded.IP)
	assert.Equal(t, "203.0.113.9", *recorded.IP)
	require.NotNil(t, recorded.UserAgent)
	assert.Equal(t, "test-agent", *recorded.UserAgent)
}

func TestVisit_ClickFailureDoesNotAffectResolution(t *testing.T) {
	repo := newFakeShortURLRepo()
	repo.incrementErrs = 1
	clicks := newFakeClickRepo()
	seedShortURL(t, repo, "flaky123", nil)

	flow := NewShortURLVisitFlow(repo, clicks, nil, nil)

	resp, err := flow.Visit(context.Background(), "flaky123", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/target", resp.OriginalURL)

	// The click row is still written even when the counter update fails
	assert.Eventually(t, func() bool {
		return len(clicks.all()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
