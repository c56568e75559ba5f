package businessflow

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEvent_RequiresEventType(t *testing.T) {
	flow := NewSecurityFlow(newFakeSecurityLogRepo(), newFakeRateLimitRepo())

	_, err := flow.LogEvent(context.Background(), &dto.LogSecurityEventRequest{}, nil)
	assert.True(t, IsEventTypeRequired(err))
}

func TestLogEvent_InvalidUserID(t *testing.T) {
	flow := NewSecurityFlow(newFakeSecurityLogRepo(), newFakeRateLimitRepo())

	_, err := flow.LogEvent(context.Background(), &dto.LogSecurityEventRequest{
		EventType: "login_failed",
		UserID:    utils.ToPtr("not-a-uuid"),
	}, nil)

	require.Error(t, err)
	assert.False(t, IsEventTypeRequired(err))
}

func TestLogEvent_RecordsRow(t *testing.T) {
	repo := newFakeSecurityLogRepo()
	flow := NewSecurityFlow(repo, newFakeRateLimitRepo())

	userID := uuid.New()
	resp, err := flow.LogEvent(context.Background(), &dto.LogSecurityEventRequest{
		EventType: "suspicious_activity",
		UserID:    utils.ToPtr(userID.String()),
		Metadata:  map[string]any{"path": "/admin", "attempts": float64(3)},
	}, NewClientMetadata("203.0.113.9", "test-agent"))

	require.NoError(t, err)
	assert.True(t, resp.Logged)

	rows := repo.all()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "suspicious_activity", row.EventType)
	require.NotNil(t, row.UserID)
	assert.Equal(t, userID, *row.UserID)
	require.NotNil(t, row.IPAddress)
	assert.Equal(t, "203.0.113.9", *row.IPAddress)
	require.NotNil(t, row.UserAgent)
	assert.Equal(t, "test-agent", *row.UserAgent)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(row.Metadata, &meta))
	assert.Equal(t, "/admin", meta["path"])
}

func TestLogEvent_ExplicitIPWinsOverRequestIP(t *testing.T) {
	repo := newFakeSecurityLogRepo()
	flow := NewSecurityFlow(repo, newFakeRateLimitRepo())

	_, err := flow.LogEvent(context.Background(), &dto.LogSecurityEventRequest{
		EventType: "rate_limited",
		IPAddress: utils.ToPtr("198.51.100.7"),
	}, NewClientMetadata("203.0.113.9", "test-agent"))

	require.NoError(t, err)
	rows := repo.all()
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].IPAddress)
	assert.Equal(t, "198.51.100.7", *rows[0].IPAddress)
}

func TestCheckRateLimit_RequiresIdentifier(t *testing.T) {
	flow := NewSecurityFlow(newFakeSecurityLogRepo(), newFakeRateLimitRepo())

	_, err := flow.CheckRateLimit(context.Background(), &dto.RateLimitCheckRequest{}, nil)
	assert.True(t, IsIdentifierRequired(err))
}

func TestCheckRateLimit_SlidingWindow(t *testing.T) {
	repo := newFakeRateLimitRepo()
	flow := NewSecurityFlow(newFakeSecurityLogRepo(), repo)

	req := &dto.RateLimitCheckRequest{
		Identifier:    "contact-form",
		MaxRequests:   utils.ToPtr(2),
		WindowMinutes: utils.ToPtr(10),
	}
	metadata := NewClientMetadata("203.0.113.9", "test-agent")

	// First two requests are admitted; CurrentCount reports the count
	// before admission
	for i := 0; i < 2; i++ {
		resp, err := flow.CheckRateLimit(context.Background(), req, metadata)
		require.NoError(t, err)
		assert.True(t, resp.Allowed)
		assert.Equal(t, int64(i), resp.CurrentCount)
		assert.Equal(t, 2, resp.MaxRequests)
	}

	// Third is denied and reset time derives from the oldest row
	resp, err := flow.CheckRateLimit(context.Background(), req, metadata)
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, int64(2), resp.CurrentCount)

	oldest, err := repo.OldestSince(context.Background(), "contact-form:203.0.113.9", utils.UTCNow().Add(-10*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, oldest)
	assert.True(t, resp.ResetTime.Equal(oldest.CreatedAt.Add(10*time.Minute)))

	// A denied request is not recorded
	count, err := repo.CountSince(context.Background(), "contact-form:203.0.113.9", utils.UTCNow().Add(-10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCheckRateLimit_ScopedPerIP(t *testing.T) {
	repo := newFakeRateLimitRepo()
	flow := NewSecurityFlow(newFakeSecurityLogRepo(), repo)

	req := &dto.RateLimitCheckRequest{
		Identifier:  "login",
		MaxRequests: utils.ToPtr(1),
	}

	resp, err := flow.CheckRateLimit(context.Background(), req, NewClientMetadata("203.0.113.9", ""))
	require.NoError(t, err)
	assert.True(t, resp.Allowed)

	resp, err = flow.CheckRateLimit(context.Background(), req, NewClientMetadata("203.0.113.9", ""))
	require.NoError(t, err)
	assert.False(t, resp.Allowed)

	// A different IP has its own window
	resp, err = flow.CheckRateLimit(context.Background(), req, NewClientMetadata("198.51.100.7", ""))
	require.NoError(t, err)
	assert.True(t, resp.Allowed)
}

func TestCheckRateLimit_Defaults(t *testing.T) {
	flow := NewSecurityFlow(newFakeSecurityLogRepo(), newFakeRateLimitRepo())

	resp, err := flow.CheckRateLimit(context.Background(), &dto.RateLimitCheckRequest{
		Identifier: "anything",
	}, nil)

	require.NoError(t, err)
	assert.True(t, resp.Allowed)
	assert.Equal(t, utils.DefaultRateLimitMaxRequests, resp.MaxRequests)
}
