package models

import (
	"testing"
	"time"

	"github.com/sajtem/sajtem-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestShortURLIsExpired(t *testing.T) {
	assert.False(t, (&ShortURL{}).IsExpired(), "no expiry never expires")

	past := utils.UTCNowAdd(-time.Minute)
	assert.True(t, (&ShortURL{ExpiresAt: &past}).IsExpired())

	future := utils.UTCNowAdd(time.Minute)
	assert.False(t, (&ShortURL{ExpiresAt: &future}).IsExpired())
}
