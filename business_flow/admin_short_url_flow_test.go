package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedMappings(t *testing.T, repo *fakeShortURLRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Save(context.Background(), &models.ShortURL{
			ShortCode:   fmt.Sprintf("code%04d", i),
			OriginalURL: fmt.Sprintf("https://example.com/%d", i),
			CreatedAt:   utils.UTCNow(),
		}))
	}
}

func TestAdminList_Pagination(t *testing.T) {
	repo := newFakeShortURLRepo()
	seedMappings(t, repo, 7)
	flow := NewAdminShortURLFlow(repo, newFakeClickRepo())

	rows, total, err := flow.List(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, rows, 5)

	rows, total, err = flow.List(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, rows, 2)
}

func TestAdminList_ClampsPageArguments(t *testing.T) {
	repo := newFakeShortURLRepo()
	seedMappings(t, repo, 3)
	flow := NewAdminShortURLFlow(repo, newFakeClickRepo())

	rows, total, err := flow.List(context.Background(), -1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)

	rows, _, err = flow.List(context.Background(), 1, 100000)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestAdminList_ReportsClickRowCounts(t *testing.T) {
	repo := newFakeShortURLRepo()
	mapping := &models.ShortURL{
		ShortCode:   "code0001",
		OriginalURL: "https://example.com/1",
		ClickCount:  1,
		CreatedAt:   utils.UTCNow(),
	}
	require.NoError(t, repo.Save(context.Background(), mapping))

	// The aggregate counter lags behind the click rows here
	clicks := newFakeClickRepo()
	for i := 0; i < 3; i++ {
		require.NoError(t, clicks.Save(context.Background(), &models.ShortURLClick{
			ShortURLID: mapping.ID,
			CreatedAt:  utils.UTCNow(),
		}))
	}

	flow := NewAdminShortURLFlow(repo, clicks)
	rows, _, err := flow.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].ClickCount)
}

func TestExportExcel_ProducesWorkbook(t *testing.T) {
	repo := newFakeShortURLRepo()
	seedMappings(t, repo, 4)
	flow := NewAdminShortURLFlow(repo, newFakeClickRepo())

	data, filename, err := flow.ExportExcel(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Regexp(t, `^short-urls-\d{4}-\d{2}-\d{2}\.xlsx$`, filename)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Short URLs")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Short Code", "Original URL", "Clicks", "Expires At", "Created At"}, rows[0][:5])
}

func TestExportExcel_EmptyDataset(t *testing.T) {
	flow := NewAdminShortURLFlow(newFakeShortURLRepo(), newFakeClickRepo())

	data, _, err := flow.ExportExcel(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
