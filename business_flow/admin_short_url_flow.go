package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/repository"
	"github.com/sajtem/sajtem-backend/utils"
	"github.com/xuri/excelize/v2"
)

// AdminShortURLFlow lists short URLs with click stats and exports them
// as a spreadsheet for the admin dashboard
type AdminShortURLFlow interface {
	List(ctx context.Context, page, pageSize int) ([]dto.ShortURLStatsDTO, int64, error)
	ExportExcel(ctx context.Context) ([]byte, string, error)
}

type AdminShortURLFlowImpl struct {
	shortURLRepo repository.ShortURLRepository
	clickRepo    repository.ShortURLClickRepository
}

func NewAdminShortURLFlow(shortURLRepo repository.ShortURLRepository, clickRepo repository.ShortURLClickRepository) AdminShortURLFlow {
	return &AdminShortURLFlowImpl{shortURLRepo: shortURLRepo, clickRepo: clickRepo}
}

func (f *AdminShortURLFlowImpl) List(ctx context.Context, page, pageSize int) ([]dto.ShortURLStatsDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	filter := models.ShortURLFilter{}
	total, err := f.shortURLRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, NewBusinessError("SHORT_URL_LIST_FAILED", "Failed to count short URLs", err)
	}

	rows, err := f.shortURLRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, NewBusinessError("SHORT_URL_LIST_FAILED", "Failed to list short URLs", err)
	}

	out := make([]dto.ShortURLStatsDTO, 0, len(rows))
	for _, row := range rows {
		stats := toShortURLStatsDTO(row)
		// The aggregate counter is maintained off the request path and can
		// lag; the click rows are authoritative for the dashboard
		if exact, err := f.clickRepo.CountByShortURL(ctx, row.ID); err == nil && exact > stats.ClickCount {
			stats.ClickCount = exact
		}
		out = append(out, stats)
	}
	return out, total, nil
}

// ExportExcel renders every mapping into an xlsx workbook and returns the
// bytes plus a dated filename
func (f *AdminShortURLFlowImpl) ExportExcel(ctx context.Context) ([]byte, string, error) {
	rows, err := f.shortURLRepo.ByFilter(ctx, models.ShortURLFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return nil, "", NewBusinessError("SHORT_URL_EXPORT_FAILED", "Failed to list short URLs for export", err)
	}

	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Short URLs"
	wb.SetSheetName("Sheet1", sheet)

	headers := []string{"Short Code", "Original URL", "Clicks", "Expires At", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for i, row := range rows {
		values := []any{
			row.ShortCode,
			row.OriginalURL,
			row.ClickCount,
			formatOptionalTime(row.ExpiresAt),
			row.CreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, "", NewBusinessError("SHORT_URL_EXPORT_FAILED", "Failed to render export workbook", err)
	}

	filename := fmt.Sprintf("short-urls-%s.xlsx", utils.UTCNow().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func toShortURLStatsDTO(row *models.ShortURL) dto.ShortURLStatsDTO {
	return dto.ShortURLStatsDTO{
		ShortCode:   row.ShortCode,
		OriginalURL: row.OriginalURL,
		ClickCount:  row.ClickCount,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
