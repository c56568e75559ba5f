// Package businessflow contains the core business logic and use cases for short URL workflows
package businessflow

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/config"
	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/repository"
	"github.com/sajtem/sajtem-backend/utils"
	"github.com/sethvargo/go-retry"
	qrcode "github.com/skip2/go-qrcode"
)

// ShortURLFlow creates short URL mappings and renders their QR codes
type ShortURLFlow interface {
	Create(ctx context.Context, req *dto.CreateShortURLRequest, createdBy *uuid.UUID, metadata *ClientMetadata) (*dto.CreateShortURLResponse, error)
	QRCode(ctx context.Context, code string, size int) ([]byte, error)
}

type ShortURLFlowImpl struct {
	shortURLRepo repository.ShortURLRepository
	shortLinkCfg config.ShortLinkConfig
}

func NewShortURLFlow(
	shortURLRepo repository.ShortURLRepository,
	shortLinkCfg config.ShortLinkConfig,
) ShortURLFlow {
	return &ShortURLFlowImpl{
		shortURLRepo: shortURLRepo,
		shortLinkCfg: shortLinkCfg,
	}
}

// Create validates the target URL, generates a unique code and persists the
// mapping. Code collisions are retried with a fresh code; the unique index
// on short_code is the source of truth.
func (f *ShortURLFlowImpl) Create(ctx context.Context, req *dto.CreateShortURLRequest, createdBy *uuid.UUID, metadata *ClientMetadata) (*dto.CreateShortURLResponse, error) {
	if err := validateOriginalURL(req.OriginalURL); err != nil {
		return nil, err
	}

	codeLength := f.shortLinkCfg.CodeLength
	if codeLength <= 0 {
		codeLength = utils.ShortCodeLength
	}

	var row *models.ShortURL
	backoff := retry.WithMaxRetries(utils.ShortCodeMaxAttempts-1, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		code, err := utils.GenerateShortCode(codeLength)
		if err != nil {
			return err
		}
		candidate := &models.ShortURL{
			ShortCode:   code,
			OriginalURL: req.OriginalURL,
			ExpiresAt:   req.ExpiresAt,
			CreatedBy:   createdBy,
			CreatedAt:   utils.UTCNow(),
			UpdatedAt:   utils.UTCNow(),
		}
		if err := f.shortURLRepo.Save(ctx, candidate); err != nil {
			if repository.IsDuplicateKey(err) {
				return retry.RetryableError(ErrShortCodeConflict)
			}
			return err
		}
		row = candidate
		return nil
	})
	if err != nil {
		if IsShortCodeConflict(err) {
			return nil, ErrShortCodeConflict
		}
		return nil, NewBusinessError("SHORT_URL_CREATE_FAILED", "Failed to create short URL", err)
	}

	return &dto.CreateShortURLResponse{
		ShortURL:    f.shortLinkCfg.Domain + "/" + row.ShortCode,
		ShortCode:   row.ShortCode,
		OriginalURL: row.OriginalURL,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// QRCode renders a PNG QR code pointing at the public short link. Click
// tracking happens on resolution, not on rendering.
func (f *ShortURLFlowImpl) QRCode(ctx context.Context, code string, size int) ([]byte, error) {
	row, err := f.shortURLRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("SHORT_URL_LOOKUP_FAILED", "Failed to lookup short URL", err)
	}
	if row == nil {
		return nil, ErrShortURLNotFound
	}
	if row.IsExpired() {
		return nil, ErrShortURLExpired
	}

	if size < 64 || size > 1024 {
		size = 256
	}
	png, err := qrcode.Encode(f.shortLinkCfg.Domain+"/"+row.ShortCode, qrcode.Medium, size)
	if err != nil {
		return nil, NewBusinessError("SHORT_URL_QR_FAILED", "Failed to render QR code", err)
	}
	return png, nil
}

func validateOriginalURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	return nil
}
