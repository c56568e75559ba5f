// Package businessflow contains the core business logic and use cases for security workflows
package businessflow

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/repository"
	"github.com/sajtem/sajtem-backend/utils"
)

// SecurityFlow records security events and answers advisory rate limit
// checks. The limiter is caller-driven: it reports the verdict, it does
// not block anything itself.
type SecurityFlow interface {
	LogEvent(ctx context.Context, req *dto.LogSecurityEventRequest, metadata *ClientMetadata) (*dto.LogSecurityEventResponse, error)
	CheckRateLimit(ctx context.Context, req *dto.RateLimitCheckRequest, metadata *ClientMetadata) (*dto.RateLimitCheckResponse, error)
}

// SecurityFlowImpl implements SecurityFlow
type SecurityFlowImpl struct {
	securityLogRepo repository.SecurityLogRepository
	rateLimitRepo   repository.RateLimitLogRepository
}

func NewSecurityFlow(
	securityLogRepo repository.SecurityLogRepository,
	rateLimitRepo repository.RateLimitLogRepository,
) SecurityFlow {
	return &SecurityFlowImpl{
		securityLogRepo: securityLogRepo,
		rateLimitRepo:   rateLimitRepo,
	}
}

// LogEvent appends one row to the audit trail. IP and user agent fall
// back to the request's own when the payload omits them.
func (f *SecurityFlowImpl) LogEvent(ctx context.Context, req *dto.LogSecurityEventRequest, metadata *ClientMetadata) (*dto.LogSecurityEventResponse, error) {
	if req.EventType == "" {
		return nil, ErrEventTypeRequired
	}

	row := &models.SecurityLog{
		EventType: req.EventType,
		CreatedAt: utils.UTCNow(),
	}

	if req.UserID != nil && *req.UserID != "" {
		uid, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, NewBusinessError("SECURITY_EVENT_VALIDATION_FAILED", "user_id is not a valid UUID", err)
		}
		row.UserID = &uid
	}

	if req.IPAddress != nil && *req.IPAddress != "" {
		row.IPAddress = req.IPAddress
	} else if metadata != nil && metadata.IPAddress != "" {
		row.IPAddress = utils.ToPtr(metadata.IPAddress)
	}
	if metadata != nil && metadata.UserAgent != "" {
		row.UserAgent = utils.ToPtr(metadata.UserAgent)
	}

	if len(req.Metadata) > 0 {
		bs, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, NewBusinessError("SECURITY_EVENT_VALIDATION_FAILED", "metadata is not serializable", err)
		}
		row.Metadata = bs
	}

	if err := f.securityLogRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("SECURITY_EVENT_LOG_FAILED", "Failed to record security event", err)
	}

	if row.IsAlertable() {
		requestID := "-"
		if metadata != nil && metadata.RequestID != "" {
			requestID = metadata.RequestID
		}
		log.Printf("SECURITY ALERT: event=%s ip=%s user=%v request=%s", row.EventType, derefOr(row.IPAddress, "-"), row.UserID, requestID)
	}

	return &dto.LogSecurityEventResponse{Success: true, Logged: true}, nil
}

// CheckRateLimit applies a sliding window over persisted request rows.
// The identifier is scoped per client IP. An allowed request is recorded
// as part of the check; CurrentCount reports the count before admission.
func (f *SecurityFlowImpl) CheckRateLimit(ctx context.Context, req *dto.RateLimitCheckRequest, metadata *ClientMetadata) (*dto.RateLimitCheckResponse, error) {
	if req.Identifier == "" {
		return nil, ErrIdentifierRequired
	}

	maxRequests := utils.DefaultRateLimitMaxRequests
	if req.MaxRequests != nil && *req.MaxRequests > 0 {
		maxRequests = *req.MaxRequests
	}
	windowMinutes := utils.DefaultRateLimitWindowMinutes
	if req.WindowMinutes != nil && *req.WindowMinutes > 0 {
		windowMinutes = *req.WindowMinutes
	}
	window := time.Duration(windowMinutes) * time.Minute

	ip := ""
	if metadata != nil {
		ip = metadata.IPAddress
	}
	identifier := req.Identifier + ":" + ip

	now := utils.UTCNow()
	since := now.Add(-window)

	count, err := f.rateLimitRepo.CountSince(ctx, identifier, since)
	if err != nil {
		return nil, NewBusinessError("RATE_LIMIT_CHECK_FAILED", "Failed to count rate limit window", err)
	}

	if count >= int64(maxRequests) {
		resetTime := now.Add(window)
		if oldest, err := f.rateLimitRepo.OldestSince(ctx, identifier, since); err == nil && oldest != nil {
			resetTime = oldest.CreatedAt.Add(window)
		}
		return &dto.RateLimitCheckResponse{
			Allowed:      false,
			CurrentCount: count,
			MaxRequests:  maxRequests,
			ResetTime:    resetTime,
		}, nil
	}

	row := &models.RateLimitLog{
		Identifier: identifier,
		CreatedAt:  now,
	}
	if ip != "" {
		row.IPAddress = utils.ToPtr(ip)
	}
	if err := f.rateLimitRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("RATE_LIMIT_CHECK_FAILED", "Failed to record admitted request", err)
	}

	return &dto.RateLimitCheckResponse{
		Allowed:      true,
		CurrentCount: count,
		MaxRequests:  maxRequests,
		ResetTime:    now.Add(window),
	}, nil
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
