package waitlist

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

// JoinResult is the successful outcome of a submission. Stored is false on
// the honeypot path, where the response still claims success.
type JoinResult struct {
	Stored bool
}

type WaitlistService interface {
	// Join runs the full submission pipeline: honeypot short-circuit,
	// validation, per-IP daily quota, then the upsert. Errors carry the
	// taxonomy the controller maps onto status codes.
	Join(ctx context.Context, submission Submission, origin RequestOrigin) (*JoinResult, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	dailyLimit int

	// now is swapped out by tests exercising day-boundary behavior.
	now func() time.Time
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, dailyLimit int) WaitlistService {
	if dailyLimit <= 0 {
		dailyLimit = constants.DefaultDailySubmissionLimit
	}

	return &waitlistService{
		logger:     logger,
		repository: repository,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

func (s *waitlistService) Join(ctx context.Context, submission Submission, origin RequestOrigin) (*JoinResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if submission.honeypotOversized() {
		return nil, apperrors.NewInvalidPayloadError(MsgInvalidPayload, nil)
	}

	// Bots fill the hidden field. Claim success without counting or storing
	// anything, so automation gets no signal that it was detected.
	if submission.honeypotTripped() {
		logger.Info("Honeypot triggered", "ip", origin.IPAddress)
		return &JoinResult{Stored: false}, nil
	}

	validated, err := submission.Validate()
	if err != nil {
		logger.Info("Submission rejected", "fields", apperrors.FormatValidationErrors(err))
		return nil, apperrors.NewInvalidPayloadError(MsgInvalidPayload, err)
	}

	now := s.now().UTC()
	dayStart, dayEnd := dayBoundsUTC(now)

	count, err := s.repository.CountByIPWithin(ctx, origin.IPAddress, dayStart, dayEnd)
	if err != nil {
		logger.Error("Failed to count submissions for ip", "ip", origin.IPAddress, "error", err)
		return nil, err
	}

	if count >= int64(s.dailyLimit) {
		retryAfter := secondsUntilNextMidnightUTC(now)
		logger.Warn("Daily submission limit reached", "ip", origin.IPAddress, "count", count)
		return nil, apperrors.NewRateLimitedError(MsgRateLimited, &RateLimitError{RetryAfterSeconds: retryAfter})
	}

	if err := s.repository.UpsertEntry(ctx, toEntryModel(validated, origin)); err != nil {
		logger.Error("Failed to store waitlist entry", "error", err)
		return nil, err
	}

	return &JoinResult{Stored: true}, nil
}

func toEntryModel(validated *ValidatedSubmission, origin RequestOrigin) *models.WaitlistEntry {
	return &models.WaitlistEntry{
		Email:          validated.Email,
		UseCase:        validated.UseCase,
		IPAddress:      origin.IPAddress,
		UserAgent:      origin.UserAgent,
		AcceptLanguage: origin.AcceptLanguage,
		Country:        origin.Country,
		Region:         origin.Region,
		RegionCode:     origin.RegionCode,
		City:           origin.City,
		PostalCode:     origin.PostalCode,
		Continent:      origin.Continent,
		Timezone:       origin.Timezone,
		Colo:           origin.Colo,
		ASN:            origin.ASN,
		ASOrganization: origin.ASOrganization,
		Latitude:       origin.Latitude,
		Longitude:      origin.Longitude,
		BotScore:       origin.BotScore,
		TLSVersion:     origin.TLSVersion,
		HTTPProtocol:   origin.HTTPProtocol,
	}
}
