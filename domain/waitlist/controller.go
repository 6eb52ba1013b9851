package waitlist

import (
	"errors"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/factory"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"gorm.io/gorm"
)

func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	dailyLimit int,
	cache factory.Cache,
) *router.RESTController {

	return router.NewRESTController(
		"WaitlistController",
		"/api/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, dailyLimit)

			submissionLimiter := createSubmissionRateLimiter(cache)

			rs.AddPostHandler(c, submissionLimiter, "", joinWaitlistHandler(service))
			rs.AddOptionsHandler(c, nil, "", preflightHandler())
		},
	)
}

// createSubmissionRateLimiter builds the transport-level limiter for the
// submission endpoint. This is a burst guard per minute; the per-day ceiling
// is enforced by the service against stored rows.
func createSubmissionRateLimiter(cache factory.Cache) ratelimit.RateLimiter {
	const submissionRequestsPerMinute = 30

	return factory.
		NewDefaultRateLimiterFactory(submissionRequestsPerMinute, time.Minute, cache, nil).
		CreateRateLimiter()
}

func joinWaitlistHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		submission := NormalizeSubmission(ctx.Request)
		origin := ExtractRequestOrigin(ctx.Request)

		logger := router.GetLogger(ctx)

		result, err := service.Join(ctx.Request.Context(), submission, origin)
		if err != nil {
			logger.Info("Waitlist submission rejected", "ip", origin.IPAddress, "error_type", apperrors.GetErrorType(err))

			var rateLimited *RateLimitError
			if errors.As(err, &rateLimited) {
				return router.TooManyRequestsResult(
					apperrors.GetHumanReadableMessage(err),
					rateLimited.RetryAfterSeconds,
				)
			}

			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.WireCode(err),
				apperrors.GetHumanReadableMessage(err),
			)
		}

		if result.Stored {
			return router.CreatedResult(MsgCreated)
		}

		return router.OKMessageResult(MsgHoneypot)
	}
}

func preflightHandler() router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		return router.NoContentResult(map[string]string{"Allow": "POST, OPTIONS"})
	}
}
