package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func newServiceForTest(t *testing.T, repo WaitlistRepository, dailyLimit int, now time.Time) WaitlistService {
	t.Helper()

	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, repo, dailyLimit)
	service.(*waitlistService).now = func() time.Time { return now }
	return service
}

func TestWaitlistService_Join_StoresEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	service := newServiceForTest(t, mockRepo, 10, now)

	submission := Submission{
		Email:   strPtr("Jane.Doe@Example.COM"),
		UseCase: strPtr("internal tooling"),
	}
	origin := RequestOrigin{
		IPAddress: "203.0.113.7",
		Country:   strPtr("DE"),
	}

	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	mockRepo.EXPECT().
		CountByIPWithin(gomock.Any(), "203.0.113.7", dayStart, dayEnd).
		Return(int64(3), nil)

	mockRepo.EXPECT().
		UpsertEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) error {
			assert.Equal(t, "jane.doe@example.com", entry.Email)
			require.NotNil(t, entry.UseCase)
			assert.Equal(t, "internal tooling", *entry.UseCase)
			assert.Equal(t, "203.0.113.7", entry.IPAddress)
			require.NotNil(t, entry.Country)
			assert.Equal(t, "DE", *entry.Country)
			return nil
		})

	result, err := service.Join(context.Background(), submission, origin)

	require.NoError(t, err)
	assert.True(t, result.Stored)
}

func TestWaitlistService_Join_HoneypotSkipsValidationAndStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectations: the honeypot path must not touch storage.
	mockRepo := NewMockWaitlistRepository(ctrl)
	service := newServiceForTest(t, mockRepo, 10, time.Now())

	submission := Submission{
		Email:   strPtr("definitely-not-an-email"),
		Website: strPtr("https://bot.example"),
	}

	result, err := service.Join(context.Background(), submission, RequestOrigin{IPAddress: UnknownIP})

	require.NoError(t, err)
	assert.False(t, result.Stored)
}

func TestWaitlistService_Join_OversizedHoneypotRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	service := newServiceForTest(t, mockRepo, 10, time.Now())

	oversized := make([]rune, 201)
	for i := range oversized {
		oversized[i] = 'x'
	}
	submission := Submission{
		Email:   strPtr("jane@example.com"),
		Website: strPtr(string(oversized)),
	}

	result, err := service.Join(context.Background(), submission, RequestOrigin{IPAddress: "203.0.113.7"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeInvalidPayload, apperrors.GetErrorType(err))
}

func TestWaitlistService_Join_InvalidEmailRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	service := newServiceForTest(t, mockRepo, 10, time.Now())

	cases := []struct {
		name       string
		submission Submission
	}{
		{"missing email", Submission{}},
		{"not an address", Submission{Email: strPtr("nope")}},
		{"missing domain", Submission{Email: strPtr("jane@")}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.Join(context.Background(), tc.submission, RequestOrigin{IPAddress: "203.0.113.7"})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, apperrors.ErrorTypeInvalidPayload, apperrors.GetErrorType(err))
			assert.Equal(t, MsgInvalidPayload, apperrors.GetHumanReadableMessage(err))
		})
	}
}

func TestWaitlistService_Join_DailyLimitReached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	now := time.Date(2026, 3, 14, 23, 59, 30, 0, time.UTC)
	service := newServiceForTest(t, mockRepo, 10, now)

	mockRepo.EXPECT().
		CountByIPWithin(gomock.Any(), "203.0.113.7", gomock.Any(), gomock.Any()).
		Return(int64(10), nil)

	submission := Submission{Email: strPtr("jane@example.com")}

	result, err := service.Join(context.Background(), submission, RequestOrigin{IPAddress: "203.0.113.7"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeRateLimited, apperrors.GetErrorType(err))
	assert.Equal(t, MsgRateLimited, apperrors.GetHumanReadableMessage(err))

	var rateLimited *RateLimitError
	require.True(t, errors.As(err, &rateLimited))
	assert.Equal(t, 30, rateLimited.RetryAfterSeconds)
}

func TestWaitlistService_Join_CountErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	service := newServiceForTest(t, mockRepo, 10, time.Now())

	mockRepo.EXPECT().
		CountByIPWithin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), apperrors.NewDatabaseError("count failed", nil))

	submission := Submission{Email: strPtr("jane@example.com")}

	result, err := service.Join(context.Background(), submission, RequestOrigin{IPAddress: "203.0.113.7"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
}

func TestWaitlistService_Join_UpsertErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	service := newServiceForTest(t, mockRepo, 10, time.Now())

	mockRepo.EXPECT().
		CountByIPWithin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), nil)
	mockRepo.EXPECT().
		UpsertEntry(gomock.Any(), gomock.Any()).
		Return(apperrors.NewDatabaseError("insert failed", nil))

	submission := Submission{Email: strPtr("jane@example.com")}

	result, err := service.Join(context.Background(), submission, RequestOrigin{IPAddress: "203.0.113.7"})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestWaitlistService_NonPositiveLimitFallsBackToDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()

	service := NewWaitlistService(logger, mockRepo, 0)
	assert.Equal(t, 10, service.(*waitlistService).dailyLimit)
}
