package waitlist

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mutableEntryColumns are overwritten on every resubmission of the same
// email; id and created_at survive the conflict so rate-limit counting and
// signup ordering stay anchored to the first submission.
var mutableEntryColumns = []string{
	"use_case",
	"ip_address",
	"user_agent",
	"accept_language",
	"country",
	"region",
	"region_code",
	"city",
	"postal_code",
	"continent",
	"timezone",
	"colo",
	"asn",
	"as_organization",
	"latitude",
	"longitude",
	"bot_score",
	"tls_version",
	"http_protocol",
	"updated_at",
}

type WaitlistRepository interface {
	// UpsertEntry inserts the entry, or overwrites every mutable column of
	// the existing row with the same email. A single atomic statement; there
	// is no read-modify-write window for concurrent writers of one email.
	UpsertEntry(ctx context.Context, entry *models.WaitlistEntry) error
	// CountByIPWithin counts entries whose ip_address matches and whose
	// created_at lies inside [start, end].
	CountByIPWithin(ctx context.Context, ip string, start, end time.Time) (int64, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) UpsertEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	err := wr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(mutableEntryColumns),
		}).
		Create(entry).Error

	if err != nil {
		return apperrors.NewDatabaseError("unable to store waitlist entry", err)
	}

	return nil
}

func (wr *waitlistRepository) CountByIPWithin(ctx context.Context, ip string, start, end time.Time) (int64, error) {
	var count int64

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("ip_address = ? AND created_at BETWEEN ? AND ?", ip, start, end).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.NewDatabaseError("unable to count submissions by ip", err)
	}

	return count, nil
}
