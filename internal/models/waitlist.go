package models

import "time"

// WaitlistEntry is one signup, unique per lowercase email. A resubmission for
// the same email overwrites every mutable column and bumps UpdatedAt; ID and
// CreatedAt survive the conflict.
//
// All request-origin metadata is optional and stored as reported by the edge,
// never validated. Pointer fields keep absence distinguishable from a zero
// value.
type WaitlistEntry struct {
	ID      uint    `gorm:"primaryKey"`
	Email   string  `gorm:"not null;uniqueIndex"`
	UseCase *string `gorm:"type:text"`

	// "unknown" when the request carried no client-IP header at all.
	IPAddress      string  `gorm:"not null;default:unknown;index:idx_waitlist_entries_ip_day,priority:1"`
	UserAgent      *string `gorm:"type:text"`
	AcceptLanguage *string `gorm:"type:text"`

	Country        *string
	Region         *string
	RegionCode     *string
	City           *string
	PostalCode     *string
	Continent      *string
	Timezone       *string
	Colo           *string
	ASN            *int    `gorm:"column:asn"`
	ASOrganization *string `gorm:"column:as_organization"`
	Latitude       *float64
	Longitude      *float64
	BotScore       *int
	TLSVersion     *string
	HTTPProtocol   *string

	CreatedAt time.Time `gorm:"not null;index:idx_waitlist_entries_created_at,sort:desc;index:idx_waitlist_entries_ip_day,priority:2,sort:desc"`
	UpdatedAt time.Time `gorm:"not null"`
}
