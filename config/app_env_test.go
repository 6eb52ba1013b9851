package config

import (
	"testing"

	"github.com/akeren/waitlist-api/pkg/constants"
)

func TestValidateAutoMigrateAllowed_AllowsDevLikeEnvs(t *testing.T) {
	allowed := []string{"", "dev", "development", "local", "test", "testing", "DEV", "  Local  "}

	for _, env := range allowed {
		env := env
		t.Run(env, func(t *testing.T) {
			if err := ValidateAutoMigrateAllowed(env); err != nil {
				t.Fatalf("expected no error for env %q, got %v", env, err)
			}
		})
	}
}

func TestValidateAutoMigrateAllowed_RejectsProdAndOtherEnvs(t *testing.T) {
	rejected := []string{"prod", "production", "staging", "preprod", " Production ", "qa"}

	for _, env := range rejected {
		env := env
		t.Run(env, func(t *testing.T) {
			if err := ValidateAutoMigrateAllowed(env); err == nil {
				t.Fatalf("expected error for env %q, got nil", env)
			}
		})
	}
}

func TestNewAppConfig_WaitlistDailyLimit(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  int
	}{
		{"unset uses default", "", constants.DefaultDailySubmissionLimit},
		{"valid override", "25", 25},
		{"zero falls back to default", "0", constants.DefaultDailySubmissionLimit},
		{"negative falls back to default", "-3", constants.DefaultDailySubmissionLimit},
		{"garbage falls back to default", "many", constants.DefaultDailySubmissionLimit},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("WAITLIST_DAILY_LIMIT", tc.value)

			cfg := NewAppConfig()
			if cfg.WaitlistDailyLimit != tc.want {
				t.Fatalf("expected daily limit %d, got %d", tc.want, cfg.WaitlistDailyLimit)
			}
		})
	}
}
