package domain

import (
	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/monitoring"
	"github.com/akeren/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appConfig.RouterService.MountController(
		monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache),
	)

	waitlistFactory := waitlist.NewWaitlistServiceFactory(
		appConfig.DB,
		appConfig.Logger,
		appConfig.Config.WaitlistDailyLimit,
		appConfig.Cache,
	)
	appConfig.RouterService.MountController(waitlistFactory.CreateController())
}
