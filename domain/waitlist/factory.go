package waitlist

import (
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/factory"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController() *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db         *gorm.DB
	logger     *log.Logger
	dailyLimit int
	cache      factory.Cache
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, dailyLimit int, cache factory.Cache) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:         db,
		logger:     logger,
		dailyLimit: dailyLimit,
		cache:      cache,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	repository := NewWaitlistRepository(f.db)
	return NewWaitlistService(f.logger, repository, f.dailyLimit)
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.db, f.logger, f.dailyLimit, f.cache)
}
