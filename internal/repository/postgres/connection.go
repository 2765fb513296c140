package postgres

import (
	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Member{},
		&domain.Session{},
		&domain.Deed{},
		&domain.WaitlistEntry{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Member:   NewMemberRepository(db),
		Session:  NewSessionRepository(db),
		Deed:     NewDeedRepository(db),
		Waitlist: NewWaitlistRepository(db),
	}
}
