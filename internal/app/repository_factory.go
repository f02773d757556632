package app

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	energyPersistence "github.com/felixgeelhaar/focusflow/internal/energy/infrastructure/persistence"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	productivityPersistence "github.com/felixgeelhaar/focusflow/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
)

// RepositoryFactory creates repositories for a connection. Every repository
// speaks portable SQL, so the factory only checks that the driver is one the
// migrations support.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) (*RepositoryFactory, error) {
	driver := conn.Driver()
	if !driver.IsValid() {
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, driver)
	}
	return &RepositoryFactory{conn: conn, driver: driver}, nil
}

// Driver returns the driver of the underlying connection.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

func (f *RepositoryFactory) TaskRepository() task.Repository {
	return productivityPersistence.NewSQLTaskRepository(f.conn)
}

func (f *RepositoryFactory) PriorityScoreRepository() task.PriorityScoreRepository {
	return productivityPersistence.NewSQLPriorityScoreRepository(f.conn)
}

func (f *RepositoryFactory) CheckInRepository() checkin.Repository {
	return energyPersistence.NewSQLCheckInRepository(f.conn)
}

func (f *RepositoryFactory) OutboxRepository() outbox.Repository {
	return outbox.NewSQLRepository(f.conn)
}

// UnitOfWork returns a unit of work bound to the connection.
func (f *RepositoryFactory) UnitOfWork() *database.GenericUnitOfWork {
	return database.NewUnitOfWork(f.conn)
}
