package task

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taskboard/config"
	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/modules/cache"
	"github.com/go-monolith/mono"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module owns the database lifecycle and exposes the task service.
type Module struct {
	db       *gorm.DB
	repo     *task.Repository
	service  *Service
	cacheMod *cache.Module
	cfg      *config.Config
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the task module from the application
// configuration.
func NewModule(cfg *config.Config) *Module {
	return &Module{cfg: cfg}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// SetCacheModule wires the cache module in. The cache module must be
// registered (and therefore started) before this one.
func (m *Module) SetCacheModule(cm *cache.Module) {
	m.cacheMod = cm
}

// Start opens the MySQL connection for the configured mode (TCP
// locally, Cloud SQL unix socket on the managed platform), migrates
// the schema and builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.cacheMod == nil {
		return fmt.Errorf("cache module not set")
	}

	db, err := gorm.Open(mysql.Open(m.cfg.MySQLDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db
	m.repo = task.NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	snapshot := m.cacheMod.GetCache()
	if snapshot == nil {
		return fmt.Errorf("cache module not started")
	}
	m.service = NewService(m.repo, snapshot)

	mode := "tcp"
	if m.cfg.SocketMode() {
		mode = "cloudsql socket"
	}
	log.Printf("[task] Database connected (%s, db: %s)", mode, m.cfg.MySQLDB)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health verifies the database connection.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.cfg.MySQLDB,
		},
	}
}

// GetService returns the task service.
func (m *Module) GetService() *Service {
	return m.service
}

// GetRepository returns the task repository.
func (m *Module) GetRepository() *task.Repository {
	return m.repo
}
