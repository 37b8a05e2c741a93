package db

import (
	"fmt"

	"github.com/golang/glog"
	mocket "github.com/selvatico/go-mocket"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionFactory hands out gorm sessions for a single database.
type ConnectionFactory struct {
	Config *DatabaseConfig
	DB     *gorm.DB
}

// NewConnectionFactory opens the connection pool described by dbConfig. The
// returned cleanup func closes the pool, call it on shutdown.
func NewConnectionFactory(dbConfig *DatabaseConfig) (*ConnectionFactory, func()) {
	logLevel := gormlogger.Silent
	if dbConfig.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dbConfig.ConnectionString(false)), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		glog.Fatalf("failed to connect to %s: %v", dbConfig.LogSafeConnectionString(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		glog.Fatalf("failed to obtain sql.DB handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConnections)

	factory := &ConnectionFactory{Config: dbConfig, DB: db}
	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			glog.Errorf("failed to close database connection: %v", err)
		}
	}
	return factory, cleanup
}

// New returns a fresh gorm session for a single operation.
func (f *ConnectionFactory) New() *gorm.DB {
	return f.DB.Session(&gorm.Session{})
}

// CheckConnection verifies the database is reachable. Used by health checks.
func (f *ConnectionFactory) CheckConnection() error {
	if err := f.New().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// NewMockConnectionFactory returns a factory backed by go-mocket, for use in
// service tests. See the service test files for the catcher usage.
func NewMockConnectionFactory(dbConfig *DatabaseConfig) *ConnectionFactory {
	if dbConfig == nil {
		dbConfig = NewDatabaseConfig()
	}
	mocket.Catcher.Register()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: mocket.DriverName,
		DSN:        "mocket_db",
	}), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open gorm over mocket: %v", err))
	}
	return &ConnectionFactory{Config: dbConfig, DB: db}
}
