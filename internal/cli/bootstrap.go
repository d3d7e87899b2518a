package cli

import (
	"fmt"
	"time"

	"github.com/gpaccess/backend/internal/config"
	"github.com/gpaccess/backend/internal/data/db"
	"github.com/gpaccess/backend/internal/data/repos"
	"github.com/gpaccess/backend/internal/pkg/logger"
	"github.com/gpaccess/backend/internal/services"
	"github.com/gpaccess/backend/internal/utils"
)

const (
	dbWaitRetries  = 10
	dbWaitInterval = 3 * time.Second
)

// App bundles everything a subcommand needs after bootstrap.
type App struct {
	Config config.Config
	Log    *logger.Logger

	PracticeService services.PracticeService
	AddressService  services.AddressService
	EmployeeService services.EmployeeService
	SystemService   services.AccessSystemService
	SeedService     *services.SeedService
}

// bootstrap builds the full wiring: config, store connectivity (with the
// bounded port-wait), migration, repos and services.
func bootstrap(cfgPath, logMode string) (*App, error) {
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := config.Load(cfgPath, log)
	if err != nil {
		return nil, err
	}

	retries := utils.GetEnvAsInt("DB_CONNECT_RETRIES", dbWaitRetries, log)
	if !db.WaitForEndpoint(cfg.Database.Host, cfg.Database.Port, retries, dbWaitInterval, log) {
		return nil, fmt.Errorf("data store %s:%s unreachable after %d attempts", cfg.Database.Host, cfg.Database.Port, retries)
	}

	postgresService, err := db.NewPostgresService(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("auto migration failed: %w", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	practiceRepo := repos.NewPracticeRepo(thePG, log)
	addressRepo := repos.NewAddressRepo(thePG, log)
	employeeRepo := repos.NewEmployeeRepo(thePG, log)
	jobTitleRepo := repos.NewJobTitleRepo(thePG, log)
	systemRepo := repos.NewAccessSystemRepo(thePG, log)
	ipRangeRepo := repos.NewIPRangeRepo(thePG, log)
	assocRepo := repos.NewAssociationRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	practiceService := services.NewPracticeService(thePG, log, practiceRepo, employeeRepo, systemRepo, addressRepo, assocRepo)
	addressService := services.NewAddressService(thePG, log, addressRepo, practiceRepo)
	employeeService := services.NewEmployeeService(thePG, log, employeeRepo, practiceRepo, jobTitleRepo, assocRepo)
	systemService := services.NewAccessSystemService(thePG, log, systemRepo, ipRangeRepo)
	seedService := services.NewSeedService(log, practiceService, addressService, employeeService, systemService)

	return &App{
		Config:          cfg,
		Log:             log,
		PracticeService: practiceService,
		AddressService:  addressService,
		EmployeeService: employeeService,
		SystemService:   systemService,
		SeedService:     seedService,
	}, nil
}
