// cmd/crypto-workbench-web/main.go
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/crypto-workbench/internal/api/rest/v1"
	"github.com/MGTheTrain/crypto-workbench/internal/api/web"
	"github.com/MGTheTrain/crypto-workbench/internal/app"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/tracing"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/web-app.yaml"
	}

	webConfig, err := config.InitializeWebConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&webConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize tracing
	tp, err := tracing.InitTracer(context.Background(), webConfig.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Error("failed to shut down tracer provider: ", err)
			}
		}()
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(webConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(webConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db         *gorm.DB
	sessions   workbench.SessionStore
	services   *appServices
	processors *cryptoProcessors
}

type cryptoProcessors struct {
	aes      cryptoalg.AESProcessor
	rsa      cryptoalg.RSAProcessor
	fallback cryptoalg.RSAKeyGenerator
}

type appServices struct {
	aes          workbench.AESService
	rsaKeys      workbench.RSAKeyService
	signatures   workbench.SignatureService
	capabilities workbench.CapabilityService
	operations   audit.OperationMetadataService
}

func (d *appDependencies) close(log logger.Logger) {
	d.sessions.Close()
	if d.db != nil {
		if err := persistence.CloseDB(d.db); err != nil {
			log.Error("failed to close database: ", err)
		}
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.WebConfig, log logger.Logger) (deps *appDependencies, err error) {
	// Initialize the audit trail
	db, repo, err := initializeAuditRepository(cfg, log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && db != nil {
			_ = persistence.CloseDB(db)
		}
	}()

	// Initialize cryptographic processors
	processors, err := initializeCryptoProcessors(cfg.Crypto, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize processors: %w", err)
	}

	sessions, err := app.NewMemorySessionStore(cfg.Session, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(cfg, repo, sessions, processors, log)
	if err != nil {
		sessions.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:         db,
		sessions:   sessions,
		services:   services,
		processors: processors,
	}, nil
}

// initializeAuditRepository opens and migrates the audit database. Both results are nil when auditing is off.
func initializeAuditRepository(cfg *config.WebConfig, log logger.Logger) (*gorm.DB, audit.OperationRepository, error) {
	if !cfg.AuditEnabled {
		log.Info("Audit trail disabled")
		return nil, nil, nil
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if cfg.Tracing.Enabled {
		if err := persistence.EnableTracing(db); err != nil {
			return nil, nil, fmt.Errorf("failed to enable db tracing: %w", err)
		}
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	repo, err := persistence.NewGormOperationRepository(db, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create operation repository: %w", err)
	}
	return db, repo, nil
}

// initializeCryptoProcessors sets up all cryptographic processors
func initializeCryptoProcessors(settings config.CryptoSettings, log logger.Logger) (*cryptoProcessors, error) {
	aesProcessor, err := cryptography.NewAESProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	var fallback cryptoalg.RSAKeyGenerator
	if settings.NativeFallback {
		fallback, err = cryptography.NewOpenSSLKeyGenerator(log, settings.OpenSSLPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create openssl key generator: %w", err)
		}
	}

	log.Info("Cryptographic processors initialized successfully")
	return &cryptoProcessors{
		aes:      aesProcessor,
		rsa:      rsaProcessor,
		fallback: fallback,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.WebConfig,
	repo audit.OperationRepository,
	sessions workbench.SessionStore,
	processors *cryptoProcessors,
	log logger.Logger,
) (*appServices, error) {
	capabilityService, err := app.NewCapabilityService(rand.Reader, processors.aes, processors.rsa, processors.fallback, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability service: %w", err)
	}
	if err := capabilityService.Probe(context.Background()).Err(); err != nil {
		// The page still starts and shows the failure as a banner
		log.Warn("Capability self-test failed: ", err)
	}

	recorder := app.NewNoopRecorder()
	var operationService audit.OperationMetadataService
	if repo != nil {
		recorder, err = app.NewOperationRecorder(repo, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create operation recorder: %w", err)
		}
		operationService, err = app.NewOperationMetadataService(repo, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create operation metadata service: %w", err)
		}
	}

	aesService, err := app.NewAESService(processors.aes, capabilityService, sessions, recorder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES service: %w", err)
	}

	rsaKeyService, err := app.NewRSAKeyService(processors.rsa, processors.fallback, capabilityService, sessions, recorder, cfg.Crypto, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA key service: %w", err)
	}

	signatureService, err := app.NewSignatureService(processors.rsa, capabilityService, sessions, recorder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		aes:          aesService,
		rsaKeys:      rsaKeyService,
		signatures:   signatureService,
		capabilities: capabilityService,
		operations:   operationService,
	}, nil
}

// newRouter wires the HTML page and the REST API onto one gin engine
func newRouter(cfg *config.WebConfig, deps *appDependencies, log logger.Logger) (*gin.Engine, error) {
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", v1.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", v1.SessionHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	pageHandler := web.NewHandler(web.Services{
		AES:          deps.services.aes,
		RSAKeys:      deps.services.rsaKeys,
		Signatures:   deps.services.signatures,
		Capabilities: deps.services.capabilities,
		Sessions:     deps.sessions,
	}, cfg.Session, cfg.Crypto.RSAKeySizes, log)
	if err := web.SetupRoutes(r, pageHandler); err != nil {
		return nil, fmt.Errorf("failed to set up page routes: %w", err)
	}

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.aes,
		deps.services.rsaKeys,
		deps.services.signatures,
		deps.services.capabilities,
		deps.sessions,
		deps.services.operations,
	)

	return r, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.WebConfig, deps *appDependencies, log logger.Logger) error {
	r, err := newRouter(cfg, deps, log)
	if err != nil {
		return err
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "crypto-workbench"),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
