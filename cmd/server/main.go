package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"landlink/config"
	"landlink/database"
	"landlink/pkg/logging"
	"landlink/pkg/predictor"
	"landlink/pkg/session"
	"landlink/pkg/store"
	"landlink/router"

	authCtrlImp "landlink/pkg/auth/controllerImp"
	farmerCtrlImp "landlink/pkg/farmer/controllerImp"
	farmerSvcImp "landlink/pkg/farmer/serviceImp"
	healthCtrlImp "landlink/pkg/health/controllerImp"
	landRepoImp "landlink/pkg/land/repositoryImp"
	landownerCtrlImp "landlink/pkg/landowner/controllerImp"
	landownerSvcImp "landlink/pkg/landowner/serviceImp"
	predictorCtrlImp "landlink/pkg/predictor/controllerImp"
	profileRepoImp "landlink/pkg/profile/repositoryImp"
	storeCtrlImp "landlink/pkg/store/controllerImp"
)

var (
	cfg    config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "landlink",
	Short: "Farmer and landowner marketplace API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		var err error
		if logger, err = logging.New(cfg.LogLevel); err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		logger.Info("[db] schema up to date", zap.String("driver", cfg.DBDriver))
		return closeDB(db)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func serve(ctx context.Context) error {
	logger.Info("[cfg] loaded", cfg.Fields()...)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	catalog := store.DefaultCatalog()
	if cfg.CatalogPath != "" {
		if catalog, err = store.LoadCatalog(cfg.CatalogPath); err != nil {
			return fmt.Errorf("store catalog: %w", err)
		}
	}

	profiles := profileRepoImp.New(db)
	lands := landRepoImp.New(db)

	sessions := session.NewManager(profiles, logger)
	carts := store.NewCarts(catalog, cfg.OrderBannerDelay)
	defer carts.StopAll()
	carts.Follow(sessions)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(logging.RequestLogger(logger))

	router.New(e, sessions, router.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		DevLogin:  cfg.EnableDevLogin,
	}, router.Controllers{
		Auth:      authCtrlImp.NewAuthController(sessions, logger),
		Farmer:    farmerCtrlImp.New(farmerSvcImp.NewFarmerService(profiles, lands, logger)),
		Landowner: landownerCtrlImp.New(landownerSvcImp.NewLandownerService(profiles, lands, logger)),
		Predictor: predictorCtrlImp.New(predictor.NewService(predictor.NewRandomEstimator(nil), cfg.PredictDelay, logger)),
		Store:     storeCtrlImp.New(carts),
		Health:    healthCtrlImp.NewHealthCtrl(db, sessions),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[http] listening", zap.String("port", cfg.Port))
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
