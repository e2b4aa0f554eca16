package cli

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/mekanik-go/internal/adapters/catalog"
	"github.com/andrescamacho/mekanik-go/internal/adapters/logging"
	"github.com/andrescamacho/mekanik-go/internal/adapters/metrics"
	"github.com/andrescamacho/mekanik-go/internal/adapters/persistence"
	"github.com/andrescamacho/mekanik-go/internal/application/common"
	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	appSavegame "github.com/andrescamacho/mekanik-go/internal/application/savegame"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/infrastructure/config"
	"github.com/andrescamacho/mekanik-go/internal/infrastructure/database"
)

// session is everything one CLI invocation needs: configuration, the
// database, a store holding the loaded game and a mediator wired to it
type session struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *logging.ZerologLogger
	db       *gorm.DB
	repo     *persistence.GormSaveRepository
	store    *appGame.Store
	mediator mediator.Mediator

	// set when command metrics are enabled
	commandMetrics *metrics.CommandMetricsCollector
}

type sessionOptions struct {
	// fresh skips the autosave and starts a new game
	fresh bool
	// withMetrics initializes the Prometheus registry when config enables it
	withMetrics bool
}

func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = common.WithLogger(ctx, logger)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	starter, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	s := &session{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		db:       db,
		repo:     persistence.NewGormSaveRepository(db, shared.NewRealClock()),
		store:    appGame.NewStore(domainGame.State{}),
		mediator: mediator.NewMediator(),
	}

	s.mediator.RegisterMiddleware(common.LoggerMiddleware(logger))
	if opts.withMetrics && cfg.Metrics.Enabled {
		metrics.InitRegistry()
		s.commandMetrics = metrics.NewCommandMetricsCollector()
		if err := s.commandMetrics.Register(); err != nil {
			s.close()
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		s.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(s.commandMetrics))
	}

	if err := appGame.RegisterHandlers(s.mediator, s.store, catalog.NewFactory(starter)); err != nil {
		s.close()
		return nil, err
	}
	if err := appSavegame.RegisterHandlers(s.mediator, s.store, s.repo); err != nil {
		s.close()
		return nil, err
	}

	if opts.fresh {
		_, err = s.send(&appGame.NewGameCommand{})
	} else {
		err = s.restore()
	}
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// restore puts the autosave into the store, or a new game when there is none
func (s *session) restore() error {
	state, err := s.repo.LoadGame(s.ctx)
	var noSave *shared.NoSavedGameError
	if errors.As(err, &noSave) {
		s.logger.Log("INFO", "No autosave found, starting a new game", nil)
		if _, err := s.send(&appGame.NewGameCommand{}); err != nil {
			return err
		}
		// persist right away so IDs shown by read-only commands stay valid
		return s.save()
	}
	if err != nil {
		return fmt.Errorf("failed to load autosave: %w", err)
	}
	_, err = s.send(&appGame.SetGameStateCommand{State: state})
	return err
}

func (s *session) send(request mediator.Request) (mediator.Response, error) {
	return s.mediator.Send(s.ctx, request)
}

// sendState sends a command answered with a StateResponse and returns the new state
func (s *session) sendState(request mediator.Request) (domainGame.State, error) {
	resp, err := s.send(request)
	if err != nil {
		return domainGame.State{}, err
	}
	stateResp, ok := resp.(*appGame.StateResponse)
	if !ok {
		return domainGame.State{}, fmt.Errorf("unexpected response type %T", resp)
	}
	return stateResp.State, nil
}

// save writes the store's current state to the autosave
func (s *session) save() error {
	_, err := s.send(&appSavegame.SaveGameCommand{})
	return err
}

func (s *session) close() {
	if err := database.Close(s.db); err != nil {
		s.logger.Log("WARN", "Failed to close database", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
