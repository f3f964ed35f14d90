package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	achievementinadapter "github.com/javikin/umbral-sub003/internal/modules/achievement/adapter/in"
	achievementoutadapter "github.com/javikin/umbral-sub003/internal/modules/achievement/adapter/out"
	achievementdomain "github.com/javikin/umbral-sub003/internal/modules/achievement/domain"
	achievementservice "github.com/javikin/umbral-sub003/internal/modules/achievement/service"
	achievementusecase "github.com/javikin/umbral-sub003/internal/modules/achievement/usecase"
	companioninadapter "github.com/javikin/umbral-sub003/internal/modules/companion/adapter/in"
	companionoutadapter "github.com/javikin/umbral-sub003/internal/modules/companion/adapter/out"
	companiondomain "github.com/javikin/umbral-sub003/internal/modules/companion/domain"
	companionservice "github.com/javikin/umbral-sub003/internal/modules/companion/service"
	companionusecase "github.com/javikin/umbral-sub003/internal/modules/companion/usecase"
	ledgerinadapter "github.com/javikin/umbral-sub003/internal/modules/ledger/adapter/in"
	ledgeroutadapter "github.com/javikin/umbral-sub003/internal/modules/ledger/adapter/out"
	ledgerdomain "github.com/javikin/umbral-sub003/internal/modules/ledger/domain"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
	ledgerservice "github.com/javikin/umbral-sub003/internal/modules/ledger/service"
	ledgerusecase "github.com/javikin/umbral-sub003/internal/modules/ledger/usecase"
	locationinadapter "github.com/javikin/umbral-sub003/internal/modules/location/adapter/in"
	locationoutadapter "github.com/javikin/umbral-sub003/internal/modules/location/adapter/out"
	locationservice "github.com/javikin/umbral-sub003/internal/modules/location/service"
	locationusecase "github.com/javikin/umbral-sub003/internal/modules/location/usecase"
	profileinadapter "github.com/javikin/umbral-sub003/internal/modules/profile/adapter/in"
	profileoutadapter "github.com/javikin/umbral-sub003/internal/modules/profile/adapter/out"
	profileservice "github.com/javikin/umbral-sub003/internal/modules/profile/service"
	profileusecase "github.com/javikin/umbral-sub003/internal/modules/profile/usecase"
	sessioninadapter "github.com/javikin/umbral-sub003/internal/modules/session/adapter/in"
	sessionoutadapter "github.com/javikin/umbral-sub003/internal/modules/session/adapter/out"
	sessionin "github.com/javikin/umbral-sub003/internal/modules/session/port/in"
	sessionservice "github.com/javikin/umbral-sub003/internal/modules/session/service"
	sessionusecase "github.com/javikin/umbral-sub003/internal/modules/session/usecase"
	verifierinadapter "github.com/javikin/umbral-sub003/internal/modules/verifier/adapter/in"
	verifieroutadapter "github.com/javikin/umbral-sub003/internal/modules/verifier/adapter/out"
	verifierdomain "github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
	verifierservice "github.com/javikin/umbral-sub003/internal/modules/verifier/service"
	verifierusecase "github.com/javikin/umbral-sub003/internal/modules/verifier/usecase"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	"github.com/javikin/umbral-sub003/internal/platform/config"
	"github.com/javikin/umbral-sub003/internal/platform/id"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
	"github.com/javikin/umbral-sub003/internal/platform/tuning"
)

type App struct {
	ProfileCLI     profileinadapter.CLIHandler
	SessionCLI     sessioninadapter.CLIHandler
	LedgerCLI      ledgerinadapter.CLIHandler
	CompanionCLI   companioninadapter.CLIHandler
	LocationCLI    locationinadapter.CLIHandler
	AchievementCLI achievementinadapter.CLIHandler
	VerifierCLI    verifierinadapter.CLIHandler

	// Sessions and Ledger back the live dashboard.
	Sessions sessionin.Usecase
	Ledger   ledgerin.Usecase
	Rewards  *achievementinadapter.RewardObserver

	Log   *logger.Logger
	db    *sql.DB
	clock clock.Clock
}

// New opens the database and wires every module. Options override the
// system clock and id generator; tests use them.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := options{clock: clock.SystemClock{}, ids: id.UUID{}}
	for _, opt := range opts {
		opt(&o)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	tune, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		return nil, err
	}
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	app, err := wire(ctx, cfg, tune, db, log, o)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func wire(ctx context.Context, cfg config.Config, tune tuning.Tuning, db *sql.DB, log *logger.Logger, o options) (*App, error) {
	txm := sqlite.NewTxManager(db)

	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(o.clock, o.ids, profileoutadapter.NewSQLiteProfileStore(db)))

	ledgerSvc, err := ledgerservice.NewLedgerService(ctx, o.clock, ledgeroutadapter.NewSQLiteLedgerStore(db), ledgerdomain.Economy{
		EnergyPerMinute:   tune.EnergyPerMinute,
		PerAttemptBonus:   tune.PerAttemptBonus,
		StreakMultipliers: tune.StreakMultipliers,
		LevelXPBase:       tune.LevelXPBase,
	}, log.With("module", "ledger"))
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	ledgerUC := ledgerusecase.NewInteractor(ledgerSvc)

	plugin := verifierdomain.Plugin{Binary: cfg.VerifierPlugin, SHA256: cfg.VerifierPluginSHA256}
	if plugin.Enabled() {
		if err := plugin.Validate(); err != nil {
			return nil, err
		}
	}
	verifierUC := verifierusecase.NewInteractor(verifierservice.NewVerifierService(
		verifieroutadapter.NewSQLiteCodeStore(db),
		verifieroutadapter.NewBcryptHasher(0),
		verifieroutadapter.NewGRPCTagVerifier(),
		plugin,
		log.With("module", "verifier"),
	))

	ctrl := sessionservice.NewController(
		o.clock,
		o.ids,
		txm,
		sessionoutadapter.NewSQLiteSessionStore(db),
		sessionoutadapter.NewProfileDirectoryAdapter(profileUC),
		sessionoutadapter.NewLedgerCreditorAdapter(ledgerUC),
		sessionoutadapter.NewCredentialVerifierAdapter(verifierUC),
		log.With("module", "session"),
	)
	if err := ctrl.Recover(ctx); err != nil {
		return nil, fmt.Errorf("recover session: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(ctrl)

	locationUC := locationusecase.NewInteractor(locationservice.NewLocationService(
		o.clock,
		locationoutadapter.NewSQLiteLocationStore(db),
		locationoutadapter.NewLedgerAccountAdapter(ledgerUC),
		log.With("module", "location"),
	))

	thresholds, err := companiondomain.NewThresholds(tune.EvolutionThresholds)
	if err != nil {
		return nil, err
	}
	species := make(companiondomain.Catalog, 0, len(tune.Species))
	for _, s := range tune.Species {
		species = append(species, companiondomain.Species{ID: s.ID, Name: s.Name, MinLevel: s.MinLevel, MinLocations: s.MinLocations})
	}
	companionUC := companionusecase.NewInteractor(companionservice.NewCompanionService(companionservice.Deps{
		Clock:      o.clock,
		IDs:        o.ids,
		Store:      companionoutadapter.NewSQLiteCompanionStore(db),
		Energy:     companionoutadapter.NewLedgerAccountAdapter(ledgerUC),
		Locations:  companionoutadapter.NewLocationCounterAdapter(locationUC),
		Catalog:    species,
		Thresholds: thresholds,
		Log:        log.With("module", "companion"),
	}))

	definitions := make(achievementdomain.Catalog, 0, len(tune.Achievements))
	for _, a := range tune.Achievements {
		definitions = append(definitions, achievementdomain.Definition{
			ID:          a.ID,
			Title:       a.Title,
			Category:    achievementdomain.Category(a.Category),
			Target:      a.Target,
			StarsReward: a.StarsReward,
		})
	}
	achievementSvc, err := achievementservice.NewAchievementService(
		o.clock,
		definitions,
		achievementoutadapter.NewSQLiteAchievementStore(db),
		achievementoutadapter.NewLedgerStarAdapter(ledgerUC),
		log.With("module", "achievement"),
	)
	if err != nil {
		return nil, fmt.Errorf("achievement catalog: %w", err)
	}
	achievementUC := achievementusecase.NewInteractor(achievementSvc)

	return &App{
		ProfileCLI:     profileinadapter.NewCLIHandler(profileUC),
		SessionCLI:     sessioninadapter.NewCLIHandler(sessionUC),
		LedgerCLI:      ledgerinadapter.NewCLIHandler(ledgerUC),
		CompanionCLI:   companioninadapter.NewCLIHandler(companionUC),
		LocationCLI:    locationinadapter.NewCLIHandler(locationUC),
		AchievementCLI: achievementinadapter.NewCLIHandler(achievementUC),
		VerifierCLI:    verifierinadapter.NewCLIHandler(verifierUC),
		Sessions:       sessionUC,
		Ledger:         ledgerUC,
		Rewards:        achievementinadapter.NewRewardObserver(sessionUC, companionUC, locationUC, ledgerUC, achievementUC, log.With("module", "rewards")),
		Log:            log,
		db:             db,
		clock:          o.clock,
	}, nil
}

func (a *App) Close() error {
	a.Log.Sync()
	return a.db.Close()
}

type options struct {
	clock clock.Clock
	ids   id.Generator
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithIDs(g id.Generator) Option {
	return func(o *options) { o.ids = g }
}
