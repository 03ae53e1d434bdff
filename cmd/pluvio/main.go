package main

import (
	"fmt"
	"os"
	"path/filepath"

	"pluvio/internal/actuation"
	"pluvio/internal/cli"
	"pluvio/internal/conversation"
	"pluvio/internal/db"
	"pluvio/internal/domain"
	"pluvio/internal/gate"
	"pluvio/internal/intent"
	"pluvio/internal/llm"
	"pluvio/internal/repository"
	"pluvio/internal/service"
	"pluvio/internal/synthesis"
	"pluvio/internal/weather"

	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.pluvio/pluvio.db
	dbPath := os.Getenv("PLUVIO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pluvio", "pluvio.db")
	}

	postalCode := os.Getenv("PLUVIO_POSTAL_CODE")
	if postalCode == "" {
		return fmt.Errorf("PLUVIO_POSTAL_CODE is required (e.g. 78701)")
	}

	preference := domain.TierStandard
	if v := os.Getenv("PLUVIO_PREFERENCE"); v != "" {
		if !domain.ValidPreferenceTiers[v] {
			return fmt.Errorf("PLUVIO_PREFERENCE must be conserve, standard, or lush (got %q)", v)
		}
		preference = domain.PreferenceTier(v)
	}

	controllerURL := os.Getenv("PLUVIO_CONTROLLER_URL")
	if controllerURL == "" {
		controllerURL = "http://localhost:8080"
	}

	// Optional timezone override. When unset the plan's clock follows the
	// yard's geocoded timezone from the forecast, so plan dates and
	// elapsed-slot cutoffs match the yard rather than the host.
	timezone := os.Getenv("PLUVIO_TIMEZONE")

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and unit of work
	planRepo := repository.NewSQLitePlanRepo(database)
	actionLog := repository.NewSQLiteActionLogRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Physical controller and weather
	controller := actuation.NewHTTPController(controllerURL)

	endpoints := weather.DefaultEndpoints()
	if v := os.Getenv("PLUVIO_WEATHER_ENDPOINT"); v != "" {
		endpoints.Forecast = v
	}
	provider := weather.NewOpenMeteoProvider(endpoints)

	// Plan generation: Ollama when enabled, deterministic fixture otherwise
	// so the CLI works on a machine without a local model.
	var generator synthesis.Generator
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		generator = synthesis.NewLLMGenerator(llm.NewOllamaClient(llmCfg, observer))
	} else {
		generator = synthesis.NewFixtureGenerator()
	}

	zones := domain.DefaultZones()
	orch := synthesis.NewOrchestrator(generator, zones, preference, timezone)

	// Services
	plans := service.NewPlanService(planRepo, uow, orch, provider, controller, postalCode)

	store := conversation.NewStore()
	g := gate.New(controller)
	// Expired sessions drop their parked confirmations with them.
	store.OnEviction(g.EvictSession)

	chat := service.NewChatService(
		store,
		intent.NewClassifier(),
		g,
		plans,
		orch,
		provider,
		controller,
		actionLog,
		postalCode,
	)

	app := &cli.App{
		Chat:       chat,
		Plans:      plans,
		Proactive:  plans,
		Controller: controller,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
