package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/cli"
	transportHttp "github.com/iamasit07/4-in-a-row/engine/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/joho/godotenv"
)

const (
	modeMenu          = "menu"
	modeInteractive   = "interactive"
	modePredetermined = "predetermined"
	modeDemo          = "demo"
)

type options struct {
	mode       string
	depth      int
	difficulty string
	moves      string
	parallel   bool
	history    int
	watchAddr  string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.mode, "mode", modeMenu, "menu, interactive, predetermined or demo")
	flag.IntVar(&o.depth, "depth", 0, "engine search depth (overrides ENGINE_DEPTH and -difficulty)")
	flag.StringVar(&o.difficulty, "difficulty", "", "easy, medium or hard")
	flag.StringVar(&o.moves, "moves", "", "1-based human columns for predetermined mode, e.g. 4,3,4")
	flag.BoolVar(&o.parallel, "parallel", false, "search root moves in parallel")
	flag.IntVar(&o.history, "history", 0, "print the N most recent archived games and exit")
	flag.StringVar(&o.watchAddr, "watch", "", "serve spectators on this address (overrides WATCH_ADDR)")
	flag.Parse()
	return o
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	opts := parseFlags()

	if err := run(cfg, opts); err != nil {
		log.Fatal(err)
	}
}

// engineDepth resolves -depth, then ENGINE_DEPTH, then the difficulty.
func engineDepth(cfg *config.Config, opts options) (int, error) {
	if opts.depth > 0 {
		return opts.depth, nil
	}
	difficulty := opts.difficulty
	if difficulty == "" && !config.EngineDepthSet() {
		difficulty = config.EngineDifficulty()
	}
	if difficulty != "" {
		return bot.DepthForDifficulty(difficulty)
	}
	return cfg.EngineDepth, nil
}

func run(cfg *config.Config, opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	depth, err := engineDepth(cfg, opts)
	if err != nil {
		return err
	}

	observers := []game.Observer{cli.NewRenderer(os.Stdout)}

	// 1. Archive (optional)
	var gameRepo *postgres.GameRepo
	if cfg.DatabaseURL != "" {
		db, err := openArchive(ctx, cfg)
		if err != nil {
			log.Printf("[ARCHIVE] Warning: %v. Games will not be archived.", err)
		} else {
			defer db.Close()
			gameRepo = postgres.NewGameRepo(db)
			observers = append(observers, game.NewArchiver(gameRepo, 5*time.Second))

			cleanupWorker := cleanup.NewWorker(gameRepo, cfg.ArchiveRetention)
			cleanupWorker.Start()
			defer cleanupWorker.Stop()
		}
	}

	if opts.history > 0 {
		if gameRepo == nil {
			return errors.New("-history needs a reachable DATABASE_URL")
		}
		games, err := gameRepo.RecentGames(ctx, opts.history)
		if err != nil {
			return err
		}
		cli.PrintHistory(os.Stdout, games)
		return nil
	}

	settings := game.Settings{
		EngineDepth: depth,
		DemoDepths:  cfg.DemoDepths,
		DemoDelay:   cfg.DemoDelay,
		Parallel:    cfg.EngineParallel || opts.parallel,
	}

	// 2. Decision cache (optional)
	if cfg.CacheEnabled {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return err
		}
		if client != nil {
			cache := redis.NewRedisCache(client)
			defer cache.Close()
			settings.Cache = cache
			settings.CacheTTL = cfg.CacheTTL
		}
	}

	// 3. Spectators (optional)
	watchAddr := cfg.WatchAddr
	if opts.watchAddr != "" {
		watchAddr = opts.watchAddr
	}
	if watchAddr != "" {
		hub, shutdown, err := startSpectators(cfg, watchAddr, gameRepo)
		if err != nil {
			return err
		}
		defer shutdown()
		observers = append(observers, hub)
	}

	// 4. Games
	prompt := cli.NewPrompt(os.Stdin, os.Stdout)
	columns := cfg.SampleMoves
	if opts.moves != "" {
		if columns, err = config.ParseIntList(opts.moves); err != nil {
			return fmt.Errorf("invalid -moves: %w", err)
		}
	}

	switch opts.mode {
	case modeInteractive:
		return playInteractive(ctx, prompt, settings, observers)
	case modePredetermined:
		return playPredetermined(ctx, columns, settings, observers)
	case modeDemo:
		return playDemo(ctx, settings, observers)
	case modeMenu:
		answer, err := prompt.Ask("Would you like to play interactively? (y/n/skip): ")
		if err == nil && strings.EqualFold(answer, "y") {
			return playInteractive(ctx, prompt, settings, observers)
		}
		if err := playPredetermined(ctx, columns, settings, observers); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		fmt.Println()
		return playDemo(ctx, settings, observers)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func openArchive(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		return nil, err
	}

	log.Println("[ARCHIVE] Running database migrations...")
	if err := postgres.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Println("[ARCHIVE] Database migration completed successfully")
	return db, nil
}

func startSpectators(cfg *config.Config, addr string, gameRepo *postgres.GameRepo) (*websocket.Hub, func(), error) {
	hub := websocket.NewHub()
	routes := transportHttp.Routes{
		Watch:  websocket.NewHandler(hub, cfg.WatchSecret),
		Status: transportHttp.NewWatchHandler(hub),
		Secret: cfg.WatchSecret,
	}
	if gameRepo != nil {
		routes.History = transportHttp.NewHistoryHandler(gameRepo)
	}

	if cfg.WatchSecret != "" {
		token, err := auth.GenerateWatchToken(cfg.WatchSecret, cfg.WatchTokenTTL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[WATCH] Spectator token (valid %v): %s", cfg.WatchTokenTTL, token)
	}

	srv := transportHttp.NewServer(addr, transportHttp.NewRouter(routes))
	go func() {
		log.Printf("[WATCH] Spectator server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[WATCH] Server error: %v", err)
		}
	}()

	stopPing := make(chan struct{})
	go hub.KeepAlive(stopPing)

	shutdown := func() {
		close(stopPing)
		hub.CloseAll()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("[WATCH] Server forced to shutdown: %v", err)
		}
		log.Println("[WATCH] Spectator server stopped")
	}
	return hub, shutdown, nil
}

func report(res *game.Result, err error) error {
	if errors.Is(err, context.Canceled) {
		log.Println("[GAME] Interrupted")
		return nil
	}
	return err
}

func playInteractive(ctx context.Context, prompt *cli.Prompt, s game.Settings, observers []game.Observer) error {
	r, err := game.NewInteractive(prompt, s, observers...)
	if err != nil {
		return err
	}
	return report(r.Play(ctx))
}

func playPredetermined(ctx context.Context, columns []int, s game.Settings, observers []game.Observer) error {
	fmt.Printf("Human moves: %v\n", columns)

	zeroBased := make([]int, len(columns))
	for i, c := range columns {
		zeroBased[i] = c - 1
	}
	r, err := game.NewPredetermined(zeroBased, s, observers...)
	if err != nil {
		return err
	}
	return report(r.Play(ctx))
}

func playDemo(ctx context.Context, s game.Settings, observers []game.Observer) error {
	r, err := game.NewDemo(s, observers...)
	if err != nil {
		return err
	}
	return report(r.Play(ctx))
}
