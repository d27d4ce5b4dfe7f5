// Package main provides a headless draft harness. It replays a packs file
// through the pick engine, builds the final deck, persists the session to
// the analytics database and writes JSON/CSV exports plus optional charts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/charts"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/draft"
	"github.com/draftforge/draftforge/internal/export"
	"github.com/draftforge/draftforge/internal/metrics"
	"github.com/draftforge/draftforge/internal/storage"
	"github.com/draftforge/draftforge/internal/version"
)

var (
	configPath  = flag.String("config", "", "Config file path (default: built-in defaults)")
	packsPath   = flag.String("packs", "", "Packs JSON file to replay (required)")
	sessionID   = flag.String("session", "", "Session ID (default: generated from timestamp)")
	dbPath      = flag.String("db-path", "", "Analytics database path (overrides config)")
	exportDir   = flag.String("out", "", "Export directory (overrides config)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("draftforge %s\n", version.GetVersion())
		return
	}

	fmt.Printf("DraftForge %s - Draft Harness\n", version.GetVersion())
	fmt.Println("==========================")
	fmt.Println()

	if *packsPath == "" {
		flag.Usage()
		log.Fatal("Missing required -packs flag")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *exportDir != "" {
		cfg.Export.Dir = *exportDir
	}

	if err := loadCatalog(cfg); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	stopWatcher := startCatalogWatcher(cfg, func(cards []catalog.Card) {
		fmt.Printf("Catalog reloaded: %d cards\n", len(cards))
	})
	defer stopWatcher()

	packs, err := catalog.LoadPacks(*packsPath)
	if err != nil {
		log.Fatalf("Failed to load packs: %v", err)
	}
	fmt.Printf("Packs: %s (%d packs)\n", *packsPath, len(packs))

	id := *sessionID
	if id == "" {
		id = fmt.Sprintf("draft-%d", time.Now().Unix())
	}

	session, err := draft.NewSession(cfg.Draft)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	pickMetrics := metrics.NewPickMetrics()

	startedAt := time.Now()
	if err := replay(session, packs, pickMetrics); err != nil {
		log.Fatalf("Draft replay failed: %v", err)
	}
	completedAt := time.Now()

	fmt.Printf("Picks made: %d\n", len(session.Records()))
	fmt.Printf("Colors: %s\n", session.Colors())
	stats := pickMetrics.GetStats()
	fmt.Printf("Evaluation: %d cards scored, p50 %.2fms, p95 %.2fms\n",
		stats.CardsScored, stats.EvalLatency.P50, stats.EvalLatency.P95)

	deck, err := draft.BuildDeck(session.Pool(), session.Colors().ResolvedColors(), cfg.Deck)
	if err != nil {
		log.Fatalf("Failed to build deck: %v", err)
	}
	fmt.Printf("Maindeck: %d cards, sideboard: %d cards\n", len(deck.Maindeck), len(deck.Sideboard))
	if total := deck.Shortfall.Total(); total > 0 {
		fmt.Printf("Shortfall: %d creatures, %d spells, %d lands\n",
			deck.Shortfall.Creatures, deck.Shortfall.NonCreatures, deck.Shortfall.Lands)
	}

	if err := persist(cfg, id, session, deck, startedAt, completedAt); err != nil {
		log.Fatalf("Failed to persist session: %v", err)
	}
	fmt.Printf("Database: %s\n", cfg.Storage.Path)

	if err := writeExports(cfg, id, session, deck); err != nil {
		log.Fatalf("Failed to write exports: %v", err)
	}
	fmt.Printf("Exports: %s\n", cfg.Export.Dir)
}

// loadCatalog reports the configured card catalog. Packs files embed full
// card data, so the catalog is only validated here, not joined against.
func loadCatalog(cfg *config.Config) error {
	if cfg.Catalog.RemoteURL != "" && cfg.Catalog.SetCode != "" {
		client := catalog.NewClient(cfg.Catalog.RemoteURL)
		cards, err := client.FetchSet(context.Background(), cfg.Catalog.SetCode)
		if err != nil {
			return err
		}
		fmt.Printf("Catalog: %d cards (set %s)\n", len(cards), cfg.Catalog.SetCode)
		return nil
	}
	if cfg.Catalog.Path == "" {
		return nil
	}
	if _, err := os.Stat(cfg.Catalog.Path); os.IsNotExist(err) {
		return nil
	}
	cards, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog: %d cards (%s)\n", len(cards), cfg.Catalog.Path)
	return nil
}

// startCatalogWatcher reloads the catalog file on change for the duration of
// the run. The returned stop function cancels the watcher and waits for it.
func startCatalogWatcher(cfg *config.Config, onReload func([]catalog.Card)) (stop func()) {
	if !cfg.Catalog.Watch || cfg.Catalog.Path == "" {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	watcher := catalog.NewWatcher(cfg.Catalog.Path, onReload, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Catalog watcher stopped: %v", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// replay feeds each pack to the session, removing the chosen card between
// picks the way a pack shrinks as it passes around the table.
func replay(session *draft.Session, packs [][]catalog.Card, pickMetrics *metrics.PickMetrics) error {
	for _, pack := range packs {
		current := pack
		for len(current) > 0 && !session.Complete() {
			start := time.Now()
			result, err := session.Pick(current)
			if err != nil {
				return err
			}
			pickMetrics.RecordPick(time.Since(start), len(current))
			current = removeCard(current, result.Card)
		}
	}
	return nil
}

func removeCard(pack []catalog.Card, chosen catalog.Card) []catalog.Card {
	for i, card := range pack {
		if card.ID == chosen.ID && card.Name == chosen.Name {
			return append(pack[:i:i], pack[i+1:]...)
		}
	}
	return pack
}

func persist(cfg *config.Config, id string, session *draft.Session, deck *draft.Deck, startedAt, completedAt time.Time) error {
	storageConfig := storage.DefaultConfig(cfg.Storage.Path)
	storageConfig.AutoMigrate = cfg.Storage.AutoMigrate
	db, err := storage.Open(storageConfig)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	ctx := context.Background()
	service := storage.NewService(db)

	rec := &storage.SessionRecord{
		ID:          id,
		SetCode:     cfg.Catalog.SetCode,
		Rounds:      cfg.Draft.Rounds,
		PackSize:    cfg.Draft.PackSize,
		Colors:      session.Colors().String(),
		StartedAt:   startedAt,
		CompletedAt: &completedAt,
	}
	if err := service.SaveSession(ctx, rec); err != nil {
		return err
	}
	if err := service.SavePickRecords(ctx, id, session.Records()); err != nil {
		return err
	}
	return service.SaveDeck(ctx, id, deck)
}

func writeExports(cfg *config.Config, id string, session *draft.Session, deck *draft.Deck) error {
	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	draftExport := export.BuildExport(id, cfg.Catalog.SetCode, session.Records(), deck)
	if err := export.WriteJSON(draftExport, filepath.Join(cfg.Export.Dir, id+".json")); err != nil {
		return err
	}
	if err := export.WriteCSV(draftExport, filepath.Join(cfg.Export.Dir, id+".csv")); err != nil {
		return err
	}

	if !cfg.Export.Charts {
		return nil
	}

	curveConfig := charts.DefaultChartConfig()
	curveConfig.Title = "Mana Curve"
	curveConfig.Subtitle = id
	if err := charts.RenderCurveChart(session.Curve(), curveConfig, filepath.Join(cfg.Export.Dir, id+"-curve.html")); err != nil {
		return err
	}

	colorConfig := charts.DefaultChartConfig()
	colorConfig.Title = "Color Commitment"
	colorConfig.Subtitle = id
	return charts.RenderColorChart(session.Records(), colorConfig, filepath.Join(cfg.Export.Dir, id+"-colors.html"))
}
