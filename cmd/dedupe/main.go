// File: cmd/dedupe/main.go
//
// One-shot duplicate cleanup over the showcase collection. Run exclusively:
// two concurrent runs against the same collection can delete each other's
// survivors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hackmatch/showcase-search/internal/config"
	"github.com/hackmatch/showcase-search/internal/services"
	"github.com/hackmatch/showcase-search/internal/services/dedupe"
	"github.com/hackmatch/showcase-search/internal/services/search"
	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

func main() {
	collection := flag.String("collection", search.Collection, "collection to deduplicate")
	dryRun := flag.Bool("dry-run", false, "resolve groups and report without deleting")
	scanLimit := flag.Uint("limit", dedupe.DefaultScanLimit, "maximum points to scan")
	flag.Parse()

	cfg := config.Load()
	logger := services.NewLogger("dedupe")

	storeCfg := vectordb.DefaultConfig()
	storeCfg.URL = cfg.QdrantURL
	storeCfg.APIKey = cfg.QdrantAPIKey

	store, err := vectordb.NewQdrantStore(storeCfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}
	defer store.Close()

	engine := dedupe.NewEngine(store, logger)
	report, err := engine.Run(context.Background(), dedupe.Options{
		Collection: *collection,
		ScanLimit:  uint32(*scanLimit),
		DryRun:     *dryRun,
	})
	if err != nil {
		if report != nil && len(report.Deleted) > 0 {
			// Fail-stop: earlier batches stay deleted.
			log.Printf("run halted after partial progress (%d deletions queued)", len(report.Deleted))
		}
		log.Fatalf("Deduplication failed: %v", err)
	}

	fmt.Printf("Scanned:       %d points\n", report.Scanned)
	fmt.Printf("Link groups:   %d\n", report.LinkGroups)
	fmt.Printf("Title groups:  %d\n", report.TitleGroups)
	fmt.Printf("Survivors:     %d\n", len(report.Survivors))
	if report.DryRun {
		fmt.Printf("Would delete:  %d points (dry run)\n", len(report.Deleted))
	} else {
		fmt.Printf("Deleted:       %d points\n", len(report.Deleted))
	}

	os.Exit(0)
}
