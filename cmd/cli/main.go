package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pep299/portfolio-pulse/internal/application"
)

func main() {
	var (
		portfolioFile = flag.String("portfolio", "", "Save portfolio from a holdings file (TICKER QUANTITY DOLLAR_VALUE per line)")
		generate      = flag.Bool("generate", false, "Run one digest generation cycle")
		history       = flag.Bool("history", false, "Print digest history as JSON")
	)
	flag.Parse()

	if *portfolioFile == "" && !*generate && !*history {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	app, err := application.New(ctx)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	if *portfolioFile != "" {
		text, err := os.ReadFile(*portfolioFile)
		if err != nil {
			log.Fatalf("Failed to read holdings file: %v", err)
		}
		portfolio, err := app.Portfolio.ParseAndSave(ctx, string(text))
		if err != nil {
			log.Fatalf("Failed to save portfolio: %v", err)
		}
		fmt.Printf("Saved %d holdings, total value $%.2f\n", len(portfolio.Holdings), portfolio.TotalValue)
	}

	if *generate {
		digest, err := app.Digest.Generate(ctx)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		fmt.Printf("Generated digest %q with %d cards\n", digest.Title, len(digest.Cards))
	}

	if *history {
		digests, err := app.Digest.History(ctx)
		if err != nil {
			log.Fatalf("Failed to load history: %v", err)
		}
		out, err := json.MarshalIndent(digests, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode history: %v", err)
		}
		fmt.Println(string(out))
	}
}
