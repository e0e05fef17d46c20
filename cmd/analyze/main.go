package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"board-archive/internal/asset"
	"board-archive/internal/config"
	"board-archive/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "configuration file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	boardStore := store.NewBoardStore(cfg.Archive.DataDir, zap.NewNop())

	fmt.Println("Analyzing assets...")
	usages, err := asset.Analyze(boardStore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing assets: %v\n", err)
		os.Exit(1)
	}

	if len(usages) == 0 {
		fmt.Printf("No board JSON files found in %s\n", cfg.Archive.DataDir)
		return
	}

	printSummary(usages)
}

func printSummary(usages []asset.Usage) {
	fmt.Println("\nSummary")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%-15s%-30s%-10s%s\n", "Board ID", "Board Name", "Count", "Total Size")
	fmt.Println(strings.Repeat("-", 80))

	totalCount := 0
	var totalSize int64

	for _, usage := range usages {
		totalCount += usage.Count
		totalSize += usage.Size

		name := usage.BoardName
		if len(name) > 29 {
			name = name[:29]
		}
		fmt.Printf("%-15s%-30s%-10d%s\n", usage.BoardID, name, usage.Count, asset.FormatBytes(usage.Size))
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-45s%-10d%s\n", "TOTAL", totalCount, asset.FormatBytes(totalSize))
	fmt.Println(strings.Repeat("=", 80))
}
