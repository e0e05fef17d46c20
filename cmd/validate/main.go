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
	dev := flag.Bool("dev", false, "validate the dev board subset only")
	detail := flag.Bool("detail", false, "print per-error detail rows")
	configPath := flag.String("config", "configs/config.yaml", "configuration file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	boardStore := store.NewBoardStore(cfg.Archive.DataDir, logger)

	var boardIDs []string
	for _, sel := range cfg.SelectBoards(*dev) {
		boardIDs = append(boardIDs, sel.BoardID)
	}

	fmt.Println("Starting validation...")
	reports, issues := asset.Validate(boardStore, boardIDs)

	printSummary(reports)
	if *detail {
		printIssues(issues)
	}

	if len(issues) > 0 {
		os.Exit(1)
	}
}

func printSummary(reports []asset.BoardReport) {
	fmt.Println("\nSummary")
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-15s%-30s%-10s%-10s%s\n", "Board ID", "Board Name", "Total", "Errors", "Rate")
	fmt.Println(strings.Repeat("-", 100))

	totalAssets := 0
	totalErrors := 0

	for _, report := range reports {
		if report.MissingJSON {
			fmt.Printf("%-15s%-30s%-10s%-10s%s\n", report.BoardID, "** Missing JSON **", "-", "-", "-")
			continue
		}

		totalAssets += report.TotalAssets
		totalErrors += report.ErrorCount

		rate := "0%"
		if report.TotalAssets > 0 {
			rate = fmt.Sprintf("%d%%", report.ErrorCount*100/report.TotalAssets)
		}
		fmt.Printf("%-15s%-30s%-10d%-10d%s\n",
			report.BoardID, truncate(report.BoardName, 25), report.TotalAssets, report.ErrorCount, rate)
	}

	totalRate := 0
	if totalAssets > 0 {
		totalRate = totalErrors * 100 / totalAssets
	} else if totalErrors > 0 {
		totalRate = 100
	}

	fmt.Println(strings.Repeat("-", 100))
	fmt.Printf("%-45s%-10d%-10d%d%%\n", "TOTAL", totalAssets, totalErrors, totalRate)
	fmt.Println(strings.Repeat("=", 100))
}

func printIssues(issues []asset.Issue) {
	fmt.Println("\nAsset Errors Details:")
	fmt.Println(strings.Repeat("=", 150))
	fmt.Printf("%-20s%-15s%-30s%-15s%-30s%-15s%-15s%s\n",
		"Type", "Board ID", "Board Name", "Item ID", "Item Name", "Asset ID", "Expected Size", "Actual Size")
	fmt.Println(strings.Repeat("-", 150))

	if len(issues) == 0 {
		fmt.Println("No errors found")
	}

	for _, issue := range issues {
		switch issue.Type {
		case asset.IssueMissingJSON:
			fmt.Printf("%-20s%-15s\n", "No board JSON found", issue.BoardID)
		case asset.IssueMissingFile:
			printIssueRow("Missing file", issue)
		case asset.IssueSizeMismatch:
			printIssueRow("Size mismatch", issue)
		}
	}
	fmt.Println(strings.Repeat("=", 150))
}

func printIssueRow(kind string, issue asset.Issue) {
	fmt.Printf("%-20s%-15s%-30s%-15s%-30s%-15s%-15d%d\n",
		kind,
		issue.BoardID,
		truncate(issue.BoardName, 25),
		issue.ItemID,
		truncate(issue.ItemName, 25),
		issue.AssetID,
		issue.ExpectedSize,
		issue.ActualSize,
	)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
