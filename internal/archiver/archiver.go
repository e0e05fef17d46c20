package archiver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"board-archive/internal/asset"
	"board-archive/internal/client"
	"board-archive/internal/config"
	"board-archive/internal/domain"
	"board-archive/internal/pool"
	"board-archive/internal/store"
	"board-archive/internal/transform"
)

// ErrNothingToDo is the configuration error for a run with both phases
// disabled.
var ErrNothingToDo = errors.New("fetch and download both disabled, nothing to do")

// ErrMissingToken is the configuration error for a run without upstream
// API tokens.
var ErrMissingToken = errors.New("upstream API token is not configured")

// Status classifies one board's run outcome
type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
	StatusExist   Status = "exist"
)

// Result is one board's bookkeeping for the run summary
type Result struct {
	BoardID   string
	BoardName string
	Status    Status
	Err       string
	Assets    asset.Stats
}

// Options select the phases and board set of one run
type Options struct {
	Dev      bool
	Clean    bool
	Fetch    bool
	Download bool
}

// Archiver drives the end-to-end archival run: per-board fetch, transform
// and write, then per-board asset sync, with failure isolation per board.
type Archiver struct {
	cfg    *config.Config
	client client.MondayClient
	store  *store.BoardStore
	syncer *asset.Syncer
	logger *zap.Logger
}

// New creates a new Archiver
func New(cfg *config.Config, mondayClient client.MondayClient, boardStore *store.BoardStore, syncer *asset.Syncer, logger *zap.Logger) *Archiver {
	return &Archiver{
		cfg:    cfg,
		client: mondayClient,
		store:  boardStore,
		syncer: syncer,
		logger: logger,
	}
}

// Run executes one archival run and returns every configured board's result.
// Configuration errors fail before any work starts; board failures are
// isolated and reported in the results.
func (a *Archiver) Run(ctx context.Context, opts Options) ([]Result, error) {
	if !opts.Fetch && !opts.Download {
		return nil, ErrNothingToDo
	}
	if !a.cfg.HasTokens() {
		return nil, ErrMissingToken
	}

	boards := a.cfg.SelectBoards(opts.Dev)
	runID := uuid.New().String()

	a.logger.Info("Starting archival run",
		zap.String("run_id", runID),
		zap.Bool("dev", opts.Dev),
		zap.Bool("fetch", opts.Fetch),
		zap.Bool("download", opts.Download),
		zap.Int("boards", len(boards)),
	)
	printBanner(opts)

	if err := a.setup(opts, boards); err != nil {
		return nil, err
	}

	var results []Result
	if opts.Fetch {
		fmt.Println("\nPhase 1: Fetching and saving board data...")
		for _, sel := range boards {
			fmt.Printf("Processing board: %s\n", sel.BoardID)
			results = append(results, a.fetchBoard(ctx, sel))
		}
	} else {
		fmt.Println("\nPhase 1: Data fetching skipped.")
		for _, sel := range boards {
			results = append(results, a.existingResult(sel.BoardID))
		}
	}

	if opts.Download {
		fmt.Println("\nPhase 2: Downloading assets...")
		for i := range results {
			if results[i].Status == StatusFail {
				continue
			}
			a.syncBoardAssets(ctx, &results[i])
		}
	} else {
		fmt.Println("\nPhase 2: Asset download skipped.")
	}

	printSummary(results)
	a.logger.Info("Archival run finished", zap.String("run_id", runID))
	return results, nil
}

// setup ensures the on-disk layout and optionally cleans stale board files
func (a *Archiver) setup(opts Options, boards []config.BoardSelection) error {
	if err := a.store.EnsureLayout(); err != nil {
		return err
	}

	if !opts.Clean {
		return nil
	}

	validIDs := make([]string, 0, len(boards))
	for _, sel := range boards {
		validIDs = append(validIDs, sel.BoardID)
	}
	_, err := a.store.CleanBoards(validIDs)
	return err
}

// fetchBoard runs Phase 1 for one board. Any failure marks this board's
// result but never propagates to sibling boards.
func (a *Archiver) fetchBoard(ctx context.Context, sel config.BoardSelection) Result {
	result := Result{BoardID: sel.BoardID, Status: StatusSuccess}

	boardInfo, err := a.client.FetchBoardGroups(ctx, sel.BoardID, sel.Token)
	if err != nil {
		a.logger.Error("Failed to fetch board",
			zap.String("board_id", sel.BoardID),
			zap.Error(err),
		)
		result.Status = StatusFail
		result.Err = failureMessage(err)
		return result
	}
	result.BoardName = boardInfo.Name

	board := &domain.Board{
		BoardID:   boardInfo.ID,
		Name:      boardInfo.Name,
		CreatedAt: boardInfo.CreatedAt,
		Groups:    []domain.Group{},
	}

	for _, groupInfo := range boardInfo.Groups {
		fmt.Printf("- Processing group: %s (%s)\n", groupInfo.Title, groupInfo.ID)

		items, err := a.fetchGroupItems(ctx, sel, groupInfo.ID)
		if err != nil {
			a.logger.Error("Failed to fetch group items",
				zap.String("board_id", sel.BoardID),
				zap.String("group_id", groupInfo.ID),
				zap.Error(err),
			)
			result.Status = StatusFail
			result.Err = failureMessage(err)
			return result
		}

		a.fetchAllItemComments(ctx, sel, items, &result)

		board.Groups = append(board.Groups, domain.Group{
			GroupID: groupInfo.ID,
			Name:    groupInfo.Title,
			Items:   items,
		})
	}

	if err := a.store.WriteBoard(board); err != nil {
		result.Status = StatusFail
		result.Err = failureMessage(err)
	}
	return result
}

// fetchGroupItems drains one group's item pages. The cursor dependency
// forces strictly sequential pages.
func (a *Archiver) fetchGroupItems(ctx context.Context, sel config.BoardSelection, groupID string) ([]domain.Item, error) {
	items := []domain.Item{}
	var cursor *string

	for {
		page, err := a.client.FetchGroupItems(ctx, sel.BoardID, groupID, cursor, sel.Token)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.ItemsPage.Items {
			items = append(items, transform.Item(sel.BoardID, raw))
		}

		cursor = page.ItemsPage.Cursor
		if cursor == nil {
			break
		}
	}
	return items, nil
}

// fetchAllItemComments fetches comments for sibling items under the fetch
// concurrency bound. Per item, pages are strictly sequential; a failed item
// flips the board's status but its siblings still complete.
func (a *Archiver) fetchAllItemComments(ctx context.Context, sel config.BoardSelection, items []domain.Item, result *Result) {
	var mu sync.Mutex
	fail := func(itemID string, err error) {
		a.logger.Error("Failed to fetch item comments",
			zap.String("board_id", sel.BoardID),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		mu.Lock()
		result.Status = StatusFail
		result.Err = failureMessage(err)
		mu.Unlock()
	}

	indexes := make([]int, len(items))
	for i := range items {
		indexes[i] = i
	}

	pool.ForEach(indexes, a.cfg.Archive.FetchConcurrency, func(i int) {
		item := &items[i]

		comments, err := a.fetchItemComments(ctx, sel, item.ItemID)
		if err != nil {
			fail(item.ItemID, err)
		} else {
			item.Comments = comments
		}

		for j := range item.SubItems {
			sub := &item.SubItems[j]
			comments, err := a.fetchItemComments(ctx, sel, sub.ItemID)
			if err != nil {
				fail(item.ItemID+"-"+sub.ItemID, err)
				continue
			}
			sub.Comments = comments
		}
	})
}

// fetchItemComments drains one item's comment pages; a page shorter than
// the limit ends pagination.
func (a *Archiver) fetchItemComments(ctx context.Context, sel config.BoardSelection, itemID string) ([]domain.Comment, error) {
	var raws []client.RawComment

	for page := 1; ; page++ {
		pageComments, err := a.client.FetchItemComments(ctx, itemID, page, sel.Token)
		if err != nil {
			return nil, err
		}

		raws = append(raws, pageComments...)
		if len(pageComments) < client.CommentPageLimit {
			break
		}
	}
	return transform.Comments(sel.BoardID, raws), nil
}

// existingResult derives a board's Phase 1 status from the on-disk file
// when fetching is skipped.
func (a *Archiver) existingResult(boardID string) Result {
	if a.store.BoardExists(boardID) {
		return Result{BoardID: boardID, Status: StatusExist}
	}
	return Result{
		BoardID: boardID,
		Status:  StatusFail,
		Err:     "JSON file not found",
	}
}

// syncBoardAssets runs Phase 2 for one board, reading the document back
// from disk.
func (a *Archiver) syncBoardAssets(ctx context.Context, result *Result) {
	board, err := a.store.ReadBoard(result.BoardID)
	if err != nil {
		a.logger.Error("Failed to read board for asset sync",
			zap.String("board_id", result.BoardID),
			zap.Error(err),
		)
		result.Err = "Asset download failed: " + failureMessage(err)
		return
	}

	fmt.Printf("- Downloading assets for board %s...\n", board.BoardID)
	stats, err := a.syncer.Sync(ctx, board, a.store.AssetDir(board.BoardID))
	if err != nil {
		a.logger.Error("Asset sync failed",
			zap.String("board_id", result.BoardID),
			zap.Error(err),
		)
		result.Err = "Asset download failed: " + failureMessage(err)
		return
	}
	result.Assets = stats
}

// failureMessage unwraps the client sentinels so the summary note shows the
// classification instead of the wrapped chain.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrBoardNotFound):
		return client.ErrBoardNotFound.Error()
	case errors.Is(err, client.ErrGroupNotFound):
		return client.ErrGroupNotFound.Error()
	default:
		return err.Error()
	}
}

func printBanner(opts Options) {
	line := strings.Repeat("-", 60)
	env := "production"
	if opts.Dev {
		env = "development"
	}
	enabled := func(on bool) string {
		if on {
			return "enabled"
		}
		return "skipped"
	}

	fmt.Println(line)
	fmt.Printf("%-30s %s\n", "Environment", env)
	fmt.Printf("%-30s %s\n", "Fetch data", enabled(opts.Fetch))
	fmt.Printf("%-30s %s\n", "Download assets", enabled(opts.Download))
	fmt.Println(line)
}

func printSummary(results []Result) {
	fmt.Println("\n\nSummary:")
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-15s%-12s%-40s%s\n", "Board ID", "Status", "Assets (Total / Success / Fail)", "Note")
	fmt.Println(strings.Repeat("-", 100))

	for _, res := range results {
		status := "Failed"
		switch res.Status {
		case StatusSuccess:
			status = "Success"
		case StatusExist:
			status = "Exist"
		}

		assets := fmt.Sprintf("%d / %d / %d", res.Assets.Total, res.Assets.Succeeded(), res.Assets.Failed)
		note := res.Err
		if note == "" {
			note = res.BoardName
		}

		fmt.Printf("%-15s%-12s%-40s%s\n", res.BoardID, status, assets, note)
	}
	fmt.Println(strings.Repeat("=", 100))
}
