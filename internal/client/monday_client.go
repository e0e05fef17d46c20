package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"board-archive/internal/metrics"
)

// Sentinel errors the orchestrator classifies per-board outcomes with.
var (
	ErrBoardNotFound = errors.New("Board not found")
	ErrGroupNotFound = errors.New("Group not found")
	ErrForbidden     = errors.New("upstream request forbidden")
)

const (
	// ItemPageLimit is the upstream page size for group items.
	ItemPageLimit = 100
	// CommentPageLimit is the upstream page size for item comments.
	// A page shorter than this signals the last page.
	CommentPageLimit = 25
)

// MondayClient defines the upstream GraphQL operations the pipeline consumes
type MondayClient interface {
	// FetchBoardGroups fetches one board's metadata and its group list
	FetchBoardGroups(ctx context.Context, boardID, token string) (*RawBoard, error)
	// FetchGroupItems fetches one page of a group's items; cursor nil requests the first page
	FetchGroupItems(ctx context.Context, boardID, groupID string, cursor *string, token string) (*RawGroupPage, error)
	// FetchItemComments fetches one page (1-based) of an item's comments
	FetchItemComments(ctx context.Context, itemID string, page int, token string) ([]RawComment, error)
}

// mondayClient implements MondayClient against the Monday GraphQL API
type mondayClient struct {
	apiURL     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewMondayClient creates a new upstream GraphQL client
func NewMondayClient(apiURL string, timeout time.Duration, maxRetries int, retryDelay time.Duration, logger *zap.Logger, m *metrics.Metrics) MondayClient {
	return &mondayClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
		metrics:    m,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLEnvelope struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

// FetchBoardGroups fetches one board's metadata and its group list
func (c *mondayClient) FetchBoardGroups(ctx context.Context, boardID, token string) (*RawBoard, error) {
	query := `
		query ($boardIds: [ID!]) {
			boards(ids: $boardIds) {
				id
				name
				created_at
				groups {
					id
					title
				}
			}
		}
	`

	var data struct {
		Boards []RawBoard `json:"boards"`
	}
	err := c.post(ctx, "fetch_board_groups", query, map[string]interface{}{
		"boardIds": []string{boardID},
	}, token, &data)
	if err != nil {
		return nil, err
	}

	if len(data.Boards) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	return &data.Boards[0], nil
}

// FetchGroupItems fetches one page of a group's items
func (c *mondayClient) FetchGroupItems(ctx context.Context, boardID, groupID string, cursor *string, token string) (*RawGroupPage, error) {
	query := fmt.Sprintf(`
		query ($boardIds: [ID!], $groupIds: [String!], $cursor: String) {
			boards(ids: $boardIds) {
				groups(ids: $groupIds) {
					id
					title
					items_page(limit: %d, cursor: $cursor) {
						cursor
						items {
							%s
							subitems {
								%s
							}
						}
					}
				}
			}
		}
	`, ItemPageLimit, itemFields, itemFields)

	var data struct {
		Boards []struct {
			Groups []RawGroupPage `json:"groups"`
		} `json:"boards"`
	}
	err := c.post(ctx, "fetch_group_items", query, map[string]interface{}{
		"boardIds": []string{boardID},
		"groupIds": []string{groupID},
		"cursor":   cursor,
	}, token, &data)
	if err != nil {
		return nil, err
	}

	if len(data.Boards) == 0 || len(data.Boards[0].Groups) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	return &data.Boards[0].Groups[0], nil
}

// FetchItemComments fetches one page of an item's updates with replies
func (c *mondayClient) FetchItemComments(ctx context.Context, itemID string, page int, token string) ([]RawComment, error) {
	query := fmt.Sprintf(`
		query ($itemIds: [ID!], $page: Int!) {
			items(ids: $itemIds) {
				updates(limit: %d, page: $page) {
					%s
				}
			}
		}
	`, CommentPageLimit, commentFields)

	var data struct {
		Items []struct {
			Updates []RawComment `json:"updates"`
		} `json:"items"`
	}
	err := c.post(ctx, "fetch_item_comments", query, map[string]interface{}{
		"itemIds": []string{itemID},
		"page":    page,
	}, token, &data)
	if err != nil {
		return nil, err
	}

	if len(data.Items) == 0 {
		return nil, nil
	}
	return data.Items[0].Updates, nil
}

// post sends one GraphQL request and decodes the data envelope into out.
// Transport failures and 5xx responses are retried up to maxRetries attempts;
// a forbidden response fails immediately and is never retried.
func (c *mondayClient) post(ctx context.Context, operation, query string, variables map[string]interface{}, token string, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			c.logger.Warn("Retrying upstream request",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.postOnce(ctx, operation, body, token, out)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrForbidden) {
			return lastErr
		}
	}

	return fmt.Errorf("upstream request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *mondayClient) postOnce(ctx context.Context, operation string, body []byte, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordUpstreamCall(operation, statusCode, duration, err)
	}

	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", ErrForbidden, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Errors) != 0 {
		msgs, _ := json.Marshal(envelope.Errors)
		return fmt.Errorf("GraphQL Error: %s", msgs)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
