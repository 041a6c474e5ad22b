// Package siyuan implements the service.Service interface against the
// note host's kernel HTTP API.
package siyuan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"sytask/internal/config"
	"sytask/internal/service"
	"sytask/internal/task"
)

const (
	// APITimeout is the per-call timeout for host requests.
	APITimeout = 5 * time.Second

	// tokenType is the scheme of the host's Authorization header.
	tokenType = "Token"
)

// Client implements service.Service over the host kernel API.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a client from stored settings. Requires a saved API token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	settings, err := cfg.LoadSettings()
	if err != nil {
		return nil, err
	}
	if settings.Token == "" {
		return nil, errors.New("no API token configured (run: sytask login)")
	}
	return NewWithToken(ctx, settings.Server, settings.Token), nil
}

// NewWithToken creates a client for the given endpoint and API token.
// The token rides in an Authorization header via a static token source,
// matching the host's "Token <t>" scheme.
func NewWithToken(ctx context.Context, server, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   tokenType,
	})
	return &Client{
		http:    oauth2.NewClient(ctx, src),
		baseURL: strings.TrimRight(server, "/"),
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(server string, httpClient *http.Client) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(server, "/"),
	}
}

// response is the host's uniform envelope; code 0 means success.
type response struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// post issues one API call and decodes the envelope's data into out
// (which may be nil when the caller only needs success).
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wrapError(fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode))
	}

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: invalid response: %w", path, err)
	}
	if env.Code != 0 {
		return fmt.Errorf("%s: %s (code %d)", path, env.Msg, env.Code)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: invalid response data: %w", path, err)
		}
	}
	return nil
}

// querySQL runs a SQL statement and decodes the rows into out.
func (c *Client) querySQL(ctx context.Context, stmt string, out any) error {
	return c.post(ctx, "/api/query/sql", map[string]string{"stmt": stmt}, out)
}

// Ping verifies connectivity and the API token.
func (c *Client) Ping(ctx context.Context) error {
	return c.post(ctx, "/api/system/version", struct{}{}, nil)
}

// ListTaskBlocks implements service.Service.
func (c *Client) ListTaskBlocks(ctx context.Context, filter task.Filter) ([]task.TaskBlock, error) {
	var rows []task.TaskBlock
	if err := c.querySQL(ctx, task.BuildTaskQuery(filter), &rows); err != nil {
		return nil, wrapError(err)
	}

	// SQL rows carry only the notebook id; resolve display names when
	// possible. A failed lookup leaves the ids as names rather than
	// failing the whole listing.
	if notebooks, err := c.ListNotebooks(ctx); err == nil {
		names := make(map[string]string, len(notebooks))
		for _, nb := range notebooks {
			names[nb.ID] = nb.Name
		}
		for i := range rows {
			if rows[i].BoxName == "" {
				rows[i].BoxName = names[rows[i].Box]
			}
		}
	}

	return rows, nil
}

// ListNotebooks implements service.Service.
func (c *Client) ListNotebooks(ctx context.Context) ([]service.Notebook, error) {
	var data struct {
		Notebooks []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Icon   string `json:"icon"`
			Sort   int    `json:"sort"`
			Closed bool   `json:"closed"`
		} `json:"notebooks"`
	}
	if err := c.post(ctx, "/api/notebook/lsNotebooks", struct{}{}, &data); err != nil {
		return nil, wrapError(err)
	}

	notebooks := make([]service.Notebook, len(data.Notebooks))
	for i, nb := range data.Notebooks {
		notebooks[i] = service.Notebook{
			ID:     nb.ID,
			Name:   nb.Name,
			Icon:   nb.Icon,
			Sort:   nb.Sort,
			Closed: nb.Closed,
		}
	}
	return notebooks, nil
}

// RecentDocuments implements service.Service.
func (c *Client) RecentDocuments(ctx context.Context, limit int, excludeIDs []string) ([]service.Document, error) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM blocks WHERE type = 'd'")
	if len(excludeIDs) > 0 {
		quoted := make([]string, len(excludeIDs))
		for i, id := range excludeIDs {
			quoted[i] = "'" + task.EscapeSQL(id) + "'"
		}
		fmt.Fprintf(&sb, " AND id NOT IN (%s)", strings.Join(quoted, ","))
	}
	fmt.Fprintf(&sb, " ORDER BY updated DESC LIMIT %d", limit)

	var rows []task.TaskBlock
	if err := c.querySQL(ctx, sb.String(), &rows); err != nil {
		return nil, wrapError(err)
	}

	docs := make([]service.Document, len(rows))
	for i, r := range rows {
		docs[i] = docFromRow(r)
	}
	return docs, nil
}

// GetDocument implements service.Service.
func (c *Client) GetDocument(ctx context.Context, id string) (service.Document, error) {
	stmt := fmt.Sprintf("SELECT * FROM blocks WHERE type = 'd' AND id = '%s' LIMIT 1", task.EscapeSQL(id))

	var rows []task.TaskBlock
	if err := c.querySQL(ctx, stmt, &rows); err != nil {
		return service.Document{}, wrapError(err)
	}
	if len(rows) == 0 {
		return service.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return docFromRow(rows[0]), nil
}

// DailyNote implements service.Service.
func (c *Client) DailyNote(ctx context.Context, notebookID string) (string, error) {
	var data struct {
		ID string `json:"id"`
	}
	err := c.post(ctx, "/api/filetree/createDailyNote", map[string]string{"notebook": notebookID}, &data)
	if err != nil {
		return "", wrapError(err)
	}
	if data.ID == "" {
		return "", errors.New("daily note creation returned no document id")
	}
	return data.ID, nil
}

// FindHeadingWithAttr implements service.Service.
func (c *Client) FindHeadingWithAttr(ctx context.Context, docID, attrName string) (string, error) {
	stmt := fmt.Sprintf(
		"SELECT b.id FROM blocks b WHERE b.root_id = '%s' AND b.type = 'h'"+
			" AND b.id IN (SELECT block_id FROM attributes WHERE name = '%s' AND value = 'true') LIMIT 1",
		task.EscapeSQL(docID), task.EscapeSQL(attrName))

	var rows []struct {
		ID string `json:"id"`
	}
	if err := c.querySQL(ctx, stmt, &rows); err != nil {
		return "", wrapError(err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ID, nil
}

// PrependBlock implements service.Service.
func (c *Client) PrependBlock(ctx context.Context, parentID, markdown string) (string, error) {
	return c.insertBlock(ctx, "/api/block/prependBlock", parentID, markdown)
}

// AppendBlock implements service.Service.
func (c *Client) AppendBlock(ctx context.Context, parentID, markdown string) (string, error) {
	return c.insertBlock(ctx, "/api/block/appendBlock", parentID, markdown)
}

func (c *Client) insertBlock(ctx context.Context, path, parentID, markdown string) (string, error) {
	payload := map[string]string{
		"dataType": "markdown",
		"data":     markdown,
		"parentID": parentID,
	}

	// The new block id arrives at data[0].doOperations[0].id.
	var data []struct {
		DoOperations []struct {
			ID string `json:"id"`
		} `json:"doOperations"`
	}
	if err := c.post(ctx, path, payload, &data); err != nil {
		return "", wrapError(err)
	}
	if len(data) == 0 || len(data[0].DoOperations) == 0 || data[0].DoOperations[0].ID == "" {
		return "", fmt.Errorf("%s: response carries no block id", path)
	}
	return data[0].DoOperations[0].ID, nil
}

// SetBlockAttrs implements service.Service.
func (c *Client) SetBlockAttrs(ctx context.Context, id string, attrs map[string]string) error {
	payload := map[string]any{
		"id":    id,
		"attrs": attrs,
	}
	if err := c.post(ctx, "/api/attr/setBlockAttrs", payload, nil); err != nil {
		return wrapError(err)
	}
	return nil
}

func docFromRow(r task.TaskBlock) service.Document {
	name := r.Content
	if name == "" {
		name = "Untitled"
	}
	return service.Document{
		ID:      r.ID,
		Name:    name,
		HPath:   r.HPath,
		Updated: task.ParseTimestamp(r.Updated),
	}
}

// wrapError rewrites transport errors with user-meaning.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return errors.New("request timed out")
	}
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return errors.New("API token rejected (run: sytask login)")
	}
	if strings.Contains(errStr, "connection refused") {
		return errors.New("host not reachable (is the application running?)")
	}

	return err
}
