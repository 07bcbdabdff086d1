// Package client is a small Connect-protocol JSON client for GameService
// built on fasthttp.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rps-master/internal/api"
	"rps-master/internal/constants"

	"github.com/valyala/fasthttp"
)

// Error is a non-OK answer from the server, decoded from the Connect error
// body when one is present.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error: %d", e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) CreatePlayer(ctx context.Context, name string) (*api.Profile, error) {
	return call[api.Profile](ctx, c, api.ProcedureCreatePlayer, api.CreatePlayerRequest{Name: name})
}

func (c *Client) GetProfile(ctx context.Context, playerID string) (*api.Profile, error) {
	return call[api.Profile](ctx, c, api.ProcedureGetProfile, api.PlayerRequest{PlayerID: playerID})
}

func (c *Client) PlayRound(ctx context.Context, playerID, move string) (*api.PlayRoundResponse, error) {
	return call[api.PlayRoundResponse](ctx, c, api.ProcedurePlayRound, api.PlayRoundRequest{PlayerID: playerID, Move: move})
}

func (c *Client) Purchase(ctx context.Context, playerID, cosmeticID string) (*api.Profile, error) {
	return call[api.Profile](ctx, c, api.ProcedurePurchase, api.CosmeticRequest{PlayerID: playerID, CosmeticID: cosmeticID})
}

func (c *Client) SelectCosmetic(ctx context.Context, playerID, cosmeticID string) (*api.Profile, error) {
	return call[api.Profile](ctx, c, api.ProcedureSelectCosmetic, api.CosmeticRequest{PlayerID: playerID, CosmeticID: cosmeticID})
}

func (c *Client) Reset(ctx context.Context, playerID string) (*api.Profile, error) {
	return call[api.Profile](ctx, c, api.ProcedureReset, api.PlayerRequest{PlayerID: playerID})
}

func (c *Client) ListRounds(ctx context.Context, playerID string, limit int) (*api.ListRoundsResponse, error) {
	return call[api.ListRoundsResponse](ctx, c, api.ProcedureListRounds, api.ListRoundsRequest{PlayerID: playerID, Limit: limit})
}

func (c *Client) GetCatalog(ctx context.Context) (*api.CatalogResponse, error) {
	return call[api.CatalogResponse](ctx, c, api.ProcedureGetCatalog, api.CatalogRequest{})
}

func (c *Client) ExportSave(ctx context.Context, playerID string) ([]byte, error) {
	resp, err := call[api.ExportSaveResponse](ctx, c, api.ProcedureExportSave, api.PlayerRequest{PlayerID: playerID})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) ImportSave(ctx context.Context, playerID string, data []byte) (*api.Profile, error) {
	return call[api.Profile](ctx, c, api.ProcedureImportSave, api.ImportSaveRequest{PlayerID: playerID, Data: data})
}

func (c *Client) Health(ctx context.Context) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + api.HealthPath)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, req, resp); err != nil {
		return err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return &Error{Status: resp.StatusCode()}
	}
	return nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline, ok := ctx.Deadline()
	if ok {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.DoTimeout(req, resp, constants.ClientTimeout)
}

func call[T any](ctx context.Context, c *Client, procedure string, body any) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + procedure)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Connect-Protocol-Version", "1")
	if deadline, ok := ctx.Deadline(); ok {
		if ms := time.Until(deadline).Milliseconds(); ms > 0 {
			req.Header.Set("Connect-Timeout-Ms", strconv.FormatInt(ms, 10))
		}
	}
	req.SetBody(payload)

	if err := c.do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("%s: %w", procedure, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &Error{Status: resp.StatusCode()}
		var body api.ErrorBody
		if err := json.Unmarshal(resp.Body(), &body); err == nil {
			apiErr.Code, apiErr.Message = body.Code, body.Message
		}
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", procedure, err)
	}
	return &result, nil
}
