package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// SiteResponse — сайт из API.
type SiteResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
}

// ScheduleResponse — расписание reset job'а из API.
type ScheduleResponse struct {
	SiteID  string `json:"site_id"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Enabled bool   `json:"enabled"`
	State   string `json:"state"`
	NextRun string `json:"next_run,omitempty"`
}

// RunnerResponse — runner из API.
type RunnerResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// RunnerStateResponse — состояние runner'ов пары (rank, site).
type RunnerStateResponse struct {
	SiteID  string          `json:"site_id"`
	Rank    string          `json:"rank"`
	Current *RunnerResponse `json:"current,omitempty"`
	Last    *RunnerResponse `json:"last,omitempty"`
}

// OrderResponse — заказ из API.
type OrderResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	SiteID    string `json:"site_id"`
	Item      string `json:"item"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// --- Request types ---

// CreateSiteRequest — создание сайта.
type CreateSiteRequest struct {
	Name    string `json:"name"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Enabled bool   `json:"enabled"`
}

// UpdateScheduleRequest — обновление расписания.
type UpdateScheduleRequest struct {
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
	Enabled bool `json:"enabled"`
}

// AssignRunnerRequest — прямое назначение runner'а.
type AssignRunnerRequest struct {
	AccountID string `json:"account_id"`
}

// CreateOrderRequest — создание заказа.
type CreateOrderRequest struct {
	AccountID string `json:"account_id"`
	SiteID    string `json:"site_id"`
	Item      string `json:"item"`
	Comment   string `json:"comment,omitempty"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Mensa API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Sites ---

// ListSites возвращает все сайты.
func (c *Client) ListSites() ([]SiteResponse, error) {
	var sites []SiteResponse
	err := c.list("/api/v1/sites", &sites)
	return sites, err
}

// CreateSite создаёт сайт.
func (c *Client) CreateSite(req CreateSiteRequest) (*SiteResponse, error) {
	var site SiteResponse
	err := c.post("/api/v1/sites", req, &site)
	return &site, err
}

// GetSite возвращает сайт по ID.
func (c *Client) GetSite(siteID string) (*SiteResponse, error) {
	var site SiteResponse
	err := c.get("/api/v1/sites/"+siteID, &site)
	return &site, err
}

// DeleteSite удаляет сайт.
func (c *Client) DeleteSite(siteID string) error {
	return c.delete("/api/v1/sites/" + siteID)
}

// --- Schedules ---

// GetSchedule возвращает расписание reset job'а сайта.
func (c *Client) GetSchedule(siteID string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.get("/api/v1/sites/"+siteID+"/schedule", &schedule)
	return &schedule, err
}

// UpdateSchedule меняет расписание reset job'а сайта.
func (c *Client) UpdateSchedule(siteID string, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.put("/api/v1/sites/"+siteID+"/schedule", req, &schedule)
	return &schedule, err
}

// --- Runners ---

// DrawRunner выбирает runner'а для пары (rank, site).
func (c *Client) DrawRunner(siteID, rank string) (*RunnerResponse, error) {
	var runner RunnerResponse
	err := c.post("/api/v1/sites/"+siteID+"/ranks/"+rank+"/runner", nil, &runner)
	return &runner, err
}

// GetRunnerState возвращает состояние runner'ов пары (rank, site).
func (c *Client) GetRunnerState(siteID, rank string) (*RunnerStateResponse, error) {
	var state RunnerStateResponse
	err := c.get("/api/v1/sites/"+siteID+"/ranks/"+rank+"/runner", &state)
	return &state, err
}

// AssignRunner назначает runner'а напрямую.
func (c *Client) AssignRunner(siteID, rank, accountID string) (*RunnerResponse, error) {
	var runner RunnerResponse
	err := c.put("/api/v1/sites/"+siteID+"/ranks/"+rank+"/runner",
		AssignRunnerRequest{AccountID: accountID}, &runner)
	return &runner, err
}

// SetOrdered помечает пару (rank, site) как "заказано".
func (c *Client) SetOrdered(siteID, rank string) error {
	return c.post("/api/v1/sites/"+siteID+"/ranks/"+rank+"/ordered", nil, nil)
}

// ListOrdered возвращает сайты, помеченные рангом как "заказано".
func (c *Client) ListOrdered(rank string) ([]string, error) {
	var ids []string
	err := c.list("/api/v1/ranks/"+rank+"/ordered", &ids)
	return ids, err
}

// --- Orders ---

// CreateOrder создаёт заказ.
func (c *Client) CreateOrder(req CreateOrderRequest) (*OrderResponse, error) {
	var order OrderResponse
	err := c.post("/api/v1/orders", req, &order)
	return &order, err
}

// ListOrders возвращает заказы сайта.
func (c *Client) ListOrders(siteID string) ([]OrderResponse, error) {
	var orders []OrderResponse
	err := c.list("/api/v1/sites/"+siteID+"/orders", &orders)
	return orders, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
