package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/harrisonrobin/tickctx/pkg/model"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"
)

const DefaultBaseURL = "https://api.ticktick.com/open/v1"

// Client talks to the TickTick open API. Authentication is the job of the
// supplied http.Client (see pkg/auth).
type Client struct {
	httpClient  *http.Client
	baseURL     string
	concurrency int
}

// NewClient creates a client. concurrency bounds the parallel per-project
// fetches in GetAllTasks; zero or less means unbounded.
func NewClient(httpClient *http.Client, baseURL string, concurrency int) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: concurrency,
	}
}

type requestIDKey struct{}

// WithRequestID tags outgoing requests made with ctx with an X-Request-Id header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (c *Client) request(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := requestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ticktick request %s %s: %w", model.ErrUnavailable, method, endpoint, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return apiError(err)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, endpoint, err)
	}
	return nil
}

// apiError attaches an error kind to a non-2xx response.
func apiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%w: ticktick API error: %w", model.ErrNotFound, err)
		case gerr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: ticktick API error: %w", model.ErrUnavailable, err)
		}
	}
	return fmt.Errorf("ticktick API error: %w", err)
}

func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProjectData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.request(ctx, http.MethodGet, "/project/"+projectID+"/data", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetAllTasks lists projects and fetches each project's tasks concurrently.
// A project whose fetch fails is logged and left out; only a failure to list
// projects fails the call. The result follows the project listing order.
func (c *Client) GetAllTasks(ctx context.Context) ([]ProjectData, error) {
	refreshID := requestID(ctx)
	if refreshID == "" {
		refreshID = uuid.NewString()
		ctx = WithRequestID(ctx, refreshID)
	}

	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	slots := make([]*ProjectData, len(projects))
	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for i, project := range projects {
		g.Go(func() error {
			data, err := c.GetProjectData(ctx, project.ID)
			if err != nil {
				log.Printf("Warning: refresh %s: failed to fetch project %s: %v", refreshID, project.Name, err)
				return nil
			}
			if data.Project.ID == "" {
				data.Project = project
			}
			slots[i] = data
			return nil
		})
	}
	_ = g.Wait()

	all := make([]ProjectData, 0, len(projects))
	for _, data := range slots {
		if data != nil {
			all = append(all, *data)
		}
	}
	return all, nil
}

func (c *Client) CreateTask(ctx context.Context, task NewTask) (*Task, error) {
	var created Task
	if err := c.request(ctx, http.MethodPost, "/task", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask sends the full task; TickTick requires id and projectId in the body.
func (c *Client) UpdateTask(ctx context.Context, task Task) (*Task, error) {
	var updated Task
	if err := c.request(ctx, http.MethodPost, "/task/"+task.ID, task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) CompleteTask(ctx context.Context, taskID, projectID string) error {
	return c.request(ctx, http.MethodPost, "/project/"+projectID+"/task/"+taskID+"/complete", nil, nil)
}

func (c *Client) DeleteTask(ctx context.Context, taskID, projectID string) error {
	return c.request(ctx, http.MethodDelete, "/project/"+projectID+"/task/"+taskID, nil, nil)
}
