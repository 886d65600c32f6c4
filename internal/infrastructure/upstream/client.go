// Package upstream implements the REST directory collaborator and the
// avatar upload collaborator as thin HTTP clients. The contract is fixed:
// GET/POST /users, PUT/DELETE /users/{id}, multipart POST to the upload
// endpoint. No auth headers, no retries, no pagination.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdeck/admin-console/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the endpoints of both collaborators.
type Config struct {
	// BaseURL is the directory root, e.g. http://localhost:5000.
	BaseURL string
	// UploadURL is the full avatar upload endpoint.
	UploadURL string
	// Timeout bounds each request. Defaults to 10s.
	Timeout time.Duration
}

type Client struct {
	baseURL   string
	uploadURL string
	http      *http.Client
	log       zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		uploadURL: cfg.UploadURL,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

// FetchUsers retrieves the full user list used to seed the console.
func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch users: unexpected status %d", resp.StatusCode)
	}

	var users []domain.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("fetch users: decode: %w", err)
	}
	return users, nil
}

// CreateUser posts a new user. The response body is not consumed.
func (c *Client) CreateUser(ctx context.Context, u domain.User) error {
	return c.send(ctx, http.MethodPost, c.baseURL+"/users", &u)
}

// UpdateUser puts the full replacement record.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) error {
	return c.send(ctx, http.MethodPut, c.baseURL+"/users/"+strconv.FormatInt(u.ID, 10), &u)
}

// DeleteUser removes the user upstream.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, c.baseURL+"/users/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) send(ctx context.Context, method, url string, body *domain.User) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	// Acknowledgement only; anything non-2xx is a failure.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", method, url, resp.StatusCode)
	}
	return nil
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage forwards the file as multipart form data under the "image"
// field and returns the reference the collaborator hands back.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("upload image: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload image: unexpected status %d", resp.StatusCode)
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return "", fmt.Errorf("upload image: decode: %w", err)
	}
	return ur.ImageURL, nil
}
