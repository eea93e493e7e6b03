// Package scrape bridges onboarding to the external LinkedIn scraping
// service: start an import, poll it to a terminal status, and fold the
// imported profile into the collected data.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Job statuses reported by the scraping service.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ImportedProfile is the profile payload of a completed scrape.
type ImportedProfile struct {
	LinkedInURL     string               `json:"linkedinUrl"`
	FullName        string               `json:"fullName"`
	Headline        string               `json:"headline"`
	ExperienceLevel string               `json:"experienceLevel"`
	Skills          []ImportedSkill      `json:"skills"`
	Experiences     []ImportedExperience `json:"experiences"`
	Educations      []ImportedEducation  `json:"educations"`
}

// ImportedSkill is a single scraped skill.
type ImportedSkill struct {
	Name string `json:"name"`
}

// ImportedExperience is a single scraped position.
type ImportedExperience struct {
	Title      string  `json:"title"`
	Company    *string `json:"company"`
	StartDate  *string `json:"startDate"`
	EndDate    *string `json:"endDate"`
	Highlights *string `json:"highlights"`
}

// ImportedEducation is a single scraped education entry.
type ImportedEducation struct {
	School    string  `json:"school"`
	Degree    *string `json:"degree"`
	Field     *string `json:"field"`
	StartYear *string `json:"startYear"`
	EndYear   *string `json:"endYear"`
}

// JobStatus is one poll result.
type JobStatus struct {
	Status  string           `json:"status"`
	Profile *ImportedProfile `json:"profile,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Client talks to the scraping service. Implementations must be safe for
// concurrent use.
type Client interface {
	// StartImport submits a profile URL and returns the job ID.
	StartImport(ctx context.Context, profileURL string) (string, error)
	// PollImport fetches the current status of a job.
	PollImport(ctx context.Context, jobID string) (JobStatus, error)
}

// HTTPClient is the production Client backed by the scraper's REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient builds a client for the scraper at baseURL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type startImportRequest struct {
	URL string `json:"url"`
}

type startImportResponse struct {
	JobID string `json:"jobId"`
}

// StartImport submits a profile URL and returns the job ID.
func (c *HTTPClient) StartImport(ctx context.Context, profileURL string) (string, error) {
	body, err := json.Marshal(startImportRequest{URL: profileURL})
	if err != nil {
		return "", fmt.Errorf("failed to encode import request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/imports/linkedin", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to start import: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("scraper returned status %d", resp.StatusCode)
	}

	var out startImportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode import response: %w", err)
	}
	if out.JobID == "" {
		return "", fmt.Errorf("scraper returned empty job ID")
	}
	return out.JobID, nil
}

// PollImport fetches the current status of a job.
func (c *HTTPClient) PollImport(ctx context.Context, jobID string) (JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/imports/"+jobID, nil)
	if err != nil {
		return JobStatus{}, fmt.Errorf("failed to build poll request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return JobStatus{}, fmt.Errorf("failed to poll import: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JobStatus{}, fmt.Errorf("scraper returned status %d", resp.StatusCode)
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return JobStatus{}, fmt.Errorf("failed to decode poll response: %w", err)
	}
	return status, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
