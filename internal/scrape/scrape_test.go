package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

func newScraperStub(t *testing.T, pendingPolls int, terminal JobStatus) *httptest.Server {
	t.Helper()
	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/imports/linkedin", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["url"])
		json.NewEncoder(w).Encode(map[string]string{"jobId": "job-1"})
	})
	mux.HandleFunc("GET /v1/imports/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "job-1", r.PathValue("id"))
		polls++
		if polls <= pendingPolls {
			json.NewEncoder(w).Encode(JobStatus{Status: StatusPending})
			return
		}
		json.NewEncoder(w).Encode(terminal)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAwaitCompletesOnLastAllowedPoll(t *testing.T) {
	profile := &ImportedProfile{FullName: "Ada Lovelace", Skills: []ImportedSkill{{Name: "Go"}}}
	srv := newScraperStub(t, 59, JobStatus{Status: StatusCompleted, Profile: profile})

	client := NewHTTPClient(srv.URL, "key")
	jobID, err := client.StartImport(context.Background(), "https://linkedin.com/in/ada")
	require.NoError(t, err)

	awaiter := &Awaiter{Client: client, Interval: time.Millisecond, MaxPolls: MaxPolls}
	var ticks int
	awaiter.OnTick = func(int) { ticks++ }

	status, err := awaiter.Await(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
	assert.Equal(t, "Ada Lovelace", status.Profile.FullName)
	assert.Equal(t, 59, ticks)
}

func TestAwaitSynthesizesTimeout(t *testing.T) {
	srv := newScraperStub(t, 1000, JobStatus{})

	client := NewHTTPClient(srv.URL, "")
	awaiter := &Awaiter{Client: client, Interval: time.Millisecond, MaxPolls: 3}

	status, err := awaiter.Await(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status.Status)
	assert.Equal(t, "Scraping timed out", status.Error)
}

func TestAwaitHonorsContextCancel(t *testing.T) {
	srv := newScraperStub(t, 1000, JobStatus{})

	client := NewHTTPClient(srv.URL, "")
	awaiter := &Awaiter{Client: client, Interval: time.Second, MaxPolls: MaxPolls}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := awaiter.Await(ctx, "job-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitSurfacesFailedJob(t *testing.T) {
	srv := newScraperStub(t, 0, JobStatus{Status: StatusFailed, Error: "profile is private"})

	client := NewHTTPClient(srv.URL, "")
	status, err := NewAwaiter(client).Await(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status.Status)
	assert.Equal(t, "profile is private", status.Error)
}

func TestMergeProfileFillsOnlyUnset(t *testing.T) {
	company := "Acme"
	profile := &ImportedProfile{
		LinkedInURL:     "https://linkedin.com/in/ada",
		FullName:        "Ada Lovelace",
		ExperienceLevel: "senior",
		Skills:          []ImportedSkill{{Name: "Go"}, {Name: "Postgres"}},
		Experiences:     []ImportedExperience{{Title: "Engineer", Company: &company}},
		Educations:      []ImportedEducation{{School: "MIT"}},
	}

	data := types.CollectedData{
		FullName:        types.Filled("Augusta King"),
		ExperienceLevel: types.Skipped[types.ExperienceLevel](),
	}
	merged := MergeProfile(data, profile, "https://linkedin.com/in/ada")

	path, _ := merged.ProfilePath.Value()
	assert.Equal(t, types.PathLinkedIn, path)

	// Answered fields survive the import, including skips.
	name, _ := merged.FullName.Value()
	assert.Equal(t, "Augusta King", name)
	assert.True(t, merged.ExperienceLevel.IsSkipped())

	skills, ok := merged.Skills.Value()
	require.True(t, ok)
	assert.Len(t, skills, 2)
	exps, _ := merged.Experiences.Value()
	require.Len(t, exps, 1)
	assert.Equal(t, "Acme", *exps[0].Company)
}

func TestMergeProfileFallsBackToRequestedURL(t *testing.T) {
	merged := MergeProfile(types.CollectedData{}, &ImportedProfile{}, "https://linkedin.com/in/ada")
	url, ok := merged.LinkedInURL.Value()
	require.True(t, ok)
	assert.Equal(t, "https://linkedin.com/in/ada", url)
}

func TestMergeProfileIgnoresUnknownLevel(t *testing.T) {
	merged := MergeProfile(types.CollectedData{}, &ImportedProfile{ExperienceLevel: "wizard"}, "")
	assert.True(t, merged.ExperienceLevel.IsUnset())
}
