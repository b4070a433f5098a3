package cron

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/harudiary/server/internal/dailyjob"
)

type fakeRunner struct {
	summary *dailyjob.Summary
	err     error
	calls   int
}

func (f *fakeRunner) Run(_ context.Context) (*dailyjob.Summary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.summary, nil
}

func performTrigger(t *testing.T, job Runner, secret, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/cron/daily-diary", Handler(job, secret))

	req := httptest.NewRequest(http.MethodGet, "/cron/daily-diary", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandler_Success(t *testing.T) {
	job := &fakeRunner{summary: &dailyjob.Summary{Title: "맑은 하루", Date: "2025-06-01"}}

	w := performTrigger(t, job, "cron-secret", "Bearer cron-secret")

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "맑은 하루", resp.Title)
	assert.Equal(t, "2025-06-01", resp.Date)
}

func TestHandler_MissingSecret(t *testing.T) {
	job := &fakeRunner{summary: &dailyjob.Summary{}}

	w := performTrigger(t, job, "cron-secret", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, job.calls)
}

func TestHandler_WrongSecret(t *testing.T) {
	job := &fakeRunner{summary: &dailyjob.Summary{}}

	w := performTrigger(t, job, "cron-secret", "Bearer wrong")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, job.calls)
}

func TestHandler_NoSecretConfigured(t *testing.T) {
	job := &fakeRunner{summary: &dailyjob.Summary{Title: "t", Date: "2025-06-01"}}

	// with no secret configured the endpoint is open
	w := performTrigger(t, job, "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, job.calls)
}

func TestHandler_JobFailure(t *testing.T) {
	job := &fakeRunner{err: errors.New("image synthesis failed")}

	w := performTrigger(t, job, "cron-secret", "Bearer cron-secret")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
