package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *Client {
	c := NewClient("test-key")
	c.baseURL = server.URL
	c.httpClient = server.Client()

	return c
}

func TestGenerate_AppendsStyleSuffixAndFixedParameters(t *testing.T) {
	var captured generationRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, engineID)

		w.Write([]byte(`{"artifacts":[{"base64":"aGVsbG8=","finishReason":"SUCCESS"}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	result, err := newTestClient(server).Generate(context.Background(), "a cat under a tree")

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", result)

	require.Len(t, captured.TextPrompts, 1)
	assert.True(t, strings.HasPrefix(captured.TextPrompts[0].Text, "a cat under a tree"))
	assert.True(t, strings.HasSuffix(captured.TextPrompts[0].Text, styleSuffix))
	assert.Equal(t, float64(1), captured.TextPrompts[0].Weight)
	assert.Equal(t, float64(cfgScale), captured.CfgScale)
	assert.Equal(t, imageSize, captured.Height)
	assert.Equal(t, imageSize, captured.Width)
	assert.Equal(t, 1, captured.Samples)
	assert.Equal(t, steps, captured.Steps)
}

func TestGenerate_MissingKey(t *testing.T) {
	c := NewClient("")

	_, err := c.Generate(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestGenerate_ProviderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"insufficient credits"}`, http.StatusPaymentRequired)
	}))
	defer server.Close()

	_, err := newTestClient(server).Generate(context.Background(), "a snowy field")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusPaymentRequired, provErr.Status)
	assert.Contains(t, provErr.Body, "insufficient credits")
}

func TestGenerate_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"artifacts":[]}`)) //nolint:errcheck
	}))
	defer server.Close()

	_, err := newTestClient(server).Generate(context.Background(), "a rainy street")

	assert.ErrorIs(t, err, ErrEmptyResult)
}
