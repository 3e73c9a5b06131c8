package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundadvisor/internal/domain"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   "test-model",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]interface{}{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAINarrator_Narrate(t *testing.T) {
	srv := chatServer(t, "Here you go:\n```json\n{\"summary\": \"Plan looks solid\", \"key_insights\": [\"a\"]}\n```")
	narrator := NewOpenAINarrator(OpenAIConfig{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/"})

	report, err := narrator.Narrate(context.Background(), domain.UserProfile{RiskTolerance: domain.RiskLow}, testResult())
	require.NoError(t, err)

	assert.Equal(t, "Plan looks solid", report.Summary)
	assert.Equal(t, []string{"a"}, report.KeyInsights)
}

func TestOpenAINarrator_MalformedReply(t *testing.T) {
	srv := chatServer(t, "I cannot help with that.")
	narrator := NewOpenAINarrator(OpenAIConfig{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/"})

	_, err := narrator.Narrate(context.Background(), domain.UserProfile{}, testResult())
	assert.True(t, errors.Is(err, domain.ErrNoStructuredBlock))
}

func TestOpenAINarrator_MissingKey(t *testing.T) {
	_, err := NewOpenAINarrator(OpenAIConfig{}).Narrate(context.Background(), domain.UserProfile{}, testResult())
	assert.True(t, errors.Is(err, ErrMissingCredential))
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(domain.UserProfile{Name: "Asha", RiskTolerance: domain.RiskHigh}, testResult())
	require.NoError(t, err)

	assert.Contains(t, prompt, `"name": "Asha"`)
	assert.Contains(t, prompt, `"risk_profile": "low"`)
	assert.Contains(t, prompt, `Include disclaimer in "tax_notes"`)
}
