package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"TransLingo/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAITranslatorTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": "  你好，世界  ",
					},
				},
			},
		})
	}))
	defer srv.Close()

	tr := NewOpenAITranslator("test-key", srv.URL, "test-model", nil)
	out, err := tr.Translate(context.Background(), "hello, world", "zh", "auto")
	require.NoError(t, err)

	// 译文应去掉首尾空白
	assert.Equal(t, "你好，世界", out)
}

func TestOpenAITranslatorRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewOpenAITranslator("test-key", srv.URL, "test-model", nil)
	_, err := tr.Translate(context.Background(), "hello", "zh", "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeRemoteService, errors.GetCode(err))
}
