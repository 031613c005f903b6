package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, 5*time.Second)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyze(t *testing.T) {
	videoPath := writeTempFile(t, "clip.mp4", "fake video bytes")
	textPath := writeTempFile(t, "claims.txt", "the claims")

	var gotPrimary, gotPrimaryName, gotOptional string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotPrimaryName = header.Filename
		primaryBytes, err := io.ReadAll(file)
		require.NoError(t, err)
		gotPrimary = string(primaryBytes)

		optional, _, err := r.FormFile("optional_text_file")
		require.NoError(t, err)
		defer optional.Close()
		optionalBytes, err := io.ReadAll(optional)
		require.NoError(t, err)
		gotOptional = string(optionalBytes)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{"fusion_score": 82.0},
		})
	})

	var updates [][2]int64
	payload, err := client.Analyze(context.Background(), videoPath, textPath, func(sent, total int64) {
		updates = append(updates, [2]int64{sent, total})
	})
	require.NoError(t, err)

	results, ok := payload["results"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 82.0, results["fusion_score"])

	assert.Equal(t, "fake video bytes", gotPrimary)
	assert.Equal(t, "clip.mp4", gotPrimaryName)
	assert.Equal(t, "the claims", gotOptional)

	// Progress is monotonic over a fixed total and finishes at total.
	require.NotEmpty(t, updates)
	total := updates[0][1]
	var prev int64
	for _, u := range updates {
		assert.Equal(t, total, u[1], "total must not change mid-upload")
		assert.GreaterOrEqual(t, u[0], prev)
		prev = u[0]
	}
	assert.Equal(t, total, updates[len(updates)-1][0])
}

func TestAnalyzeWithoutOptionalFile(t *testing.T) {
	videoPath := writeTempFile(t, "clip.mp4", "bytes")

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("optional_text_file")
		assert.Error(t, err, "optional field must be absent when not provided")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"fusion_score":50}}`))
	})

	_, err := client.Analyze(context.Background(), videoPath, "", nil)
	require.NoError(t, err)
}

func TestAnalyzeMissingLocalFile(t *testing.T) {
	client := NewClient("http://unused", time.Second, time.Second)

	_, err := client.Analyze(context.Background(), "/no/such/file.mp4", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/no/such/file.mp4")
}

func TestChat(t *testing.T) {
	var gotBody map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"The audio track was not analyzed."}`))
	})

	answer, err := client.Chat(context.Background(), "Why is the audio score zero?",
		map[string]any{"fusion_score": 82.0})
	require.NoError(t, err)
	assert.Equal(t, "The audio track was not analyzed.", answer)

	assert.Equal(t, "Why is the audio score zero?", gotBody["question"])
	assert.Equal(t, map[string]any{"fusion_score": 82.0}, gotBody["context"])
}

// A nil context still serializes as an empty JSON object, never null.
func TestChatNilContext(t *testing.T) {
	var gotBody map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	})

	_, err := client.Chat(context.Background(), "general question", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, gotBody["context"])
}

func TestChatBackendError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model unavailable"}`, http.StatusInternalServerError)
	})

	_, err := client.Chat(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestListHistory(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/history", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","fusion_score":82},{"id":"b2","fusion_score":35}]`))
	})

	entries, err := client.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a1", entries[0]["id"])
	assert.Equal(t, 35.0, entries[1]["fusion_score"])
}

func TestDeleteHistory(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteHistory(context.Background(), "a1"))
	assert.Equal(t, "/history/a1", gotPath)
}

func TestDeleteHistoryNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	err := client.DeleteHistory(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGenerateVoice(t *testing.T) {
	audioPath := writeTempFile(t, "voice.wav", "reference audio")

	var gotTarget string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate/voice", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotTarget = r.FormValue("target_text")
		_, _ = w.Write([]byte(`{"generated_path":"/outputs/voice-123.wav"}`))
	})

	path, err := client.GenerateVoice(context.Background(), audioPath, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "/outputs/voice-123.wav", path)
	assert.Equal(t, "hello world", gotTarget)
}

func TestGenerateFaceSwap(t *testing.T) {
	source := writeTempFile(t, "source.mp4", "source")
	target := writeTempFile(t, "target.mp4", "target")

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate/faceswap", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, field := range []string{"source_video", "target_video"} {
			_, _, err := r.FormFile(field)
			require.NoError(t, err, "field %s", field)
		}
		_, _ = w.Write([]byte(`{"generated_path":"/outputs/swap-456.mp4"}`))
	})

	path, err := client.GenerateFaceSwap(context.Background(), source, target)
	require.NoError(t, err)
	assert.Equal(t, "/outputs/swap-456.mp4", path)
}

func TestGenerateMissingPathInResponse(t *testing.T) {
	audioPath := writeTempFile(t, "voice.wav", "audio")

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.GenerateVoice(context.Background(), audioPath, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generated_path")
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, client.HealthCheck())
	})

	t.Run("unreachable backend", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", time.Second, time.Second)
		err := client.HealthCheck()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
	})
}
