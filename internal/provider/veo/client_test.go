package veo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge"
)

func testRequest() *mediaforge.VideoRequest {
	return &mediaforge.VideoRequest{
		Prompt:      "a lighthouse at dusk",
		AspectRatio: mediaforge.AspectRatio16x9,
		Resolution:  mediaforge.Resolution720p,
	}
}

func newTestClient(t *testing.T, baseURL string, pollInterval time.Duration) *Client {
	t.Helper()
	c, err := NewClient(Options{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		Logger:       zerolog.Nop(),
		PollInterval: pollInterval,
		PollTimeout:  2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateCompletesAfterPolling(t *testing.T) {
	var polls atomic.Int32
	videoBody := []byte("fake-mp4-bytes")

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		switch {
		case r.Method == http.MethodPost:
			assert.Contains(t, r.URL.Path, "veo-3.0-generate-001:predictLongRunning")
			var req predictRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Instances, 1)
			assert.Equal(t, "a lighthouse at dusk", req.Instances[0].Prompt)
			assert.Equal(t, "16:9", req.Parameters.AspectRatio)
			json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-123"})
		case r.URL.Path == "/operations/op-123":
			if polls.Add(1) < 3 {
				json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-123", "done": false})
				return
			}
			fmt.Fprintf(w, `{
				"name": "operations/op-123",
				"done": true,
				"response": {
					"generateVideoResponse": {
						"generatedSamples": [{"video": {"uri": %q}}]
					}
				}
			}`, server.URL+"/files/video.mp4")
		case r.URL.Path == "/files/video.mp4":
			w.Write(videoBody)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, 10*time.Millisecond)
	data, err := c.Generate(context.Background(), "veo-3.0-generate-001", testRequest())
	require.NoError(t, err)
	assert.Equal(t, videoBody, data)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestGenerateHandlesSnakeCaseResponse(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-9"})
		case r.URL.Path == "/operations/op-9":
			fmt.Fprintf(w, `{
				"name": "operations/op-9",
				"done": true,
				"response": {
					"generate_video_response": {
						"generated_samples": [{"video": {"uri": %q}}]
					}
				}
			}`, server.URL+"/files/v.mp4")
		case r.URL.Path == "/files/v.mp4":
			w.Write([]byte("snake"))
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, time.Millisecond)
	data, err := c.Generate(context.Background(), "veo-3.1-generate-001", testRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("snake"), data)
}

func TestGenerateHandlesLegacyGeneratedVideos(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-7"})
		case r.URL.Path == "/operations/op-7":
			fmt.Fprintf(w, `{
				"name": "operations/op-7",
				"done": true,
				"response": {
					"generatedVideos": [{"video": {"uri": %q}}]
				}
			}`, server.URL+"/files/legacy.mp4")
		case r.URL.Path == "/files/legacy.mp4":
			w.Write([]byte("legacy"))
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, time.Millisecond)
	data, err := c.Generate(context.Background(), "veo-3.0-generate-001", testRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("legacy"), data)
}

func TestGenerateOperationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-err"})
			return
		}
		w.Write([]byte(`{
			"name": "operations/op-err",
			"done": true,
			"error": {"code": 3, "message": "prompt blocked by safety policy"}
		}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, time.Millisecond)
	_, err := c.Generate(context.Background(), "veo-3.0-generate-001", testRequest())
	var opErr *mediaforge.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "operations/op-err", opErr.Name)
	assert.Contains(t, opErr.Reason, "safety policy")
}

func TestGenerateMissingVideoURI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-empty"})
			return
		}
		w.Write([]byte(`{"name": "operations/op-empty", "done": true, "response": {}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, time.Millisecond)
	_, err := c.Generate(context.Background(), "veo-3.0-generate-001", testRequest())
	var malformed *mediaforge.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestGenerateTimesOutOnStuckOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-stuck"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-stuck", "done": false})
	}))
	defer server.Close()

	c, err := NewClient(Options{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		Logger:       zerolog.Nop(),
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  80 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "veo-3.0-generate-001", testRequest())
	assert.ErrorIs(t, err, mediaforge.ErrTimedOut)
}

func TestSubmitClassifiesHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		check      func(t *testing.T, err error)
	}{
		{
			name:       "rate limited is transient",
			statusCode: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				assert.True(t, mediaforge.IsTransient(err))
			},
		},
		{
			name:       "server error is transient",
			statusCode: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				assert.True(t, mediaforge.IsTransient(err))
			},
		},
		{
			name:       "bad request is user input",
			statusCode: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				assert.True(t, mediaforge.IsUserInput(err))
				assert.False(t, mediaforge.IsTransient(err))
			},
		},
		{
			name:       "forbidden is permanent",
			statusCode: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				assert.True(t, mediaforge.IsPermanent(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.statusCode)
			}))
			defer server.Close()

			c := newTestClient(t, server.URL, time.Millisecond)
			_, err := c.Submit(context.Background(), "veo-3.0-generate-001", testRequest())
			require.Error(t, err)
			assert.Equal(t, tt.statusCode, mediaforge.StatusCodeOf(err))
			tt.check(t, err)
		})
	}
}

func TestSubmitIncludesReferenceImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Instances[0].Image)
		assert.Equal(t, "aGVsbG8=", req.Instances[0].Image.ImageBytes)
		assert.Equal(t, "image/png", req.Instances[0].Image.MimeType)
		json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-img"})
	}))
	defer server.Close()

	req := testRequest()
	req.Image = &mediaforge.ReferenceImage{Base64: "aGVsbG8=", MIMEType: "image/png"}

	c := newTestClient(t, server.URL, time.Millisecond)
	name, err := c.Submit(context.Background(), "veo-3.0-generate-001", req)
	require.NoError(t, err)
	assert.Equal(t, "operations/op-img", name)
}
