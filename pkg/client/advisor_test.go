package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enviro-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		RetryDelay:     time.Millisecond,
		Multiplier:     2,
		Threshold:      3,
		BreakerTimeout: time.Second,
	}
}

func TestDecodeSuggestionPayload(t *testing.T) {
	want := []models.Suggestion{{
		StationName: "Anand Vihar",
		Area:        "East Delhi",
		Parameter:   models.ParamTemperature,
		Value:       35,
		Threshold:   30,
		Suggestion:  "Deploy cooling systems or improve ventilation.",
	}}
	array := `[{"stationName":"Anand Vihar","area":"East Delhi","parameter":"Temperature","value":35,"threshold":30,"suggestion":"Deploy cooling systems or improve ventilation."}]`

	t.Run("direct array", func(t *testing.T) {
		got, err := DecodeSuggestionPayload([]byte(array))

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("chat envelope with fenced content", func(t *testing.T) {
		envelope := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "```json\n" + array + "\n```"}},
			},
		}
		payload, err := json.Marshal(envelope)
		require.NoError(t, err)

		got, err := DecodeSuggestionPayload(payload)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("chat envelope with bare content", func(t *testing.T) {
		envelope := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": array}},
			},
		}
		payload, err := json.Marshal(envelope)
		require.NoError(t, err)

		got, err := DecodeSuggestionPayload(payload)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("envelope without choices", func(t *testing.T) {
		_, err := DecodeSuggestionPayload([]byte(`{"choices":[]}`))
		assert.Error(t, err)
	})

	t.Run("envelope with non-JSON content", func(t *testing.T) {
		_, err := DecodeSuggestionPayload([]byte(`{"choices":[{"message":{"content":"sorry, I cannot help"}}]}`))
		assert.Error(t, err)
	})

	t.Run("malformed array", func(t *testing.T) {
		_, err := DecodeSuggestionPayload([]byte(`[{"stationName":`))
		assert.Error(t, err)
	})

	t.Run("unrecognized shape", func(t *testing.T) {
		_, err := DecodeSuggestionPayload([]byte(`plain text`))
		assert.Error(t, err)
	})
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `[1]`, `[1]`},
		{"json fence", "```json\n[1]\n```", `[1]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"fence with surrounding whitespace", "  ```json\n[1]\n```  ", `[1]`},
		{"fence on same line as content", "```[1]```", `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestAdvisorClientFetchSuggestions(t *testing.T) {
	stations := []models.Station{{ID: "st-001", Name: "Anand Vihar", Area: "East Delhi"}}

	t.Run("posts station list and decodes array response", func(t *testing.T) {
		var gotBody analysisRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"stationName":"Anand Vihar","area":"East Delhi","parameter":"Noise","value":90,"threshold":85,"suggestion":"advice"}]`))
		}))
		defer server.Close()

		c := NewAdvisorClient(server.URL, "secret", testClientConfig(), zap.NewNop())

		got, err := c.FetchSuggestions(context.Background(), stations)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.ParamNoise, got[0].Parameter)
		require.Len(t, gotBody.Stations, 1)
		assert.Equal(t, "st-001", gotBody.Stations[0].ID)
	})

	t.Run("non-success status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := NewAdvisorClient(server.URL, "", testClientConfig(), zap.NewNop())

		_, err := c.FetchSuggestions(context.Background(), stations)
		assert.Error(t, err)
	})

	t.Run("unusable payload is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json at all`))
		}))
		defer server.Close()

		c := NewAdvisorClient(server.URL, "", testClientConfig(), zap.NewNop())

		_, err := c.FetchSuggestions(context.Background(), stations)
		assert.Error(t, err)
	})

	t.Run("missing endpoint is an error", func(t *testing.T) {
		c := NewAdvisorClient("", "", testClientConfig(), zap.NewNop())

		_, err := c.FetchSuggestions(context.Background(), stations)
		assert.Error(t, err)
	})
}
