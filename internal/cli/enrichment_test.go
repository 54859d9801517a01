// filepath: internal/cli/enrichment_test.go
package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voicejournal/internal/config"
	"voicejournal/internal/enrichment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnrichmentKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-abcdefghijklmnopqrstu" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"Hi"}}]}`))
	}))
	defer srv.Close()

	client := func(key string) *enrichment.Client {
		return enrichment.NewClient(config.EnrichmentConfig{APIKey: key, BaseURL: srv.URL}, time.Second)
	}
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		out := captureOutput(t)
		require.NoError(t, validateEnrichmentKey(ctx, client("sk-abcdefghijklmnopqrstu")))
		assert.Contains(t, out.String(), "API key is valid.")
	})

	t.Run("Rejected", func(t *testing.T) {
		err := validateEnrichmentKey(ctx, client("sk-zzzzzzzzzzzzzzzzzzzzz"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid API Key")
	})

	t.Run("Bad Format", func(t *testing.T) {
		err := validateEnrichmentKey(ctx, client("token-1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sk-")
	})

	t.Run("Missing", func(t *testing.T) {
		err := validateEnrichmentKey(ctx, client(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Transcription Not Configured")
	})
}
