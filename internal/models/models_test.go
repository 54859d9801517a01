// filepath: internal/models/models_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReport_IsHealthy(t *testing.T) {
	all := HealthReport{
		PermissionGranted:    true,
		SufficientStorage:    true,
		PersistenceReachable: true,
		AudioReachable:       true,
	}
	assert.True(t, all.IsHealthy())

	// Orphans are advisory.
	withOrphans := all
	withOrphans.OrphanedFiles = 12
	assert.True(t, withOrphans.IsHealthy())

	cases := map[string]func(r *HealthReport){
		"permission":  func(r *HealthReport) { r.PermissionGranted = false },
		"storage":     func(r *HealthReport) { r.SufficientStorage = false },
		"persistence": func(r *HealthReport) { r.PersistenceReachable = false },
		"audio":       func(r *HealthReport) { r.AudioReachable = false },
	}
	for name, breakIt := range cases {
		t.Run(name, func(t *testing.T) {
			r := all
			breakIt(&r)
			assert.False(t, r.IsHealthy())
		})
	}
}

func TestHealthReport_JSONIncludesDerivedFlag(t *testing.T) {
	data, err := json.Marshal(HealthReport{PermissionGranted: true, AvailableStorageMB: 42})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["is_healthy"])
	assert.Equal(t, float64(42), decoded["available_storage_mb"])
}

func TestIntegrityReport_Score(t *testing.T) {
	assert.Equal(t, 1.0, IntegrityReport{}.IntegrityScore())
	assert.Equal(t, 0.5, IntegrityReport{TotalEntries: 4, ValidEntries: 2}.IntegrityScore())
	assert.Equal(t, 0.0, IntegrityReport{TotalEntries: 3}.IntegrityScore())
	assert.Equal(t, 1.0, IntegrityReport{TotalEntries: 3, ValidEntries: 3}.IntegrityScore())

	data, err := json.Marshal(IntegrityReport{TotalEntries: 4, ValidEntries: 1})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"integrity_score":0.25`)
}

func TestEntryUpdate_IsEmpty(t *testing.T) {
	assert.True(t, EntryUpdate{}.IsEmpty())
	text := "hello"
	assert.False(t, EntryUpdate{Transcript: &text}.IsEmpty())
}
