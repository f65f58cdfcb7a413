package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
property_id: "123456"
key_file: /keys/sa.json
metrics:
  - Sessions
  - Users
channel: Organic Search
channels:
  - Organic Search
  - Paid Search
output_dir: /tmp/reports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "123456", profile.PropertyID)
	assert.Equal(t, "/keys/sa.json", profile.KeyFile)
	assert.Equal(t, []string{"Sessions", "Users"}, profile.Metrics)
	assert.Equal(t, "Organic Search", profile.Channel)
	assert.Equal(t, []string{"Organic Search", "Paid Search"}, profile.Channels)
	assert.Equal(t, "/tmp/reports", profile.OutputDir)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
