package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lepinkainen/hondana/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OpenBDBaseURL    string
	ThumbnailBaseURL string
	AmazonBaseURL    string
	HontoBaseURL     string
	ChunkSize        int
	LookupBatchSize  int
	DatastoreDriver  string
	DatastoreDSN     string
	OverwriteFiles   bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OpenBDBaseURL:    config.OpenBDBaseURL,
		ThumbnailBaseURL: config.ThumbnailBaseURL,
		AmazonBaseURL:    config.AmazonBaseURL,
		HontoBaseURL:     config.HontoBaseURL,
		ChunkSize:        config.ChunkSize,
		LookupBatchSize:  config.LookupBatchSize,
		DatastoreDriver:  config.DatastoreDriver,
		DatastoreDSN:     config.DatastoreDSN,
		OverwriteFiles:   config.OverwriteFiles,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OpenBDBaseURL = state.OpenBDBaseURL
	config.ThumbnailBaseURL = state.ThumbnailBaseURL
	config.AmazonBaseURL = state.AmazonBaseURL
	config.HontoBaseURL = state.HontoBaseURL
	config.ChunkSize = state.ChunkSize
	config.LookupBatchSize = state.LookupBatchSize
	config.DatastoreDriver = state.DatastoreDriver
	config.DatastoreDSN = state.DatastoreDSN
	config.OverwriteFiles = state.OverwriteFiles
}

// ResetConfig resets viper and the config package to their defaults and
// restores the previous state when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()
	config.InitConfig()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*ConfigState)

// WithServers points the metadata and thumbnail clients at test servers.
func WithServers(openbdURL, thumbnailURL string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.OpenBDBaseURL = openbdURL
		s.ThumbnailBaseURL = thumbnailURL
	}
}

// WithSQLite stores records in the SQLite file at path.
func WithSQLite(path string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.DatastoreDriver = config.DefaultDatastoreDriver
		s.DatastoreDSN = path
	}
}

// WithChunkSize sets the metadata chunk size.
func WithChunkSize(n int) SetTestConfigOption {
	return func(s *ConfigState) {
		s.ChunkSize = n
	}
}

// SetTestConfig starts from the defaults, applies opts and restores the
// previous configuration when the test completes.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	state := SaveConfigState()
	for _, opt := range opts {
		opt(&state)
	}
	RestoreConfigState(state)
}
