// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins pins mergo's fill-only semantics: a value set
// by an earlier source is not replaced by a later one.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env"}},
		&StructuredConfig{App: App{Version: "json", TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":      "env-version",
		"APP_TOKEN_ISSUER": "env-issuer",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithFlags_AppendsConfig(t *testing.T) {
	withArgs(t, "-d", "file:test.db")

	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
	require.Len(t, b.configs, 1)
	assert.Equal(t, "file:test.db", b.configs[0].Storage.DB.DSN)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	p := writeJSONFile(t, `{"auth": {"token_issuer": "from-json"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "from-json", b.configs[1].App.TokenIssuer)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := writeJSONFile(t, `{"app": {"version": "first"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: "/ignored.json"},
	)
	b.withJSON()

	require.NoError(t, b.err)
	assert.Equal(t, "first", b.configs[2].App.Version)
}

func TestWithDefaults_FillOnlyUnsetFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Server: Server{HTTPAddress: ":9000"}})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultGRPCAddress, cfg.Server.GRPCAddress)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultRetryCount, cfg.Adapter.RetryCount)
	assert.Equal(t, DefaultServerURL, cfg.Adapter.HTTPAddress)
}

// ── validation ────────────────────────────────────────────────────────────────

func validServerConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "k", TokenDuration: time.Hour},
		Storage: Storage{DB: DB{DSN: "file:formdesk.db"}},
		Server:  Server{HTTPAddress: ":8080", RequestTimeout: time.Second},
	}
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *StructuredConfig)
		want   error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, want: ErrInvalidStorageConfigs},
		{name: "missing sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, want: ErrInvalidAppConfigs},
		{name: "bad public url", mutate: func(c *StructuredConfig) { c.App.PublicURL = "not a url" }, want: ErrInvalidAppConfigs},
		{name: "missing address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, want: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{Adapter: ClientAdapter{HTTPAddress: "http://localhost:8080", RequestTimeout: time.Second}}
	assert.NoError(t, valid.validate())

	noURL := valid
	noURL.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidAdapterConfigs)

	relative := valid
	relative.Adapter.HTTPAddress = "localhost"
	assert.ErrorIs(t, relative.validate(), ErrInvalidAdapterConfigs)

	negative := valid
	negative.Adapter.RetryCount = -1
	assert.ErrorIs(t, negative.validate(), ErrInvalidAdapterConfigs)
}
