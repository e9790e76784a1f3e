package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/rules"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
pairs: [sz, kh]
scope: full
highlight: green
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"sz", "kh"}, cfg.Pairs)
	assert.Equal(t, "full", cfg.Scope)
	assert.Equal(t, "green", cfg.Highlight)

	sc := cfg.SessionConfig()
	assert.Equal(t, []rules.Pair{rules.PairSZ, rules.PairKH}, sc.Pairs)
	assert.Equal(t, document.ScopeFull, sc.Scope)
	assert.Equal(t, "green", sc.Highlight)
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	path := writeConfig(t, `pairs: [sz]`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "body", cfg.Scope)
	assert.Equal(t, "yellow", cfg.Highlight)
}

func TestLoad_LongScopeSpelling(t *testing.T) {
	path := writeConfig(t, `scope: body+headers+footers+tables`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Scope)
}

func TestLoad_InvalidPair(t *testing.T) {
	path := writeConfig(t, `pairs: [sz, xy]`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pair")
}

func TestLoad_DuplicatePair(t *testing.T) {
	path := writeConfig(t, `pairs: [sz, sz]`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate pair")
}

func TestLoad_InvalidScope(t *testing.T) {
	path := writeConfig(t, `scope: everywhere`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scope")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	sc := cfg.SessionConfig()
	assert.Equal(t, []rules.Pair{rules.PairSZ}, sc.Pairs)
	assert.Equal(t, document.ScopeBody, sc.Scope)
}
