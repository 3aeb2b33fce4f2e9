package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokaycavdar/go-georisk/pkg/auth"
	"github.com/gokaycavdar/go-georisk/pkg/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	jsonOutput = false

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "GB", "IR")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:   40")
	assert.Contains(t, out, "Level:   LOW")
	assert.Contains(t, out, "Elevated zone risk")
}

func TestCheckCommandJSON(t *testing.T) {
	out, err := run(t, "check", "GB", "YE", "--json")
	require.NoError(t, err)

	var got models.QuickCheck
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, models.QuickCheck{Score: 25, Level: models.LevelLow, FactorCount: 1}, got)
}

func TestCheckCommandNeedsTwoArgs(t *testing.T) {
	_, err := run(t, "check", "GB")
	assert.Error(t, err)
}

func TestZonesCommand(t *testing.T) {
	out, err := run(t, "zones")
	require.NoError(t, err)
	assert.Contains(t, out, "Russia")
	assert.Contains(t, out, "Strait of Hormuz")
}

func TestCheckCommandUsesZoneTableFile(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "zones.yaml")
	require.NoError(t, os.WriteFile(table, []byte("sanctions: [\"XX\"]\n"), 0o600))
	cfgPath := filepath.Join(dir, "georisk.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("zones:\n  table_file: "+table+"\n"), 0o600))

	color.NoColor = true
	jsonOutput = false
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"check", "XX", "GB", "--json", "--config", cfgPath})
	require.NoError(t, cmd.Execute())

	var got models.QuickCheck
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 40, got.Score)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("GEORISK_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	out, err := run(t, "token", "user_42")
	require.NoError(t, err)

	v, err := auth.NewVerifier(auth.Config{Secret: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)
	caller, err := v.Verify(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	assert.Equal(t, "user_42", caller)
}

func TestTokenCommandWithoutSecret(t *testing.T) {
	t.Setenv("GEORISK_JWT_SECRET", "")
	_, err := run(t, "token", "user_42")
	assert.ErrorIs(t, err, auth.ErrShortSecret)
}
