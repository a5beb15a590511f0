package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := NewReporterConfig()
	require.Equal(t, "http://localhost:26657", c.RPCEndpoint)
	require.Equal(t, "http://localhost:1317", c.RESTEndpoint)
	require.Equal(t, 20, c.BlockSampleSeconds)
	require.Equal(t, "", c.DBUrl)
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(
		"rpc-endpoint: https://node.example.com/rpc\n" +
			"rest-endpoint: https://node.example.com\n" +
			"min-gas-price: 0.000025\n" +
			"csv-dir: out\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	c := NewReporterConfig()
	require.NoError(t, c.ApplyFile(path))

	require.Equal(t, "https://node.example.com/rpc", c.RPCEndpoint)
	require.Equal(t, "https://node.example.com", c.RESTEndpoint)
	require.Equal(t, 0.000025, c.MinGasPrice)
	require.Equal(t, "out", c.CSVDir)
	// untouched keys keep their defaults
	require.Equal(t, 20, c.BlockSampleSeconds)
}

func TestApplyFileMissing(t *testing.T) {
	c := NewReporterConfig()
	require.Error(t, c.ApplyFile("does-not-exist.yaml"))
}

func TestScenarioState(t *testing.T) {
	c := NewReporterConfig()
	_, _, _, _, ok := c.ScenarioState()
	require.False(t, ok, "defaults are incomplete")

	c.ScenarioTotalStakeTRB = 25_000
	c.ScenarioMintPerBlock = 3_400
	c.ScenarioBlockTime = 2.0

	stake, mint, fee, blockTime, ok := c.ScenarioState()
	require.True(t, ok, "a zero fee is a valid baseline")
	require.Equal(t, 25_000.0, stake)
	require.Equal(t, 3_400.0, mint)
	require.Equal(t, 0.0, fee)
	require.Equal(t, 2.0, blockTime)

	c.ScenarioBlockTime = 0
	_, _, _, _, ok = c.ScenarioState()
	require.False(t, ok, "missing block time disables the override")
}
