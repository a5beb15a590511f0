package config

import (
	cli "github.com/urfave/cli/v2"
)

type ReporterConfig struct {
	LogLevel     string  `yaml:"log-level"`
	RPCEndpoint  string  `yaml:"rpc-endpoint"`
	RESTEndpoint string  `yaml:"rest-endpoint"`
	MinGasPrice  float64 `yaml:"min-gas-price"` // loya per gas unit, overrides the chain query when set

	BlockSampleSeconds int `yaml:"block-sample-seconds"` // wait between the two block-time samples
	FeeSampleBlocks    int `yaml:"fee-sample-blocks"`    // how many recent blocks to scan for report fees
	MintSampleBlocks   int `yaml:"mint-sample-blocks"`   // how many recent blocks to scan for mint events

	CSVDir          string `yaml:"csv-dir"`           // empty disables CSV export
	DBUrl           string `yaml:"db-url"`            // empty disables persistence
	DBRetentionDays int    `yaml:"db-retention-days"` // 0 keeps detail rows forever
	PrometheusPort  int    `yaml:"prometheus-port"`

	// Scenario overrides. When all four are set the scenarios command runs
	// offline against them instead of snapshotting the chain.
	ScenarioTotalStakeTRB float64 `yaml:"scenario-total-stake-trb"`
	ScenarioMintPerBlock  float64 `yaml:"scenario-mint-per-block"`  // loya
	ScenarioFeePerReport  float64 `yaml:"scenario-fee-per-report"`  // loya
	ScenarioBlockTime     float64 `yaml:"scenario-block-time"`      // seconds
}

func NewReporterConfig() *ReporterConfig {
	// Default values for the reporter configuration
	return &ReporterConfig{
		LogLevel:           DefaultLogLevel,
		RPCEndpoint:        DefaultRPCEndpoint,
		RESTEndpoint:       DefaultRESTEndpoint,
		MinGasPrice:        DefaultMinGasPrice,
		BlockSampleSeconds: DefaultBlockSampleSeconds,
		FeeSampleBlocks:    DefaultFeeSampleBlocks,
		MintSampleBlocks:   DefaultMintSampleBlocks,
		CSVDir:             DefaultCSVDir,
		DBUrl:              DefaultDBUrl,
		DBRetentionDays:    DefaultDBRetentionDays,
		PrometheusPort:     DefaultPrometheusPort,
	}
}

func (c *ReporterConfig) Apply(ctx *cli.Context) error {
	// config file first so explicit flags can override its values
	if ctx.IsSet("config") {
		if err := c.ApplyFile(ctx.String("config")); err != nil {
			return err
		}
	}
	if ctx.IsSet("log-level") {
		c.LogLevel = ctx.String("log-level")
	}
	if ctx.IsSet("rpc-endpoint") {
		c.RPCEndpoint = ctx.String("rpc-endpoint")
	}
	if ctx.IsSet("rest-endpoint") {
		c.RESTEndpoint = ctx.String("rest-endpoint")
	}
	if ctx.IsSet("min-gas-price") {
		c.MinGasPrice = ctx.Float64("min-gas-price")
	}
	if ctx.IsSet("block-sample-seconds") {
		c.BlockSampleSeconds = ctx.Int("block-sample-seconds")
	}
	if ctx.IsSet("fee-sample-blocks") {
		c.FeeSampleBlocks = ctx.Int("fee-sample-blocks")
	}
	if ctx.IsSet("mint-sample-blocks") {
		c.MintSampleBlocks = ctx.Int("mint-sample-blocks")
	}
	if ctx.IsSet("csv-dir") {
		c.CSVDir = ctx.String("csv-dir")
	}
	if ctx.IsSet("db-url") {
		c.DBUrl = ctx.String("db-url")
	}
	if ctx.IsSet("db-retention-days") {
		c.DBRetentionDays = ctx.Int("db-retention-days")
	}
	if ctx.IsSet("prometheus-port") {
		c.PrometheusPort = ctx.Int("prometheus-port")
	}
	if ctx.IsSet("total-stake-trb") {
		c.ScenarioTotalStakeTRB = ctx.Float64("total-stake-trb")
	}
	if ctx.IsSet("mint-per-block") {
		c.ScenarioMintPerBlock = ctx.Float64("mint-per-block")
	}
	if ctx.IsSet("fee-per-report") {
		c.ScenarioFeePerReport = ctx.Float64("fee-per-report")
	}
	if ctx.IsSet("block-time") {
		c.ScenarioBlockTime = ctx.Float64("block-time")
	}
	return nil
}

// ScenarioState returns the manually supplied network observables, or
// ok=false when they are incomplete and the chain must be snapshotted.
func (c *ReporterConfig) ScenarioState() (totalStakeTRB, mintPerBlock, feePerReport, blockTime float64, ok bool) {
	if c.ScenarioTotalStakeTRB <= 0 || c.ScenarioMintPerBlock <= 0 || c.ScenarioBlockTime <= 0 {
		return 0, 0, 0, 0, false
	}
	if c.ScenarioFeePerReport < 0 {
		return 0, 0, 0, 0, false
	}
	return c.ScenarioTotalStakeTRB, c.ScenarioMintPerBlock, c.ScenarioFeePerReport, c.ScenarioBlockTime, true
}
