package config

var (
	DefaultLogLevel           string  = "info"
	DefaultRPCEndpoint        string  = "http://localhost:26657"
	DefaultRESTEndpoint       string  = "http://localhost:1317"
	DefaultMinGasPrice        float64 = 0
	DefaultBlockSampleSeconds int     = 20
	DefaultFeeSampleBlocks    int     = 20
	DefaultMintSampleBlocks   int     = 10
	DefaultCSVDir             string  = ""
	DefaultDBUrl              string  = ""
	DefaultDBRetentionDays    int     = 0
	DefaultPrometheusPort     int     = 9080
)
