package cmd

import (
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/tellor-io/layerprof/pkg/analyzer"
)

var ScenariosCommand = &cli.Command{
	Name:   "scenarios",
	Usage:  "project APRs for hypothetical total-stake levels under current conditions",
	Action: LaunchStakeScenarios,
	Flags: append([]cli.Flag{
		&cli.Float64Flag{
			Name:  "total-stake-trb",
			Usage: "baseline total stake in TRB, skips the chain snapshot when the full baseline is given",
		},
		&cli.Float64Flag{
			Name:  "mint-per-block",
			Usage: "baseline mint per block in loya",
		},
		&cli.Float64Flag{
			Name:  "fee-per-report",
			Usage: "baseline fee per report in loya",
		},
		&cli.Float64Flag{
			Name:  "block-time",
			Usage: "baseline block time in seconds",
		},
	}, reporterFlags...),
}

var logCmdScenarios = logrus.WithField(
	"module", "scenariosCommand",
)

func LaunchStakeScenarios(c *cli.Context) error {
	return launchAnalyzer(c, analyzer.ModeScenarios, logCmdScenarios)
}
