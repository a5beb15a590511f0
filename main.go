package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/tellor-io/layerprof/cmd"
	"github.com/tellor-io/layerprof/pkg/utils"
)

var (
	log = logrus.WithField(
		"cli", "CliName",
	)
)

func main() {
	fmt.Println(utils.CliName, utils.Version)

	customFormatter := new(logrus.TextFormatter)
	customFormatter.FullTimestamp = true

	// Set the general log configurations for the entire tool
	logrus.SetFormatter(customFormatter)
	logrus.SetOutput(utils.ParseLogOutput("terminal"))
	logrus.SetLevel(utils.ParseLogLevel("info"))

	app := &cli.App{
		Name:      utils.CliName,
		Usage:     "Reporter profitability analytics for the Tellor Layer chain.",
		UsageText: "layerprof [commands] [arguments...]",
		Authors: []*cli.Author{
			{
				Name: "Tellor Core Team",
			},
		},
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			cmd.ReportCommand,
			cmd.ScenariosCommand,
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Errorf("error: %v\n", err)
		os.Exit(1)
	}
}
