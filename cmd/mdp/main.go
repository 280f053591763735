package main

import (
	"os"

	"github.com/connctd/presenter"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var (
	configFile string
	config     presenter.Config
)

func main() {
	app := cli.NewApp()
	app.Name = "mdp"
	app.Usage = "Turn markdown into slide decks"
	app.Version = presenter.Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug output",
		},
		cli.StringFlag{
			Name:        "config",
			Usage:       "Read settings from `FILE` instead of ./presenter.yaml",
			Destination: &configFile,
		},
	}
	app.Before = func(ctx *cli.Context) (err error) {
		if ctx.GlobalBool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		config, err = presenter.LoadConfig(configFile)
		return
	}
	app.Commands = []cli.Command{
		renderCommand,
		serveCommand,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Error("mdp failed")
		os.Exit(1)
	}
}
