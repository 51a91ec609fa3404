package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/welearn/internal/pkg/apiclient"
	"github.com/yigit/welearn/internal/pkg/logger"
)

func main() {
	logger.Configure(logger.Config{Level: logger.WarnLevel, Pretty: true})

	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("welearnctl failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "welearnctl",
		Usage: "command line client for the We Learn API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "base URL of the API",
				Value:   apiclient.DefaultBaseURL,
				EnvVars: []string{"WELEARN_API"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "session token returned by login",
				EnvVars: []string{"WELEARN_TOKEN"},
			},
		},
		Commands: []*cli.Command{
			postsCommand(),
			loginCommand(),
		},
	}
}
