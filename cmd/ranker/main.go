package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/AlexeyBeley/go_ranker/aws_api"
	"github.com/AlexeyBeley/go_ranker/logger"
	"github.com/AlexeyBeley/go_ranker/ranker"
	"github.com/AlexeyBeley/go_ranker/tree"
)

var lg = &(logger.Logger{Level: logger.INFO})

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var s3Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "s3-bucket",
		Usage:   "bucket holding rankings",
		EnvVars: []string{"RANKER_S3_BUCKET"},
	},
	&cli.StringFlag{
		Name:    "s3-key",
		Usage:   "object key of the ranking",
		EnvVars: []string{"RANKER_S3_KEY"},
	},
	&cli.StringFlag{
		Name:    "region",
		Usage:   "AWS region",
		Value:   "us-east-1",
		EnvVars: []string{"AWS_REGION"},
	},
	&cli.StringFlag{
		Name:    "profile",
		Usage:   "AWS shared config profile",
		EnvVars: []string{"AWS_PROFILE"},
	},
}

// setLogLevels applies the flag to every package logger.
func setLogLevels(name string) {
	level := logger.LevelFromString(name)
	lg.Level = level
	tree.SetLogLevel(level)
	ranker.SetLogLevel(level)
	aws_api.SetLogLevel(level)
}

func run(args []string) error {

	app := cli.App{
		Name:  "ranker",
		Usage: "rank a list of items by answering which of two is better",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warning or error",
				Value:   "info",
				EnvVars: []string{"RANKER_LOG_LEVEL"},
			},
		},
		Before: func(cctx *cli.Context) error {
			setLogLevels(cctx.String("log-level"))
			return nil
		},
	}
	app.Commands = []*cli.Command{
		cmdRank,
		cmdShow,
		cmdDemo,
	}
	return app.Run(args)
}
