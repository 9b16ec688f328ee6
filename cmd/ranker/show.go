package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/AlexeyBeley/go_ranker/ranker"
	"github.com/AlexeyBeley/go_ranker/tree"
)

var cmdShow = &cli.Command{
	Name:      "show",
	Usage:     "print a saved ranking from a file or S3",
	ArgsUsage: "[ranking.json]",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "JSON configuration file",
		},
		&cli.BoolFlag{
			Name:  "tree",
			Usage: "also print the balanced tree built from the ranking",
		},
	}, s3Flags...),
	Action: runShow,
}

func runShow(cctx *cli.Context) error {
	configuration, err := loadConfiguration(cctx)
	if err != nil {
		return err
	}

	var ranking *ranker.Ranking
	switch {
	case cctx.Args().Len() == 1:
		ranking, err = ranker.RankingFromFile(cctx.Args().First())
	case configuration.useS3():
		var data []byte
		data, err = configuration.s3API().GetRanking(configuration.Bucket, configuration.Key)
		if err == nil {
			ranking, err = ranker.RankingFromJSON(data)
		}
	default:
		return errors.New("need a ranking file or --s3-bucket and --s3-key")
	}
	if err != nil {
		return err
	}

	out := cctx.App.Writer
	names := ranking.Names()
	for i, name := range names {
		fmt.Fprintf(out, "%3d. %s\n", i+1, name)
	}
	if !ranking.Complete {
		fmt.Fprintln(out, "(incomplete)")
	}

	if cctx.Bool("tree") {
		if ranking.BestFirst {
			for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
				names[i], names[j] = names[j], names[i]
			}
		}
		rankTree, err := tree.RankTreeNewFromSorted(names)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rankTree.GetTreeString())
	}
	return nil
}
