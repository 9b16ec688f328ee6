package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	config_pol "github.com/AlexeyBeley/go_ranker/configuration_policy"
	"github.com/AlexeyBeley/go_ranker/json_api"
	"github.com/AlexeyBeley/go_ranker/ranker"
)

var cmdRank = &cli.Command{
	Name:      "rank",
	Usage:     "rank items interactively",
	ArgsUsage: "<items.json>",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "JSON configuration file",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write the final ranking to this JSON file, STRING_REPLACEMENT_DATE and STRING_REPLACEMENT_COUNT are filled in",
		},
		&cli.StringFlag{
			Name:  "checkpoint",
			Usage: "resume from and save progress to this JSON file",
		},
	}, s3Flags...),
	Action: runRank,
}

const rankHelp = `answer with:
  1  first item is better
  2  second item is better
  u  undo last answer
  t  show the tree
  s  save checkpoint and stop
  q  stop without saving`

var errStopped = errors.New("stopped")

func runRank(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return fmt.Errorf("expected one items file, got %d arguments", cctx.Args().Len())
	}

	configuration, err := loadConfiguration(cctx)
	if err != nil {
		return err
	}

	session, err := openSession(cctx.Args().First(), cctx.String("checkpoint"), configuration)
	if err != nil {
		return err
	}

	out := cctx.App.Writer
	fmt.Fprintln(out, rankHelp)
	err = askAll(session, cctx.App.Reader, out, cctx.String("checkpoint"))
	if errors.Is(err, errStopped) {
		return nil
	}
	if err != nil {
		return err
	}

	ranking := session.Ranking()
	for i, name := range ranking.Names() {
		fmt.Fprintf(out, "%3d. %s\n", i+1, name)
	}
	lg.Infof("Ranked %d items with %d comparisons", session.Placed(), session.Comparisons())

	if path := cctx.String("out"); path != "" {
		if path, err = ranking.ExpandTemplate(path); err != nil {
			return err
		}
		if err := session.ExportToFile(path); err != nil {
			return err
		}
	}
	if configuration.useS3() {
		key, err := ranking.ExpandTemplate(configuration.Key)
		if err != nil {
			return err
		}
		if err := session.ExportToS3(configuration.s3API(), configuration.Bucket, key); err != nil {
			return err
		}
	}
	return nil
}

func openSession(itemsPath, checkpointPath string, configuration *Configuration) (*ranker.Session, error) {
	option := config_pol.WithConfiguration(&configuration.Ranker)

	if checkpointPath != "" {
		if _, err := os.Stat(checkpointPath); err == nil {
			checkpoint := &ranker.SessionCheckpoint{}
			if err := json_api.ReadFromFile(&checkpointPath, checkpoint); err != nil {
				return nil, err
			}
			lg.Infof("Resuming from '%s': %d items ranked", checkpointPath, len(checkpoint.Ranked))
			return ranker.SessionResume(checkpoint, option)
		}
	}

	itemList, err := ranker.ItemListFromFile(itemsPath)
	if err != nil {
		return nil, err
	}
	return ranker.SessionNew(itemList, option)
}

func askAll(session *ranker.Session, in io.Reader, out io.Writer, checkpointPath string) error {
	scanner := bufio.NewScanner(in)
	for {
		pending, against, done := session.Next()
		if done {
			return nil
		}

		fmt.Fprintf(out, "[%d/%d] 1) %s   2) %s > ", session.Placed(), session.Total(), pending.Name, against.Name)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errStopped
		}

		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			err = session.Decide(true)
		case "2":
			err = session.Decide(false)
		case "u":
			err = session.Undo()
		case "t":
			fmt.Fprintln(out, session.Tree().GetTreeDiagram())
		case "s":
			if checkpointPath == "" {
				fmt.Fprintln(out, "no --checkpoint given")
				continue
			}
			if err := json_api.WriteToFile(session.Checkpoint(), &checkpointPath); err != nil {
				return err
			}
			return errStopped
		case "q":
			return errStopped
		default:
			fmt.Fprintln(out, rankHelp)
		}
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
	}
}
