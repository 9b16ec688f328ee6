package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/AlexeyBeley/go_ranker/tree"
)

var cmdDemo = &cli.Command{
	Name:   "demo",
	Usage:  "run a scripted ranking and print every step",
	Action: runDemo,
}

// demoScript places each value with fixed answers, Right meaning it wins.
var demoScript = []struct {
	value     string
	decisions []tree.Direction
}{
	{"B", []tree.Direction{tree.Right}},
	{"C", []tree.Direction{tree.Left}},
	{"D", []tree.Direction{tree.Left, tree.Left}},
	{"E", []tree.Direction{tree.Right, tree.Left}},
	{"F", []tree.Direction{tree.Left, tree.Left, tree.Left}},
}

func runDemo(cctx *cli.Context) error {
	out := cctx.App.Writer
	rankTree, err := tree.RankTreeNewWithRoot("A")
	if err != nil {
		return err
	}

	for _, step := range demoScript {
		walk, err := rankTree.BeginInsert(step.value)
		if err != nil {
			return err
		}
		for _, decision := range step.decisions {
			against, _ := walk.Current()
			fmt.Fprintf(out, "%s vs %s: %s\n", step.value, against, decision)
			if _, err := walk.Submit(decision); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%v\n%s\n\n", rankTree.GetSorted(), rankTree.GetTreeString())
	}

	fmt.Fprintln(out, rankTree.GetTreeDiagram())
	return rankTree.Verify()
}
