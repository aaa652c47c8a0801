package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/wowczarek/barser"
	"github.com/wowczarek/barser/node"
	"github.com/wowczarek/barser/walk"
)

type walkConfig struct {
	*cli.Command
	*MainConfig

	Escape bool `cli:"name=e desc='escape / and \\\\ in printed paths'"`
	Stats  bool `cli:"name=stats desc='print PathIndex collision statistics instead of listing paths'"`
}

// WalkCommand returns the walk subcommand: print the absolute path and
// type of every node in the parsed tree, depth-first.
func WalkCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &walkConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "walk").
		WithAliases("w").
		WithOpts(opts...).
		WithSynopsis("walk [files] - list every node's path, depth-first").
		WithDescription("walk prints one line per node: its type and its absolute path.").
		WithRun(cfg.run)
}

func (cfg *walkConfig) run(cc *cli.Context, args []string) error {
	src, err := readSource(cc, args)
	if err != nil {
		return err
	}
	dict, err := barser.Parse("cli", cfg.flags(), src)
	if err != nil {
		return err
	}

	if cfg.Stats {
		if !dict.Indexed() {
			fmt.Fprintln(cc.Out, "no index (parsed with -noindex)")
			return nil
		}
		collisions, maxChain := dict.Index().Stats()
		fmt.Fprintf(cc.Out, "nodes: %d  collisions: %d  longest chain: %d\n", dict.NodeCount(), collisions, maxChain)
		return nil
	}

	walk.WalkPaths(dict, nil, cfg.Escape, func(d *node.Dict, n *node.Node, user any, path []byte, stop *bool) {
		if n == dict.Root() {
			return
		}
		fmt.Fprintf(cc.Out, "%-8s %s\n", n.Type(), path)
	})
	return nil
}
