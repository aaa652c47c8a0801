package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/wowczarek/barser"
	"github.com/wowczarek/barser/node"
)

type getConfig struct {
	*cli.Command
	*MainConfig
}

// GetCommand returns the get subcommand: resolve a query path against
// parsed input and print whatever it names.
func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &getConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files] - resolve a query path and print the matching node").
		WithDescription("get prints a LEAF's value directly, and dumps any other node's subtree.").
		WithRun(cfg.run)
}

func (cfg *getConfig) run(cc *cli.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: usage: barser get <path> [files]", cli.ErrUsage)
	}
	path, files := args[0], args[1:]

	src, err := readSource(cc, files)
	if err != nil {
		return err
	}
	dict, err := barser.Parse("cli", cfg.flags(), src)
	if err != nil {
		return err
	}

	n, err := barser.GetFrom(dict, dict.Root(), path)
	if err != nil {
		return fmt.Errorf("%w: no node at %q", cli.ErrUsage, path)
	}

	if n.Type() == node.Leaf && n.Value() != nil {
		fmt.Fprintf(cc.Out, "%s\n", n.Value())
		return nil
	}
	if n == dict.Root() {
		return barser.Dump(cc.Out, dict)
	}
	return barser.DumpNode(cc.Out, n)
}
