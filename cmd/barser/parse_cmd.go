package main

import (
	"errors"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/wowczarek/barser"
	"github.com/wowczarek/barser/bserr"
)

type parseConfig struct {
	*cli.Command
	*MainConfig
}

// ParseCommand returns the parse subcommand: read input, parse it, and
// dump it back out, or report the parse error with position context.
func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &parseConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "parse").
		WithAliases("p").
		WithSynopsis("parse [files] - parse input and dump it back out").
		WithDescription("parse reads Barser-format input and re-renders it through the dump printer.").
		WithRun(cfg.run)
}

func (cfg *parseConfig) run(cc *cli.Context, args []string) error {
	src, err := readSource(cc, args)
	if err != nil {
		return err
	}
	dict, err := barser.Parse("cli", cfg.flags(), src)
	if err != nil {
		var perr *bserr.Error
		if errors.As(err, &perr) {
			bserr.Print(cc.Out, perr)
			return fmt.Errorf("%w", cli.ErrUsage)
		}
		return err
	}
	return barser.Dump(cc.Out, dict)
}
