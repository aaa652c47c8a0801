package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/wowczarek/barser/node"
)

// MainConfig holds the options shared by every subcommand: whether to
// build dictionaries without a path index, and where output goes.
type MainConfig struct {
	NoIndex bool `cli:"name=noindex desc='parse without maintaining a path index'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// flags turns MainConfig's options into the node.DictFlags Parse expects.
func (cfg *MainConfig) flags() node.DictFlags {
	var f node.DictFlags
	if cfg.NoIndex {
		f |= node.NoIndex
	}
	return f
}

// MainCommand builds the barser command tree: a shared set of opts plus
// the parse/get/walk/diff subcommands.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "barser").
		WithSynopsis("barser [opts] command [opts]").
		WithDescription("barser parses and queries Barser-format configuration data.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return barserMain(cfg, cc, args)
		}).
		WithSubs(
			ParseCommand(cfg),
			GetCommand(cfg),
			WalkCommand(cfg),
			DiffCommand(cfg),
		)
}

func barserMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// readSource concatenates every named file, or reads cc.In whole when no
// files are given, matching the go-tony "command [opts] [files]" idiom.
func readSource(cc *cli.Context, paths []string) ([]byte, error) {
	if len(paths) == 0 {
		return io.ReadAll(cc.In)
	}
	var buf bytes.Buffer
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
