package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/wowczarek/barser"
)

type diffConfig struct {
	*cli.Command
	*MainConfig
}

// DiffCommand returns the diff subcommand: parse two files and diff their
// canonical (dumped) text, so a diff reflects the tree's actual shape
// rather than incidental whitespace in the originals.
func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &diffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "diff").
		WithAliases("d").
		WithSynopsis("diff <a> <b> - diff two files' canonical dumps").
		WithDescription("diff parses a and b and reports a line-oriented diff of their re-dumped form.").
		WithRun(cfg.run)
}

func (cfg *diffConfig) run(cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: barser diff <a> <b>", cli.ErrUsage)
	}

	aText, err := cfg.canonical(args[0])
	if err != nil {
		return err
	}
	bText, err := cfg.canonical(args[1])
	if err != nil {
		return err
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(aText, bText, true)
	fmt.Fprintln(cc.Out, dmp.DiffPrettyText(diffs))
	return nil
}

func (cfg *diffConfig) canonical(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	dict, err := barser.Parse(path, cfg.flags(), src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := barser.Dump(&buf, dict); err != nil {
		return "", err
	}
	return buf.String(), nil
}
