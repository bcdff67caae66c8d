package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "ssds").
		WithSynopsis("ssds [opts] command [opts]").
		WithDescription("ssds encodes, decodes and inspects self-describing streams.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ssdsMain(cfg, cc, args)
		}).
		WithSubs(
			EncodeCommand(cfg),
			DumpCommand(cfg),
			SchemaCommand(cfg),
			InfoCommand(cfg),
			DiffCommand(cfg),
			FilterCommand(cfg))
}

func EncodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EncodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Encode, "encode").
		WithAliases("e", "enc").
		WithSynopsis("encode [-y] [-validate] [-t] [files]").
		WithDescription("encode text (or yaml) documents as a single binary stream").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return encode(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-y] [-levels] [files]").
		WithDescription("render binary streams as text (or yaml)").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Schema, "schema").
		WithAliases("s").
		WithSynopsis("schema [files]").
		WithDescription("print the groups and items a stream declares").
		WithRun(func(cc *cli.Context, args []string) error {
			return printSchema(cfg, cc, args)
		})
}

func InfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InfoConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Info, "info").
		WithAliases("i").
		WithSynopsis("info [files]").
		WithDescription("summarize the records of a stream").
		WithRun(func(cc *cli.Context, args []string) error {
			return info(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff a b").
		WithDescription("line diff of the text renditions of two streams").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Filter, "filter").
		WithAliases("f").
		WithSynopsis("filter [-c] <expr> [files]").
		WithDescription("print the records for which a boolean expression holds.\n" +
			"The expression sees name, id, level, type, isa, value, start and end.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return filter(cfg, cc, args)
		})
}
