package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/seitarof/gen-fromone/internal/cli"
	"github.com/seitarof/gen-fromone/internal/derive"
	"github.com/seitarof/gen-fromone/internal/generator"
	"github.com/seitarof/gen-fromone/internal/parser"
)

var version = "dev"

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var flags *cli.Flags

	root := &cobra.Command{
		Use:   "gen-fromone [flags] [package]",
		Short: "Generate conversion constructors for sum interfaces and single-field structs",
		Long: `gen-fromone derives one constructor per convertible field type of the given types.

A sum type is an interface; its variants are the types of the same package
implementing it. A variant whose single field type is unique gets a constructor.
Mark a variant with //fromone:skip to leave it out.

Examples:
  //go:generate gen-fromone -t Shape
  gen-fromone -t Shape,UserID -o model_fromone.go ./model`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args, false)
		},
	}
	flags = cli.BindFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:           "check [flags] [package]",
		Short:         "Report diagnostics and render the output without writing it",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args, true)
		},
	})
	return root
}

func run(cmd *cobra.Command, flags *cli.Flags, args []string, check bool) error {
	cfg, err := flags.Config(cmd.Flags(), args)
	if err != nil {
		return err
	}
	if cfg.ShowVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	}
	cfg.Check = check

	g := generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter())
	runner := cli.NewRunner(parser.New(), derive.Default(), g, os.Stderr)
	return runner.Run(cmd.Context(), cfg)
}
