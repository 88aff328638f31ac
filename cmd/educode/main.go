// educode runs EduCode programs: a small teaching language with Portuguese
// keywords.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"educode-lang/impl/internal/interpreter"
	"educode-lang/impl/internal/lexer"
	"educode-lang/impl/internal/log"
	"educode-lang/impl/internal/parser"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 2,
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored log and error output",
	}
	traceFlag = cli.BoolFlag{
		Name:  "trace",
		Usage: "Log every executed statement",
	}
	varsFlag = cli.BoolFlag{
		Name:  "vars",
		Usage: "Print the final variables as a table on stderr",
	}
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Dump the Go values of the syntax tree instead of YAML",
	}

	runCommand = cli.Command{
		Action:    runProgram,
		Name:      "run",
		Usage:     "Run an EduCode program",
		ArgsUsage: "<file.edu>",
	}
	tokensCommand = cli.Command{
		Action:    printTokens,
		Name:      "tokens",
		Usage:     "Print the token stream as JSON lines",
		ArgsUsage: "<file.edu>",
	}
	astCommand = cli.Command{
		Action:    printAST,
		Name:      "ast",
		Usage:     "Print the syntax tree",
		ArgsUsage: "<file.edu>",
		Flags:     []cli.Flag{rawFlag},
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "the EduCode teaching language interpreter"
	app.ArgsUsage = "<file.edu>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		noColorFlag,
		traceFlag,
		varsFlag,
	}
	app.Commands = []cli.Command{
		runCommand,
		tokensCommand,
		astCommand,
		replCommand,
		dumpConfigCommand,
	}
	app.Action = runProgram
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// prepare loads the configuration and installs logging for a command.
func prepare(ctx *cli.Context) (educodeConfig, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return cfg, err
	}
	if !cfg.Log.Color {
		color.NoColor = true
	}
	setupLogging(cfg.Log)
	return cfg, nil
}

func runProgram(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	path := ctx.Args().First()
	if path == "" {
		cli.ShowAppHelp(ctx)
	}
	return execFile(path, cfg.Interpreter, ctx.GlobalBool(varsFlag.Name), os.Stdout, os.Stderr)
}

// execFile runs the program at path. With showVars set the final variables
// are written to errOut, also when the program fails.
func execFile(path string, cfg interpreter.Config, showVars bool, out, errOut io.Writer) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	log.Info("Running program", "file", path)
	in := interpreter.New(out, cfg)
	err = in.Execute(src)
	if showVars {
		interpreter.WriteVars(errOut, in.Env())
	}
	return err
}

func printTokens(ctx *cli.Context) error {
	if _, err := prepare(ctx); err != nil {
		return err
	}
	src, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}
	return writeTokens(os.Stdout, src)
}

func writeTokens(w io.Writer, src string) error {
	toks, err := lexer.Lex(src)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range toks {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}

func printAST(ctx *cli.Context) error {
	if _, err := prepare(ctx); err != nil {
		return err
	}
	src, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}
	return writeAST(os.Stdout, src, ctx.Bool(rawFlag.Name))
}

func writeAST(w io.Writer, src string, raw bool) error {
	prog, err := parser.Parse(src)
	if err != nil {
		return err
	}
	if raw {
		spew.Fdump(w, prog)
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(prog); err != nil {
		return fmt.Errorf("failed to encode syntax tree: %w", err)
	}
	return enc.Close()
}
