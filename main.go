package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hesusruiz/mdparser/config"
	"github.com/hesusruiz/mdparser/mdparser"
	"github.com/hesusruiz/mdparser/output"
	"github.com/hesusruiz/mdparser/render"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9E64"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
)

// options are the command line settings that apply to every run
type options struct {
	cfg     config.Config
	json    bool
	dump    bool
	dryrun  bool
	timeout time.Duration
}

// convert parses one input file and writes the enabled artifacts
func convert(inputFileName string, opts options, sugar *zap.SugaredLogger) error {
	source, err := os.ReadFile(inputFileName)
	if err != nil {
		return errors.Wrapf(err, "reading %s", inputFileName)
	}

	p, err := mdparser.NewParser(opts.cfg.Parser, mdparser.WithLogger(sugar))
	if err != nil {
		return err
	}

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	nodes, err := p.ParseContext(ctx, string(source))
	if err != nil {
		return err
	}
	sugar.Infow("parsed", "file", inputFileName, "nodes", len(nodes), "warnings", len(p.Warnings()))

	for _, w := range p.Warnings() {
		fmt.Fprintln(os.Stderr, warningStyle.Render("warning: "+w))
	}

	if opts.dump {
		os.Stdout.Write(output.Dump(nodes))
	}

	if opts.json {
		data, err := p.ToJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}

	if opts.dryrun {
		return nil
	}

	renderer := render.New(opts.cfg.Renderer, render.WithLogger(sugar), render.WithContext(ctx))
	artifacts, err := output.NewWriter(opts.cfg.Output, sugar).WriteAll(nodes, renderer)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		fmt.Println(successStyle.Render("✓ "+a.Path), dimStyle.Render(humanize.Bytes(uint64(a.Size))))
	}

	return nil
}

// processWatch converts the input again each time it is modified
func processWatch(inputFileName string, opts options, sugar *zap.SugaredLogger) error {

	var oldTimestamp time.Time

	for {

		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}

		if oldTimestamp.Before(info.ModTime()) {
			oldTimestamp = info.ModTime()
			fmt.Println(dimStyle.Render("processing " + inputFileName))

			// A broken document is reported and the watch goes on
			if err := convert(inputFileName, opts, sugar); err != nil {
				fmt.Fprintln(os.Stderr, warningStyle.Render("error: "+err.Error()))
			}
		}

		time.Sleep(1 * time.Second)

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	// Default input file name
	var inputFileName = "index.md"

	debug := c.Bool("debug")

	var z *zap.Logger
	var err error

	// Setup the logging system
	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	// An explicit config file must exist, the default one is optional
	var cfg config.Config
	if c.IsSet("config") {
		cfg, err = config.Load(c.String("config"))
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultFile)
	}
	if err != nil {
		return err
	}

	if dir := c.String("output"); len(dir) > 0 {
		cfg.Output.Directory = dir
	}
	if c.Bool("mermaid-cli") {
		cfg.Parser.Mermaid.UseCLIValidation = true
	}

	// Get the input file name
	if c.Args().Present() {
		inputFileName = c.Args().First()
	} else {
		fmt.Printf("no input file provided, using \"%v\"\n", inputFileName)
	}

	opts := options{
		cfg:     cfg,
		json:    c.Bool("json"),
		dump:    c.Bool("dump"),
		dryrun:  c.Bool("dryrun"),
		timeout: c.Duration("timeout"),
	}

	if c.Bool("watch") {
		return processWatch(inputFileName, opts, sugar)
	}

	return convert(inputFileName, opts, sugar)
}

func main() {

	app := &cli.App{
		Name:     "mdparser",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "parse a Markdown document with Mermaid diagrams into an AST, JSON and HTML",
		UsageText: "mdparser [options] [INPUT_FILE] (default input file is index.md)",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read configuration from `FILE` (default is " + config.DefaultFile + " if present)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the artifacts into `DIR`",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "print the AST as JSON to stdout",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "print the AST in text form to stdout",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not write output files, just parse the input file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:  "mermaid-cli",
				Usage: "validate Mermaid diagrams with the mmdc executable",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "abort the conversion after `DURATION` (0 means no limit)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
