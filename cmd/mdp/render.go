package main

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/connctd/presenter"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var (
	outputDir  string
	outFile    string
	background string
)

var renderCommand = cli.Command{
	Name:      "render",
	Aliases:   []string{"build", "r", "b"},
	Usage:     "Render markdown files into HTML decks",
	ArgsUsage: "<input.md>...",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "Write decks into `DIR`",
			Value:       ".",
			Destination: &outputDir,
		},
		cli.StringFlag{
			Name:        "out",
			Usage:       "Write a single deck to `FILE`",
			Destination: &outFile,
		},
		cli.StringFlag{
			Name:        "background",
			Usage:       "Paint `IMAGE` behind every slide",
			Destination: &background,
		},
	},
	Action: func(ctx *cli.Context) error {
		inputs := ctx.Args()
		if len(inputs) == 0 {
			return errors.New("no input files given")
		}
		if outFile != "" && len(inputs) > 1 {
			return errors.New("--out only works with a single input file")
		}

		defaults := config.Defaults()
		if background != "" {
			defaults.Background = background
		}

		emitted := map[string]bool{}
		for _, in := range inputs {
			dest := outFile
			if dest == "" {
				name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".html"
				dest = filepath.Join(outputDir, name)
			}
			if err := renderFile(in, dest, defaults); err != nil {
				return err
			}

			dir := filepath.Dir(dest)
			if !emitted[dir] {
				if err := presenter.EmitAssets(dir); err != nil {
					return err
				}
				emitted[dir] = true
			}
		}
		return nil
	},
}

func renderFile(in, dest string, defaults presenter.Presentation) error {
	pres, err := presenter.ParseFile(in, defaults)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0777); err != nil {
		return err
	}
	refDir, err := filepath.Abs(filepath.Dir(dest))
	if err != nil {
		return err
	}

	opts := config.HTMLOptions()
	opts.RefDir = refDir
	out, err := presenter.RenderHTML(pres, opts)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(dest, out, 0644); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"input": in, "output": dest, "slides": len(pres.Slides)}).Info("rendered presentation")
	return nil
}
