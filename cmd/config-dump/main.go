// config-dump reads a config file, optionally validated against a
// definitions file, and prints every section, keyword and value.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	config "github.com/rjwhite/go-config"
)

func main() {
	app := &cli.App{
		Name:    "config-dump",
		Usage:   "print the typed contents of a config file",
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "config file to read",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "defs",
				Aliases: []string{"f"},
				Usage:   "definitions file to validate against",
			},
			&cli.BoolFlag{
				Name:    "accept-undefined",
				Aliases: []string{"a"},
				Usage:   "accept keywords missing from the definitions file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "print parser debug output",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.NewLoader().
		WithDefinitions(c.String("defs")).
		WithAcceptUndefinedKeywords(c.Bool("accept-undefined")).
		Load(c.String("config"))
	if err != nil {
		return err
	}

	for _, section := range cfg.Sections() {
		fmt.Printf("%s:\n", section)
		keywords, err := cfg.Keywords(section)
		if err != nil {
			return err
		}
		for _, keyword := range keywords {
			typ, err := cfg.Type(section, keyword)
			if err != nil {
				return err
			}
			values, err := cfg.Values(section, keyword)
			if err != nil {
				return err
			}
			fmt.Printf("\t%s (%s):\n", keyword, typ)
			switch typ {
			case config.TypeScalar:
				fmt.Printf("\t\t%q\n", values.Scalar())
			case config.TypeArray:
				for _, v := range values.Array() {
					fmt.Printf("\t\t%q\n", v)
				}
			case config.TypeHash:
				h := values.Hash()
				for _, k := range h.Keys() {
					v, _ := h.Get(k)
					fmt.Printf("\t\t%s = %q\n", k, v)
				}
			}
		}
		fmt.Println()
	}
	return nil
}
