package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/coreman2200/ledstrip/internal/config"
	"github.com/coreman2200/ledstrip/internal/driver/fake"
	"github.com/coreman2200/ledstrip/led"
	"github.com/coreman2200/ledstrip/model"
	"github.com/coreman2200/ledstrip/strip"
)

const defaultConfig = "ledstrip.yaml"

func main() {
	app := cli.NewApp()

	app.Name = "ledstrip"
	app.Usage = "drive several LED strips as one pixel array"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"LEDSTRIP_CONFIG"},
			Value:   defaultConfig,
			Usage:   "path to config file",
		},
		&cli.StringFlag{
			Name:    "driver",
			EnvVars: []string{"LEDSTRIP_DRIVER"},
			Usage:   "override driver: nrz | console | fake",
		},
		&cli.IntFlag{
			Name:  "length",
			Usage: "active pixels per strip, applied after binding",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Before = func(c *cli.Context) error {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if c.Bool("verbose") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:  "info",
			Usage: "print the strip layout",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "resolve", Value: -1, Usage: "also print channel and offset of this index"},
			},
			Action: func(c *cli.Context) error {
				buf, _, err := newBuffer(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if c.IsSet("length") {
					if err := buf.SetLength(c.Int("length")); err != nil {
						return cli.NewExitError(err, 1)
					}
				}
				fmt.Printf("channels:   %d\n", buf.Channels())
				fmt.Printf("capacity:   %d\n", buf.Capacity())
				fmt.Printf("length:     %d\n", buf.Length())
				fmt.Printf("pixels:     %d\n", buf.NumPixels())
				fmt.Printf("order:      %s\n", buf.Order())
				if i := c.Int("resolve"); i >= 0 {
					if i >= buf.NumPixels() {
						return cli.NewExitError(fmt.Errorf("%w: %d", strip.ErrOutOfRange, i), 1)
					}
					ch, off := buf.Resolve(i)
					fmt.Printf("index %d -> channel %d offset %d\n", i, ch, off)
				}
				return nil
			},
		},
		{
			Name:      "set",
			Usage:     "set one pixel and show",
			ArgsUsage: "INDEX RRGGBB",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				i, err := strconv.Atoi(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(fmt.Errorf("invalid index: %w", err), 1)
				}
				col, err := model.ParseHex(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				return run(c, func(buf *strip.Buffer) error {
					return buf.SetPixelChecked(i, col)
				})
			},
		},
		{
			Name:      "fill",
			Usage:     "set every active pixel and show",
			ArgsUsage: "RRGGBB",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				col, err := model.ParseHex(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				return run(c, func(buf *strip.Buffer) error {
					buf.Fill(col)
					return nil
				})
			},
		},
		{
			Name:  "clear",
			Usage: "turn every active pixel off",
			Action: func(c *cli.Context) error {
				return run(c, func(buf *strip.Buffer) error {
					buf.Fill(model.Black)
					return nil
				})
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("ledstrip failed")
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) && !c.IsSet("config") {
		log.Warn().Str("path", path).Msg("no config file; using the default board")
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if d := c.String("driver"); d != "" {
		cfg.Driver = d
	}
	return cfg, nil
}

func newBuffer(c *cli.Context) (*strip.Buffer, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	sc, err := cfg.StripConfig()
	if err != nil {
		return nil, nil, err
	}
	buf, err := strip.New(sc)
	return buf, cfg, err
}

func binder(name string) (led.Binder, error) {
	switch name {
	case "nrz", "":
		return led.NewNRZ()
	case "console":
		return led.NewConsole(), nil
	case "fake":
		b := fake.NewBinder()
		b.Verbose = true
		return b, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", name)
	}
}

// run binds the strips, lets fn change pixels, then shows once.
func run(c *cli.Context, fn func(*strip.Buffer) error) error {
	buf, cfg, err := newBuffer(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	b, err := binder(cfg.Driver)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := buf.Begin(b); err != nil {
		return cli.NewExitError(err, 1)
	}
	defer buf.Close()

	if c.IsSet("length") {
		if err := buf.SetLength(c.Int("length")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	if err := fn(buf); err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := buf.Show(); err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Info().Str("driver", cfg.Driver).Int("pixels", buf.NumPixels()).Msg("shown")
	return nil
}
