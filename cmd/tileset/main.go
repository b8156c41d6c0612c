package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/tileset"
	"github.com/bodgit/tileset/manifest"
	"github.com/urfave/cli/v2"
)

const defaultIndex = "tileset.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadManifest(file string) (*manifest.Manifest, error) {
	if file == "" {
		return manifest.Default(), nil
	}
	return manifest.LoadFile(file)
}

func pack(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	m, err := loadManifest(c.String("manifest"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p := tileset.New(c.Args().First(), logger, tileset.Options{
		TileSize:             c.Int("tile-size"),
		Policy:               manifest.Policy(c.String("policy")),
		Columns:              c.Int("columns"),
		Rows:                 c.Int("rows"),
		Colors:               c.Int("colors"),
		KeepTransparentColor: c.Bool("keep-transparent-color"),
	})

	ts, err := p.Pack(m)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := ts.Save(c.String("output")); err != nil {
		return cli.NewExitError(err, 1)
	}
	logger.Printf("Wrote \"%s\"\n", c.String("output"))

	if file := c.String("index"); file != "" {
		idx, err := tileset.OpenIndex(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer idx.Close()

		if err := idx.Replace(ts.Placements); err != nil {
			return cli.NewExitError(err, 1)
		}
		logger.Printf("Indexed %d images in \"%s\"\n", len(ts.Placements), file)
	}

	return nil
}

func dumpManifest(c *cli.Context) error {
	m, err := loadManifest(c.String("manifest"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	b, err := m.Marshal()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if _, err := c.App.Writer.Write(b); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func lookup(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	// Opening would otherwise create an empty index
	if _, err := os.Stat(c.String("index")); err != nil {
		return cli.NewExitError(err, 1)
	}

	idx, err := tileset.OpenIndex(c.String("index"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer idx.Close()

	for _, path := range c.Args().Slice() {
		p, err := idx.Find(path)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if p == nil {
			return cli.NewExitError(fmt.Sprintf("no image \"%s\" in index", path), 1)
		}
		fmt.Fprintf(c.App.Writer, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n", p.Path, p.Row, p.Col, p.Rect.Min.X, p.Rect.Min.Y, p.Rect.Dx(), p.Rect.Dy(), p.SHA1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "tileset"
	app.Usage = "Sprite tileset packing utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	manifestFlag := &cli.StringFlag{
		Name:    "manifest",
		Aliases: []string{"m"},
		EnvVars: []string{"TILESET_MANIFEST"},
		Usage:   "path to YAML manifest, the built-in manifest is used if unset",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "pack",
			Usage:       "Pack sprite images into a tileset",
			Description: "Images listed in the manifest are read relative to DIRECTORY.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				manifestFlag,
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					EnvVars: []string{"TILESET_OUTPUT"},
					Value:   tileset.Filename,
					Usage:   "path to write the tileset to",
				},
				&cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile size in pixels, overrides the manifest",
				},
				&cli.IntFlag{
					Name:  "columns",
					Usage: "canvas width in tiles, overrides the manifest",
				},
				&cli.IntFlag{
					Name:  "rows",
					Usage: "canvas height in tiles, overrides the manifest",
				},
				&cli.StringFlag{
					Name:  "policy",
					Usage: "row placement policy, \"fixed\" or \"variable\", overrides the manifest",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "write an indexed PNG with at most this many colors",
				},
				&cli.BoolFlag{
					Name:  "keep-transparent-color",
					Usage: "keep the color of fully transparent pixels",
				},
				&cli.StringFlag{
					Name:  "index",
					Usage: "path to write a placement index to",
				},
			},
			Action: pack,
		},
		{
			Name:      "manifest",
			Usage:     "Print a manifest as YAML",
			ArgsUsage: " ",
			Flags:     []cli.Flag{manifestFlag},
			Action:    dumpManifest,
		},
		{
			Name:      "lookup",
			Usage:     "Print where images were placed",
			ArgsUsage: "PATH...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "index",
					Value: defaultIndex,
					Usage: "path to placement index",
				},
			},
			Action: lookup,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
