// Command lsysgen reads L-system definition documents from stdin, expands
// each one to its step budget and writes the result to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonsprout/internal/gamedata"
	"github.com/samdwyer/dungeonsprout/internal/logger"
	"github.com/samdwyer/dungeonsprout/internal/turtle"
)

type options struct {
	tiles   bool
	x, y    int
	heading turtle.Angle
}

func main() {
	var opts options
	var heading string
	flag.BoolVar(&opts.tiles, "tiles", false, "Also print the interpreted tiles of each definition")
	flag.IntVar(&opts.x, "x", 0, "Turtle start column")
	flag.IntVar(&opts.y, "y", 0, "Turtle start row")
	flag.StringVar(&heading, "heading", "up", "Turtle start heading")
	flag.Parse()

	logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT"), Output: os.Stderr})

	var err error
	opts.heading, err = turtle.ParseAngle(heading)
	if err != nil {
		logger.Log.Fatal(err)
	}

	if err := listen(os.Stdout, os.Stdin, opts); err != nil {
		logger.Log.WithError(err).Fatal("generation failed")
	}
}

// listen expands every document read from r, in order, writing to w.
func listen(w io.Writer, r io.Reader, opts options) (err error) {
	out := bufio.NewWriter(w)
	defer func() {
		if ferr := out.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "flushing output")
		}
	}()

	dec := gamedata.NewDecoder(r)
	for seq := 0; ; seq++ {
		p, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "document %d", seq)
		}

		if err := generate(out, p, opts); err != nil {
			return errors.Wrapf(err, "document %d", seq)
		}
		logger.Log.WithFields(logrus.Fields{"seq": seq, "id": p.ID}).Info("sequence written")
	}
}

func generate(w io.Writer, p *gamedata.PresetDef, opts options) error {
	e, err := p.Engine()
	if err != nil {
		return err
	}
	e.Run()
	symbols, steps := e.State()

	if _, err := fmt.Fprintf(w, "%s %d %s\n", p.ID, steps, symbols); err != nil {
		return err
	}
	if !opts.tiles {
		return nil
	}

	tiles, err := turtle.FromDefinition(e.Definition()).Interpret(symbols, opts.x, opts.y, opts.heading)
	if err != nil {
		return err
	}
	for _, t := range tiles {
		if _, err := fmt.Fprintf(w, "\t%d %d %s\n", t.X, t.Y, t.Heading); err != nil {
			return err
		}
	}
	if r, ok := turtle.Bounds(tiles); ok {
		logger.Log.WithFields(logrus.Fields{
			"id":     p.ID,
			"width":  r.Width(),
			"height": r.Height(),
		}).Debug("tile extents")
	}
	return nil
}
