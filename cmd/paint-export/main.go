// seehuhn.de/go/paint - a raster drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command paint-export renders the scripted scenes and writes the
// resulting canvases as PNG or BMP files.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/bmp"

	"seehuhn.de/go/paint"
	"seehuhn.de/go/paint/scenes"
)

func main() {
	outDir := flag.String("o", ".", "output directory")
	format := flag.String("format", "png", "output format (png or bmp)")
	list := flag.Bool("list", false, "list the available scenes and exit")
	verbose := flag.Bool("v", false, "log drawing operations to stderr")
	flag.Parse()

	if *verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	names := flag.Args()
	if len(names) == 0 || *list {
		for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
			for _, s := range scenes.All[category] {
				if *list {
					fmt.Println(category + "_" + s.Name)
				} else {
					names = append(names, category+"_"+s.Name)
				}
			}
		}
	}
	if *list {
		return
	}

	var encode func(io.Writer, image.Image) error
	switch *format {
	case "png":
		encode = png.Encode
	case "bmp":
		encode = bmp.Encode
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(2)
	}

	for _, name := range names {
		fname := filepath.Join(*outDir, name+"."+*format)
		if err := export(name, fname, encode); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func export(name, fname string, encode func(io.Writer, image.Image) error) (err error) {
	s, ok := scenes.Find(name)
	if !ok {
		return fmt.Errorf("unknown scene %q", name)
	}
	d, err := s.Render()
	if err != nil {
		return err
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encode(f, d.Image())
}
