package main

import (
	"log"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"tembedsnap/pkg/snapshot"
)

var input = flag.String("input", "snap.raw", "raw RGB565 dump")
var output = flag.String("output", "", "png file (default: input with .png extension)")
var width = flag.Int("width", snapshot.Default.Width, "dump width in pixels")
var height = flag.Int("height", snapshot.Default.Height, "dump height in pixels")
var hex = flag.Bool("hex", false, "input is the text printed by the snap console command")
var debug = flag.Bool("debug", false, "set debug")

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	format := snapshot.FormatRaw
	if *hex {
		format = snapshot.FormatHex
	}

	conv := snapshot.NewConverter(
		afero.NewOsFs(),
		logger,
		snapshot.WithGeometry(snapshot.Geometry{Width: *width, Height: *height}),
		snapshot.WithFormat(format),
	)

	ret, err := conv.Convert(*input, *output)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("convert failed")
	}

	logger.With(
		zap.String("input", ret.Input),
		zap.String("output", ret.Output),
		zap.Int("pixels", ret.Pixels),
	).Info("converted")
}
