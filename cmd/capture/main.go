package main

import (
	"context"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tembedsnap/pkg/device/tembed"
	"tembedsnap/pkg/device/virtual"
	"tembedsnap/pkg/proto"
	"tembedsnap/pkg/snapshot"
)

var serial = flag.String("serial", "ttyACM0", "serial name")
var baud = flag.Int("baud", 115200, "serial baud rate")
var rawPath = flag.String("raw", "snap.raw", "where to keep the raw dump")
var output = flag.String("output", "", "png file (default: raw with .png extension)")
var timeout = flag.Duration("timeout", 30*time.Second, "capture timeout")
var mock = flag.Bool("virtual", false, "capture from a virtual device")
var debug = flag.Bool("debug", false, "set debug")

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newPort(logger *zap.Logger, lifecycle fx.Lifecycle) (proto.Port, error) {
	var port proto.Port

	if *mock {
		port = virtual.Mock(testPattern(snapshot.Default), logger)
	} else {
		s := proto.NewSerial(*serial)
		if err := s.Open(&proto.Options{
			DTR:         true,
			RTS:         true,
			BaudRate:    *baud,
			ReadTimeout: 100 * time.Millisecond,
		}); err != nil {
			return nil, err
		}
		port = s
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return port.Close()
		},
	})

	return port, nil
}

func newDevice(port proto.Port, logger *zap.Logger) proto.Capturer {
	return tembed.New(port, logger, tembed.WithProgress(os.Stderr))
}

func newConverter(fs afero.Fs, logger *zap.Logger) *snapshot.Converter {
	return snapshot.NewConverter(fs, logger)
}

// testPattern is what the virtual device shows: colour bars over a gradient.
func testPattern(geo snapshot.Geometry) image.Image {
	w, h := geo.Height, geo.Width
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	bars := []color.NRGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 255, A: 255},
		{G: 255, B: 255, A: 255},
		{G: 255, A: 255},
		{R: 255, B: 255, A: 255},
		{R: 255, A: 255},
		{B: 255, A: 255},
		{A: 255},
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < h/2 {
				img.SetNRGBA(x, y, bars[x*len(bars)/w])
			} else {
				v := uint8(x * 255 / (w - 1))
				img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
			}
		}
	}
	return img
}

func capture(
	dev proto.Capturer,
	conv *snapshot.Converter,
	fs afero.Fs,
	logger *zap.Logger,
	lifecycle fx.Lifecycle,
	shutdowner fx.Shutdowner,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, *timeout)
			defer cancel()

			raw, err := dev.Snapshot(ctx, conv.Geometry())
			if err != nil {
				return errors.Wrap(err, "capture failed")
			}

			if err := snapshot.WriteRaw(fs, *rawPath, raw); err != nil {
				return err
			}
			logger.With(zap.String("raw", *rawPath)).Info("dump saved")

			img, err := conv.Render(raw)
			if err != nil {
				return err
			}

			out := *output
			if out == "" {
				out = snapshot.OutputPath(*rawPath)
			}
			if err := conv.Save(out, img); err != nil {
				return err
			}

			return shutdowner.Shutdown()
		},
	})
}

func main() {
	flag.Parse()

	fx.New(
		fx.StartTimeout(*timeout+10*time.Second),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			newLogger,
			afero.NewOsFs,
			newPort,
			newDevice,
			newConverter,
		),
		fx.Invoke(
			capture,
		),
	).Run()
}
