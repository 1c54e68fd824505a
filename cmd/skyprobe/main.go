// Package main renders the sky and water models into a PNG without a GPU.
//
// Usage:
//
//	skyprobe [-config file] [-width 640] [-height 360] [-normals img] [-time 0] [-o out.png]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/assets"
	"github.com/Faultbox/tidemirror/internal/config"
	"github.com/Faultbox/tidemirror/internal/engine/debug"
	"github.com/Faultbox/tidemirror/internal/engine/probe"
	"github.com/Faultbox/tidemirror/internal/engine/texture"
	"github.com/Faultbox/tidemirror/internal/engine/water"
	"github.com/Faultbox/tidemirror/internal/logger"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	out := flag.String("o", "skyprobe.png", "Output PNG path")
	waterTime := flag.Float64("time", 0, "Water clock in seconds")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *out, float32(*waterTime)); err != nil {
		logger.Error("probe failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, out string, waterTime float32) error {
	log := logger.Named("skyprobe")

	m := assets.NewManager()
	defer m.Close()

	s, err := buildScene(cfg, m, waterTime)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := probe.Render(s, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return err
	}
	log.Info("rendered",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("reflection", res.Mirror.Visible),
		zap.Int("water_pixels", res.WaterPixels),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := debug.WritePNG(out, res.Image); err != nil {
		return err
	}
	log.Info("saved", zap.String("path", out))
	return nil
}

func buildScene(cfg *config.Config, m *assets.Manager, waterTime float32) (probe.Scene, error) {
	opts := cfg.Water.Options()
	var normals water.Sampler
	if path := cfg.Water.NormalMap; path != "" {
		s, err := texture.LoadNormalMapFile(m, path)
		if err != nil {
			return probe.Scene{}, err
		}
		normals = s
	} else {
		normals = water.ProceduralNormals()
	}

	plane, err := water.PlaneFromTransform(water.HorizontalTransform(cfg.Water.Level))
	if err != nil {
		return probe.Scene{}, err
	}

	sun := cfg.Sky.Sun(cfg.Water.SunColor)
	aspect := float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)
	pose := cfg.Camera.Pose(aspect)

	return probe.Scene{
		Camera: pose,
		Sky:    cfg.Sky.Model().Atmosphere(sun.Position),
		Plane:  plane,
		Water: water.Uniforms{
			Time:            waterTime,
			Alpha:           opts.Alpha,
			Size:            opts.Size,
			DistortionScale: opts.DistortionScale,
			SunColor:        opts.SunColor,
			SunDirection:    sun.Direction,
			WaterColor:      opts.WaterColor,
		},
		Normals:          normals,
		ClipBias:         opts.ClipBias,
		ReflectionWidth:  int(opts.TextureWidth),
		ReflectionHeight: int(opts.TextureHeight),
	}, nil
}
