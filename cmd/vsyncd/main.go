// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vsyncd paces rendering engines to the vertical sync
// of the host display.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cogentcore.org/vsync/base/logx"
	"cogentcore.org/vsync/cmd"
	"cogentcore.org/vsync/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		cfg        *config.Config
	)
	root := &cobra.Command{
		Use:           "vsyncd",
		Short:         "vsyncd paces rendering engines to display vsync",
		SilenceUsage:  true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Open(configFile)
			if err != nil {
				return err
			}
			applyFlags(c, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logx.UserLevel, err = logx.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logx.SetDefaultLogger()
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file (default "+config.DefaultFile+")")
	pf.StringP("driver", "d", "", "host driver: offscreen, desktop, or file")
	pf.Float32("fps", 0, "explicit refresh rate; 0 measures the primary display")
	pf.String("display-file", "", "display file for the file driver")
	pf.String("log-level", "", "log level: debug, info, warn, or error")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "serve vsync to remote engines over WebSocket",
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt)
			defer stop()
			return cmd.Serve(ctx, cfg)
		},
	}
	serve.Flags().StringP("listen", "l", "", "address to listen on")

	probe := &cobra.Command{
		Use:   "probe",
		Short: "print the refresh rate and period of the primary display",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Probe(c.OutOrStdout(), cfg)
		},
	}

	var frames int
	pace := &cobra.Command{
		Use:   "pace",
		Short: "request vsyncs back to back and report delivery delays",
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt)
			defer stop()
			st, err := cmd.Pace(ctx, cfg, frames)
			fmt.Fprintln(c.OutOrStdout(), st)
			return err
		},
	}
	pace.Flags().IntVarP(&frames, "frames", "n", 120, "number of vsyncs to request")

	root.AddCommand(serve, probe, pace)
	root.SetContext(context.Background())
	return root
}

// applyFlags overrides config values with flags that were set.
func applyFlags(c *cobra.Command, cfg *config.Config) {
	fs := c.Flags()
	if fs.Changed("driver") {
		cfg.Driver, _ = fs.GetString("driver")
	}
	if fs.Changed("fps") {
		cfg.FPS, _ = fs.GetFloat32("fps")
	}
	if fs.Changed("display-file") {
		cfg.DisplayFile, _ = fs.GetString("display-file")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Lookup("listen") != nil && fs.Changed("listen") {
		cfg.Listen, _ = fs.GetString("listen")
	}
}
