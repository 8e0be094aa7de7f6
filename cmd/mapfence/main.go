// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tkrauss/mapfence/internal/api"
	"github.com/tkrauss/mapfence/internal/backend"
	"github.com/tkrauss/mapfence/internal/config"
	"github.com/tkrauss/mapfence/internal/geoindex"
	"github.com/tkrauss/mapfence/internal/geometry"
	"github.com/tkrauss/mapfence/internal/livestate"
	"github.com/tkrauss/mapfence/internal/logging"
	"github.com/tkrauss/mapfence/internal/supervisor"
)

var rootCmd = &cobra.Command{
	Use:   "mapfence",
	Short: "Geofence drawing and live tracking state core",
	Long: `Mapfence mirrors a tracking backend's devices, positions and
geofences in memory, keeps the mirror current over the backend's push
channel, and exposes the state plus a geofence geometry codec over HTTP.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the synchronizer and the HTTP API",
	RunE:  runServe,
}

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Convert a GeoJSON feature to the backend area format",
	Long: `Reads a GeoJSON feature from the given file (or stdin) and prints
the backend's textual area representation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <area>",
	Short: "Convert a backend area string to a GeoJSON feature",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	socketURL, err := cfg.SocketURL()
	if err != nil {
		return fmt.Errorf("derive socket url: %w", err)
	}

	client := backend.New(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout)
	collections := livestate.NewCollections()
	index := geoindex.New()

	synchronizer := livestate.NewSynchronizer(client, socketURL, cfg.Socket, collections, index)
	server := api.NewServer(cfg.Server, api.NewRouter(api.NewHandler(collections, index, client)))

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSyncService(synchronizer)
	tree.AddAPIService(server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("backend", cfg.Backend.URL).Msg("Starting mapfence")
	err = tree.Serve(ctx)
	synchronizer.Close()
	if err != nil && ctx.Err() == nil {
		return err
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var feature geometry.Feature
	if err := json.Unmarshal(data, &feature); err != nil {
		return fmt.Errorf("parse GeoJSON feature: %w", err)
	}

	area, err := geometry.ToWireFormat(feature)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), area)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	feature, err := geometry.ParseWireFormat(args[0])
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(feature, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
