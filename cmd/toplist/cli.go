package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/toplist"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	ChartURL  string
	Snapshots toplist.SnapshotService

	// Loader fetches and extracts the chart without storing it.
	Loader toplist.ChartLoader

	// LockPath guards forced refreshes across processes. Empty disables it.
	LockPath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string        `help:"Database path" env:"TOPLIST_DB" placeholder:"PATH"`
	ChartURL string        `name:"chart-url" help:"Chart page to load" env:"TOPLIST_CHART_URL" default:"https://www.imdb.com/chart/top/"`
	Timeout  time.Duration `help:"Fetch timeout" default:"15s"`
	Browser  bool          `help:"Render the chart page in headless Chrome"`
	Verbose  bool          `short:"v" help:"Log to stderr"`

	Serve   ServeCmd   `cmd:"" help:"Run the Stremio addon server"`
	List    ListCmd    `cmd:"" help:"Print the chart catalog"`
	Refresh RefreshCmd `cmd:"" help:"Fetch and store a fresh chart snapshot"`
	History HistoryCmd `cmd:"" help:"List stored chart snapshots"`
	Export  ExportCmd  `cmd:"" help:"Write the addon as static files"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr       string        `help:"Listen address" default:":7000" env:"TOPLIST_ADDR"`
	Port       string        `help:"Listen port, overrides the port in --addr" env:"PORT"`
	AddonID    string        `name:"addon-id" help:"Addon ID in the manifest" default:"community.toplist" env:"TOPLIST_ADDON_ID"`
	OMDbAPIKey string        `name:"omdb-api-key" help:"OMDb key for poster URLs" env:"OMDB_API_KEY"`
	MaxAge     time.Duration `name:"max-age" help:"Serve a stored snapshot while younger than this" default:"6h"`
	Refresh    time.Duration `help:"Refresh the chart in the background on this interval (0 disables)" default:"0s"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	OMDbAPIKey string        `name:"omdb-api-key" help:"OMDb key for poster URLs" env:"OMDB_API_KEY"`
	MaxAge     time.Duration `name:"max-age" help:"Use a stored snapshot while younger than this" default:"6h"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	Keep int `help:"Snapshots to keep for the chart URL (0 keeps all)" default:"10"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum snapshots to show" default:"20"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir        string        `arg:"" help:"Output directory" type:"path"`
	AddonID    string        `name:"addon-id" help:"Addon ID in the manifest" default:"community.toplist" env:"TOPLIST_ADDON_ID"`
	OMDbAPIKey string        `name:"omdb-api-key" help:"OMDb key for poster URLs" env:"OMDB_API_KEY"`
	MaxAge     time.Duration `name:"max-age" help:"Use a stored snapshot while younger than this" default:"6h"`
}
