// Package main provides the showreel entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/assets"
	"github.com/osa030/showreel/internal/app/framing"
	"github.com/osa030/showreel/internal/infra/config"
	"github.com/osa030/showreel/internal/infra/logger"
)

var (
	app        = kingpin.New("showreel", "Timed photo and video showreel for the terminal")
	configPath = app.Flag("config", "Path to config file, e.g. config/showreel.yaml (default: built-in settings)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file").String()

	// list-assets command
	listAssetsCmd = app.Command("list-assets", "List the resolved playlists and exit")

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available filters and exit")

	// frame command
	frameCmd    = app.Command("frame", "Print the frame computed for a media size and viewport")
	frameWidth  = frameCmd.Arg("width", "Media width").Required().Float64()
	frameHeight = frameCmd.Arg("height", "Media height").Required().Float64()
	frameVW     = frameCmd.Arg("viewport-width", "Viewport width").Default("1280").Float64()
	frameVH     = frameCmd.Arg("viewport-height", "Viewport height").Default("800").Float64()
)

func init() {
	// play command (default) - no need to store the command
	app.Command("play", "Play the show (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-filters command
	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Handle the commands that do not need the terminal
	switch command {
	case frameCmd.FullCommand():
		printFrame(cfg.Frame)
		return
	case listAssetsCmd.FullCommand():
		if err := printAssets(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list assets: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	}
	// Override with command-line flags if specified
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = "file"
		loggerConfig.File = *logfile
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer closer.Close()

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Showreel error: %v", err)
		closer.Close()
		os.Exit(1)
	}
}

// run plays the show until it is quit. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := buildShow(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Run(ctx)
}

// printFilters prints available filters.
func printFilters() {
	fmt.Println("Available Filters:")
	registered := assets.GetRegistered()
	for _, name := range assets.RegisteredNames() {
		f := registered[name]()
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

// printFrame prints the frame box for the requested sizes.
func printFrame(layout framing.Layout) {
	media := framing.Size{Width: *frameWidth, Height: *frameHeight}
	viewport := framing.Size{Width: *frameVW, Height: *frameVH}
	box := layout.Compute(media, viewport)
	fmt.Printf("width=%.1f aspect=%g/%g ratio=%.4f orientation=%s\n",
		box.Width, box.AspectWidth, box.AspectHeight, box.Ratio, box.Orientation)
}

// printAssets prints the playlists the show would play.
func printAssets(cfg *config.Config) error {
	catalog, err := assets.NewCatalogFromConfig(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pl, err := catalog.Build(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Root: %s\n", cfg.Assets.Root)
	fmt.Printf("Music: %s\n", catalog.Music().Location())
	fmt.Printf("Photos (%d):\n", len(pl.Photos))
	for i, a := range pl.Photos {
		fmt.Printf("  %3d  %s\n", i+1, a.Ref)
	}
	fmt.Printf("Videos (%d):\n", len(pl.Videos))
	for i, a := range pl.Videos {
		fmt.Printf("  %3d  %s\n", i+1, a.Ref)
	}
	final := pl.Final.Ref
	if final == "" {
		final = "(none)"
	}
	fmt.Printf("Final video: %s\n", final)

	var filters []string
	for name, f := range cfg.Filters {
		if f.Enabled {
			filters = append(filters, name)
		}
	}
	slices.Sort(filters)
	fmt.Printf("Filters: %s\n", strings.Join(filters, ", "))
	return nil
}
