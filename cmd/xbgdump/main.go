package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/xbgdump/internal/capture"
	"github.com/1broseidon/xbgdump/internal/config"
	"github.com/1broseidon/xbgdump/internal/encode"
	"github.com/1broseidon/xbgdump/internal/raster"
	"github.com/1broseidon/xbgdump/internal/x11"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "mcp":
			os.Exit(runMCP(os.Args[2:]))
		case "help", "-h", "--help":
			printUsage(os.Stdout)
			os.Exit(0)
		}
	}
	os.Exit(runCapture(os.Args[1:]))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xbgdump [options] [<outfile>|-]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "xbgdump saves the current X11 background to the specified file")
	fmt.Fprintln(w, "(or stdout for -). The default output file is bg.png.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config PATH            Config file (default: ~/.config/xbgdump/config.yaml)")
	fmt.Fprintln(w, "  -format png|ppm         Output format (default: from filename, else png)")
	fmt.Fprintln(w, "  -no-mask                Skip multi-monitor masking")
	fmt.Fprintln(w, "  -ignore-layout-errors   Write the unmasked image when the monitor")
	fmt.Fprintln(w, "                          layout cannot be resolved")
	fmt.Fprintln(w, "  -max-width N            Downscale output to at most N pixels wide")
	fmt.Fprintln(w, "  -verbose                Enable debug logging")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  mcp serve               Start the MCP server (stdio transport)")
}

func runCapture(args []string) int {
	fs := flag.NewFlagSet("xbgdump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(os.Stderr) }

	configPath := fs.String("config", "", "config file path")
	formatFlag := fs.String("format", "", "output format: png or ppm")
	noMask := fs.Bool("no-mask", false, "skip multi-monitor masking")
	ignoreLayout := fs.Bool("ignore-layout-errors", false, "write unmasked image when the layout is unavailable")
	maxWidth := fs.Int("max-width", 0, "downscale output to at most this many pixels wide")
	verbose := fs.Bool("verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "xbgdump takes at most one output argument")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *noMask {
		cfg.Mask = false
	}
	if *ignoreLayout {
		cfg.IgnoreLayoutErrors = true
	}
	if *maxWidth > 0 {
		cfg.MaxWidth = *maxWidth
	}
	if *formatFlag != "" {
		cfg.Format = *formatFlag
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	setupLogging(cfg.LogLevel)

	outPath := cfg.Output
	if fs.NArg() == 1 {
		outPath = fs.Arg(0)
	}

	format := encode.FormatForPath(outPath)
	if cfg.Format != "" {
		format, err = encode.ParseFormat(cfg.Format)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	img, err := dump(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xbgdump: %v\n", err)
		return 1
	}
	slog.Debug("captured background", "width", img.Width, "height", img.Height, "alpha", img.HasAlpha)

	out, closeOut, err := openOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xbgdump: %v\n", err)
		return 1
	}

	encErr := encode.Encode(out, img, encode.Options{Format: format, MaxWidth: cfg.MaxWidth})
	if err := closeOut(); encErr == nil {
		encErr = err
	}
	if encErr != nil {
		fmt.Fprintf(os.Stderr, "xbgdump: failed to write image: %v\n", encErr)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// dump runs one capture attempt against a fresh X11 connection.
func dump(cfg *config.Config) (*raster.Raster, error) {
	conn, err := x11.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()

	return capture.Capture(capture.NewX11Source(conn, cfg.Property), capture.Options{
		Mask:                   cfg.Mask,
		KeepGoingWithoutLayout: cfg.IgnoreLayoutErrors,
	})
}

// openOutput returns the destination writer and a close func. Writing image
// bytes to an interactive terminal is refused.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, fmt.Errorf("refusing to write image data to a terminal; redirect stdout or name a file")
		}
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
