package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ironsheep/spritepack/internal/config"
	"github.com/ironsheep/spritepack/internal/discover"
	"github.com/ironsheep/spritepack/internal/sheet"
	"github.com/ironsheep/spritepack/internal/unpack"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// defaultPrefix names the sheets of an input that has no usable base name.
const defaultPrefix = "outfile"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("spritepack %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Configure logging to stderr (stdout carries inspect output)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	sheet.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("SPRITEPACK_LOG_LEVEL")),
	})))

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "unpack":
			runUnpack(os.Args[2:])
			return
		case "inspect":
			runInspect(os.Args[2:])
			return
		}
	}

	runPack()
}

func printUsage() {
	fmt.Println("spritepack - pack PNG sprites into texture atlases")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  spritepack [options] <output_dir> <input_dir> [input_dir ...]")
	fmt.Println("  spritepack unpack <atlas.png> <output_dir>")
	fmt.Println("  spritepack inspect <atlas.png>")
	fmt.Println()
	fmt.Println("Each input directory is searched for PNG files and packed into")
	fmt.Println("<name>0.png, <name>1.png, ... in the output directory, where <name> is")
	fmt.Println("the last path element of the input. The input \"./\" is named \"outfile\".")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config FILE     JSON configuration file")
	fmt.Println("  -border N        Transparent padding around each sprite (default 4)")
	fmt.Println("  -max-size N      Maximum sheet width and height (default 1024)")
	fmt.Println("  -depth N         Directory levels to search (default 10)")
	fmt.Println("  -workers N       Concurrent layout trials (default: one per CPU)")
	fmt.Println("  -scan-limit N    Maximum widths tried per sheet (default: all)")
	fmt.Println("  -overlay         Also write <name>N.overlay.png layout views")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SPRITEPACK_LOG_LEVEL=debug|info|warn|error    Log verbosity (default info)")
}

// parseLevel maps a log level name to its slog level. Unknown names mean info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// outputPrefix derives the sheet name prefix for an input directory.
func outputPrefix(input string) string {
	if input == "./" {
		return defaultPrefix
	}
	trimmed := strings.TrimRight(input, `/`+string(filepath.Separator))
	if trimmed == "" {
		return defaultPrefix
	}
	base := filepath.Base(trimmed)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return defaultPrefix
	}
	return base
}

// loadConfig reads the configuration file named by path, falling back to the
// per-user default location and then to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	c, err := config.LoadFromFile(config.GetConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return c, err
}

func runPack() {
	var (
		configPath string
		border     int
		maxSize    int
		depth      int
		workers    int
		scanLimit  int
		overlay    bool
	)
	flag.StringVar(&configPath, "config", "", "JSON configuration file")
	flag.IntVar(&border, "border", sheet.DefaultBorder, "transparent padding around each sprite")
	flag.IntVar(&maxSize, "max-size", sheet.DefaultMaxSize, "maximum sheet width and height")
	flag.IntVar(&depth, "depth", discover.DefaultMaxDepth, "directory levels to search")
	flag.IntVar(&workers, "workers", 0, "concurrent layout trials, 0 = one per CPU")
	flag.IntVar(&scanLimit, "scan-limit", 0, "maximum widths tried per sheet, 0 = all")
	flag.BoolVar(&overlay, "overlay", false, "also write layout overlay images")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "border":
			cfg.Pack.Border = border
		case "max-size":
			cfg.Pack.MaxSize = maxSize
		case "depth":
			cfg.Discover.MaxDepth = depth
		case "workers":
			cfg.Pack.Workers = workers
		case "scan-limit":
			cfg.Pack.ScanLimit = scanLimit
		case "overlay":
			cfg.Output.Overlay = overlay
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outDir := args[0]
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	builder := sheet.NewBuilder(cfg.Options())
	for _, input := range args[1:] {
		files, err := discover.Walk(input, cfg.Discover.MaxDepth)
		if err != nil {
			log.Fatalf("Failed to scan %s: %v", input, err)
		}
		if len(files) == 0 {
			sheet.Logger().Warn("no PNG files found", "input", input)
			continue
		}

		report, err := builder.Build(ctx, outDir, outputPrefix(input), files)
		if err != nil {
			log.Fatalf("Failed to pack %s: %v", input, err)
		}
		sheet.Logger().Info("packed input", "input", input, "sheets", len(report.Written),
			"sprites", report.Sprites, "skipped", len(report.Skipped), "failed", len(report.Failed))
	}
}

func runUnpack(args []string) {
	if len(args) != 2 {
		printUsage()
		os.Exit(2)
	}
	written, err := unpack.Extract(args[0], args[1])
	if err != nil {
		log.Fatalf("Unpack error: %v", err)
	}
	sheet.Logger().Info("unpacked atlas", "atlas", args[0], "sprites", len(written))
}

func runInspect(args []string) {
	if len(args) != 1 {
		printUsage()
		os.Exit(2)
	}
	s, err := unpack.Inspect(args[0])
	if err != nil {
		log.Fatalf("Inspect error: %v", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Fatalf("Inspect error: %v", err)
	}
	fmt.Println(string(data))
}
