// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/mcdonaldj/zipcmp/internal/compare"
	"github.com/mcdonaldj/zipcmp/internal/config"
	"github.com/mcdonaldj/zipcmp/internal/digest"
	"github.com/mcdonaldj/zipcmp/internal/manifest"
)

// Exit codes follow cmp(1): 0 same, 1 different, 2 trouble.
const (
	ExitIdentical = 0
	ExitDifferent = 1
	ExitError     = 2
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// CompareService provides archive comparison for the CLI.
type CompareService interface {
	Run(pathA, pathB string) (*compare.Report, error)
	List(path string) (*digest.Mapping, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc  ConfigService
	CompareSvc CompareService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	blue   func(a ...interface{}) string
	red    func(a ...interface{}) string
	bold   func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		blue:    color.New(color.FgBlue).SprintFunc(),
		red:     color.New(color.FgRed, color.Bold).SprintFunc(),
		bold:    color.New(color.Bold).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) {},
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		blue:    noColor,
		red:     noColor,
		bold:    noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string            { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) compareSvc(cfg *config.Config, verbose bool) CompareService {
	if c.CompareSvc != nil {
		return c.CompareSvc
	}
	var logger *slog.Logger
	if verbose {
		logger = slog.New(slog.NewTextHandler(c.Err, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return compare.NewDefaultService(cfg, logger)
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		// No command - would launch TUI, but we skip that for CLI testing
		fmt.Fprintln(c.Out, "No command specified. Use 'zipcmp help' for usage.")
		return
	}

	switch c.Args[1] {
	case "compare", "cmp":
		c.RunCompare()
	case "list", "ls":
		c.RunList()
	case "init":
		c.InitConfig()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "zipcmp v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(ExitError)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `zipcmp - ZIP File Checksum Comparator

Usage:
  zipcmp                                   Launch interactive TUI
  zipcmp ui [zip1] [zip2]                  Launch interactive TUI with paths filled in
  zipcmp compare <zip1> <zip2> [--json|--text] [--verbose]
                                           Compare the MD5 of every entry in two archives
  zipcmp list <zip> [--json|--text]        Print the MD5 of every entry in an archive
  zipcmp init                              Create default config file
  zipcmp version, -v                       Show version
  zipcmp help, -h                          Show this help

Flags:
  --json      JSON output
  --text      Text output (overrides format: json in config)
  --verbose   Debug logging on stderr

Exit status (compare): 0 identical, 1 different, 2 error

Config: ~/.zipcmp/config.yaml`)
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	if err := svc.Save(svc.DefaultConfig()); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(ExitError)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// commandArgs holds the positional arguments and flags of a subcommand.
type commandArgs struct {
	paths   []string
	json    bool
	text    bool
	verbose bool
	unknown []string
}

func parseArgs(args []string) commandArgs {
	var ca commandArgs
	for _, arg := range args {
		switch {
		case arg == "--json":
			ca.json = true
		case arg == "--text":
			ca.text = true
		case arg == "--verbose":
			ca.verbose = true
		case strings.HasPrefix(arg, "--"):
			ca.unknown = append(ca.unknown, arg)
		default:
			ca.paths = append(ca.paths, arg)
		}
	}
	return ca
}

// loadConfig loads the config and applies its color setting.
func (c *CLI) loadConfig() (*config.Config, bool) {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(ExitError)
		return nil, false
	}

	switch cfg.Color {
	case config.ColorNever:
		color.NoColor = true
	case config.ColorAlways:
		color.NoColor = false
	}
	return cfg, true
}

// wantJSON resolves the output format from flags, falling back to config.
func wantJSON(cfg *config.Config, ca commandArgs) bool {
	if ca.json {
		return true
	}
	if ca.text {
		return false
	}
	return cfg.Format == config.FormatJSON
}

// RunCompare compares two archives and prints the report.
func (c *CLI) RunCompare() {
	ca := parseArgs(c.Args[2:])
	if len(ca.unknown) > 0 || len(ca.paths) > 2 {
		fmt.Fprintln(c.Err, "Usage: zipcmp compare <zip1> <zip2> [--json|--text] [--verbose]")
		c.Exit(ExitError)
		return
	}

	cfg, ok := c.loadConfig()
	if !ok {
		return
	}

	// Missing paths are passed through empty so the service reports them
	paths := append(ca.paths, "", "")
	svc := c.compareSvc(cfg, ca.verbose || cfg.Verbose)

	report, err := svc.Run(paths[0], paths[1])
	if err != nil {
		c.printError(err)
		c.Exit(ExitError)
		return
	}

	if wantJSON(cfg, ca) {
		if err := c.writeJSON(report); err != nil {
			fmt.Fprintf(c.Err, "Error: %v\n", err)
			c.Exit(ExitError)
			return
		}
	} else {
		c.printReport(report)
	}

	if !report.Identical() {
		c.Exit(ExitDifferent)
	}
}

// RunList prints the digest of every entry in one archive.
func (c *CLI) RunList() {
	ca := parseArgs(c.Args[2:])
	if len(ca.paths) != 1 || len(ca.unknown) > 0 {
		fmt.Fprintln(c.Err, "Usage: zipcmp list <zip> [--json|--text]")
		c.Exit(ExitError)
		return
	}

	cfg, ok := c.loadConfig()
	if !ok {
		return
	}

	path := ca.paths[0]
	sums, err := c.compareSvc(cfg, ca.verbose || cfg.Verbose).List(path)
	if err != nil {
		c.printError(err)
		c.Exit(ExitError)
		return
	}

	if wantJSON(cfg, ca) {
		if err := manifest.New(path, sums).Write(c.Out); err != nil {
			fmt.Fprintf(c.Err, "Error: %v\n", err)
			c.Exit(ExitError)
		}
		return
	}

	for _, name := range sums.Names() {
		sum, _ := sums.Lookup(name)
		fmt.Fprintf(c.Out, "%s  %s\n", c.cyan(sum), name)
	}
}

func (c *CLI) printError(err error) {
	if errors.Is(err, compare.ErrMissingInput) {
		fmt.Fprintf(c.Err, "%s %v\n", c.yellow("Warning:"), err)
		fmt.Fprintln(c.Err, "Usage: zipcmp compare <zip1> <zip2>")
		return
	}
	fmt.Fprintf(c.Err, "%s %v\n", c.red("Error:"), err)
}

func (c *CLI) writeJSON(report *compare.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.Out, string(data))
	return err
}

// printReport renders the comparison report as text.
func (c *CLI) printReport(r *compare.Report) {
	fmt.Fprintln(c.Out, c.bold("ZIP File Comparison Report"))
	fmt.Fprintf(c.Out, "File 1: %s\n", c.green(r.ArchiveA))
	fmt.Fprintf(c.Out, "File 2: %s\n", c.green(r.ArchiveB))
	fmt.Fprintln(c.Out)

	switch r.Kind {
	case compare.CountMismatch:
		fmt.Fprintf(c.Out, "%s Different number of files\n", c.red("✗"))
		fmt.Fprintf(c.Out, "%s\n", c.blue(fmt.Sprintf("File 1 contains %d files", r.CountA)))
		fmt.Fprintf(c.Out, "%s\n", c.blue(fmt.Sprintf("File 2 contains %d files", r.CountB)))
	case compare.Identical:
		fmt.Fprintf(c.Out, "%s ZIP files have identical contents!\n", c.green("✓"))
	default:
		fmt.Fprintf(c.Out, "%s Differences found:\n", c.red("✗"))
		for _, f := range r.Findings {
			fmt.Fprintf(c.Out, "  - %s\n", c.blue(f.Message()))
		}
	}
}
