// Patron is a command-line tool for inspecting and editing a patron file:
// one "<id>-<name>-<address>-<fine>" record per line.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/jpl-au/patron/internal/config"
	"github.com/jpl-au/patron/internal/logging"
)

const version = "1.0.0"

// usage prints command-line help to stderr.
func usage() {
	fmt.Fprintf(os.Stderr, `patron v%s
Patron file tool

Usage:
  patron load    <file> [--json]                               Load and report skipped lines
  patron list    <file> [--json]                               List entries
  patron find    <file> <id> [--json]                          Show one entry
  patron search  <file> <pattern> [--name] [--case]            Search names and addresses
  patron add     <file> <id> <name> <address> <fine>           Add an entry
  patron edit    <file> <id> <new-id> <name> <address> <fine>  Replace an entry
  patron remove  <file> <id>                                   Remove an entry
  patron check   <kind> <value>                                Validate a field value
  patron version                                               Print version
  patron help                                                  Show this help message

Options:
  --config <path>  YAML configuration file
  --force          Save even when the load skipped lines (they are dropped)

Kinds for check: id, fine, quantity, name, address, sku, category,
description, email, phone, password

Environment:
  PATRON_MIN_FINE, PATRON_MAX_FINE, PATRON_HASH, PATRON_HISTORY_DEPTH,
  PATRON_MAX_LINE_SIZE, PATRON_LOG_LEVEL, PATRON_LOG_FORMAT
  A .env file in the working directory is read first if present.
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// A missing .env is normal; only the environment is used then.
	_ = godotenv.Load()

	args, opts := parseFlags(os.Args[2:])

	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	app := &app{cfg: cfg, log: logger, opts: opts, out: os.Stdout}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		usage()
		return
	case "version", "-v", "--version":
		fmt.Println(version)
		return
	case "load":
		err = app.run(args, 1, app.cmdLoad)
	case "list", "ls":
		err = app.run(args, 1, app.cmdList)
	case "find", "get":
		err = app.run(args, 2, app.cmdFind)
	case "search":
		err = app.run(args, 2, app.cmdSearch)
	case "add":
		err = app.run(args, 5, app.cmdAdd)
	case "edit", "update":
		err = app.run(args, 6, app.cmdEdit)
	case "remove", "rm", "delete":
		err = app.run(args, 2, app.cmdRemove)
	case "check":
		err = app.run(args, 2, app.cmdCheck)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error(cmd+" failed", "err", err)
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	config    string
	json      bool
	force     bool
	nameOnly  bool
	sensitive bool
}

// parseFlags separates --flags from positional arguments.
func parseFlags(raw []string) ([]string, options) {
	var opts options
	var args []string
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case "--config":
			if i+1 < len(raw) {
				opts.config = raw[i+1]
				i++
			}
		case "--json":
			opts.json = true
		case "--force":
			opts.force = true
		case "--name":
			opts.nameOnly = true
		case "--case":
			opts.sensitive = true
		default:
			args = append(args, raw[i])
		}
	}
	return args, opts
}

type app struct {
	cfg  *config.Config
	log  *log.Logger
	opts options
	out  io.Writer
}

// run checks the positional argument count before dispatching.
func (a *app) run(args []string, want int, fn func([]string) error) error {
	if len(args) != want {
		return fmt.Errorf("expected %d arguments, got %d (see patron help)", want, len(args))
	}
	return fn(args)
}
