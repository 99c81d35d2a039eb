package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aleister1102/livereload/internal/preference"
)

const (
	cmdWatch   = "watch"
	cmdStatus  = "status"
	cmdEnable  = "enable"
	cmdDisable = "disable"
	cmdToggle  = "toggle"
	cmdList    = "list"
)

type AppFlags struct {
	GlobalConfigFile string
	Driver           string
	EnableOnStart    bool
	Command          string
	Target           string
}

func ParseFlags() AppFlags {
	flags, err := parseFlags(flag.CommandLine, os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
	return flags
}

func parseFlags(fs *flag.FlagSet, args []string, output io.Writer) (AppFlags, error) {
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: livereload [flags] <command> [url|port]\n\n")
		fmt.Fprintf(output, "Commands:\n")
		fmt.Fprintf(output, "  watch <url>     monitor a page and reload it when its resources change\n")
		fmt.Fprintf(output, "  status <url>    show whether live reload is enabled for the page's port\n")
		fmt.Fprintf(output, "  enable <url>    enable live reload for the page's port\n")
		fmt.Fprintf(output, "  disable <url>   disable live reload for the page's port\n")
		fmt.Fprintf(output, "  toggle <url>    flip the stored flag for the page's port\n")
		fmt.Fprintf(output, "  list            show every stored flag\n\n")
		fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	driver := fs.String("driver", "", "Document driver: browser or static (overrides config file if set)")
	driverAlias := fs.String("d", "", "Alias for -driver")

	enable := fs.Bool("enable", false, "Store the enable flag before watching")
	enableAlias := fs.Bool("e", false, "Alias for -enable")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *driver != "" {
		flags.Driver = *driver
	} else if *driverAlias != "" {
		flags.Driver = *driverAlias
	}

	flags.EnableOnStart = *enable || *enableAlias

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return AppFlags{}, fmt.Errorf("a command is required")
	}
	flags.Command = rest[0]
	if len(rest) > 1 {
		flags.Target = rest[1]
	}

	switch flags.Command {
	case cmdList:
	case cmdWatch:
		if flags.Target == "" {
			return AppFlags{}, fmt.Errorf("%s requires a page URL", flags.Command)
		}
	case cmdStatus, cmdEnable, cmdDisable, cmdToggle:
		if flags.Target == "" {
			return AppFlags{}, fmt.Errorf("%s requires a page URL or port", flags.Command)
		}
	default:
		return AppFlags{}, fmt.Errorf("unknown command %q", flags.Command)
	}

	return flags, nil
}

// portOf accepts either a page URL or a bare port.
func portOf(target string) string {
	if strings.Contains(target, "://") {
		return preference.PortOf(target)
	}
	return target
}
