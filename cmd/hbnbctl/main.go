package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"hbnb/internal/errors"
)

// Supported subcommands:
// - count:   Count live entities, optionally of one kind
// - all:     Print every record, optionally of one kind
// - show:    Print one record
// - create:  Create an entity from key=value parameters
// - update:  Set one attribute of an entity
// - destroy: Delete an entity
// - copy:    Copy every record into another file or sqlite store

func main() {
	copyCmd := flag.NewFlagSet("copy", flag.ExitOnError)
	copyType := copyCmd.String("type", "sqlite", "Destination store type (file, sqlite)")
	copyTarget := copyCmd.String("target", "", "Destination bucket URL (file) or database path (sqlite)")
	copyKey := copyCmd.String("key", "file.json", "Object key of the destination document (file only)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := ctlFlags{
		Copy: copyFlags{
			cmd:    copyCmd,
			typ:    copyType,
			target: copyTarget,
			key:    copyKey,
		},
	}

	if err := runSubcommand(ctx, &flags, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type ctlFlags struct {
	Copy copyFlags
}

type copyFlags struct {
	cmd    *flag.FlagSet
	typ    *string
	target *string
	key    *string
}

func runSubcommand(ctx context.Context, flags *ctlFlags, name string, args []string) error {
	switch name {
	case "count", "all", "show", "create", "update", "destroy":
		return withConsole(ctx, func(c *console) error {
			return c.run(ctx, name, args)
		})
	case "copy":
		return handleCopy(ctx, flags, args)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

func handleCopy(ctx context.Context, flags *ctlFlags, args []string) error {
	if err := flags.Copy.cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse copy flags")
	}

	if *flags.Copy.target == "" {
		return errors.New("--target flag is required for copy command")
	}

	return withConsole(ctx, func(c *console) error {
		return c.copyTo(ctx, *flags.Copy.typ, *flags.Copy.target, *flags.Copy.key)
	})
}

func printUsage() {
	fmt.Println("Usage: hbnbctl <command> [arguments]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  count [Kind]                     Count live entities")
	fmt.Println("  all [Kind]                       Print records as JSON lines")
	fmt.Println("  show <Kind> <id>                 Print one record")
	fmt.Println("  create <Kind> [key=value ...]    Create an entity; quoted values use _ for spaces")
	fmt.Println("  update <Kind> <id> <key> <value> Set one attribute")
	fmt.Println("  destroy <Kind> <id>              Delete an entity")
	fmt.Println("  copy -type <file|sqlite> -target <url|path>  Copy every record to another store")
	fmt.Println("")
	fmt.Println("Storage is selected by config/config.yaml and its environment overrides.")
}
