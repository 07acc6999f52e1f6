package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/store"
	"github.com/hpungsan/jot/internal/web"
)

// maxStdinBytes bounds content read from stdin.
const maxStdinBytes = 4 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(s *store.Store, cfg *config.Config, baseDir string, logger *zap.Logger) *cli.App {
	paths := ops.PathPolicy{BaseDir: baseDir, Config: cfg}
	app := &cli.App{
		Name:    "jot",
		Usage:   "Small ordered note list",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging on stderr"},
		},
		Commands: []*cli.Command{
			addCmd(s),
			listCmd(s),
			getCmd(s),
			deleteCmd(s),
			editCmd(s),
			exportCmd(s, paths),
			importCmd(s, paths),
			serveCmd(s, cfg, logger),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Append a note (content may be piped via stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Note content (\"-\" reads stdin)"},
		},
		Action: func(c *cli.Context) error {
			content := c.String("content")
			if content == "-" || (!c.IsSet("content") && stdinHasData()) {
				text, err := readStdin()
				if err != nil {
					return outputError(err)
				}
				content = text
			}

			output, err := ops.Add(c.Context, s, ops.AddInput{
				Title:   c.String("title"),
				Content: content,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List notes in order",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum results"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Results to skip"},
			&cli.BoolFlag{Name: "content", Usage: "Include full note content"},
		},
		Action: func(c *cli.Context) error {
			output := ops.List(s, ops.ListInput{
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeContent: c.Bool("content"),
			})
			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one note by index or ID",
		ArgsUsage: "[index]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Note ID"},
		},
		Action: func(c *cli.Context) error {
			index, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Fetch(s, ops.FetchInput{Index: index, ID: c.String("id")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a note by index or ID",
		ArgsUsage: "[index]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Note ID"},
		},
		Action: func(c *cli.Context) error {
			index, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Delete(c.Context, s, ops.DeleteInput{Index: index, ID: c.String("id")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// editCmd creates the edit command.
func editCmd(s *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace the title and/or content of a note",
		ArgsUsage: "[index]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Note ID"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "New content (\"-\" reads stdin)"},
		},
		Action: func(c *cli.Context) error {
			index, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}

			input := ops.EditInput{Index: index, ID: c.String("id")}
			if c.IsSet("title") {
				title := c.String("title")
				input.Title = &title
			}
			if c.IsSet("content") {
				content := c.String("content")
				if content == "-" {
					content, err = readStdin()
					if err != nil {
						return outputError(err)
					}
				}
				input.Content = &content
			}

			output, err := ops.Edit(c.Context, s, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(s *store.Store, paths ops.PathPolicy) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all notes to a JSON or YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Output file in ~/.jot/exports or an allowed_paths directory (default: ~/.jot/exports/notes-<timestamp>.<format>)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json|yaml (default: from extension)"},
		},
		Action: func(c *cli.Context) error {
			format := ops.ExportFormat(c.String("format"))
			path := c.String("path")
			if path == "" {
				path = ops.DefaultExportPath(paths.BaseDir, format, time.Now())
			}

			output, err := ops.Export(c.Context, s, paths, ops.ExportInput{Path: path, Format: format})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(s *store.Store, paths ops.PathPolicy) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Append notes from an export file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Input file in ~/.jot/exports or an allowed_paths directory"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json|yaml (default: from extension)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, s, paths, ops.ImportInput{
				Path:   c.String("path"),
				Format: ops.ExportFormat(c.String("format")),
			})
			if err != nil {
				if output != nil {
					// Notes imported before the failure are kept; report them.
					_ = outputJSON(output)
				}
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(s *store.Store, cfg *config.Config, logger *zap.Logger) *cli.Command {
	defaults := config.DefaultConfig()
	if cfg != nil {
		defaults = cfg
	}
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: defaults.WebBind, Usage: "Address to listen on"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: defaults.WebPort, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port <= 0 || port > 65535 {
				return outputError(errors.NewInvalidRequest("port must be between 1 and 65535"))
			}

			srv, err := web.NewServer(s, logger, Version, c.String("bind"), port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(c.Context, srv, logger); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// parseIndexArg reads the optional positional index argument.
func parseIndexArg(c *cli.Context) (*int, error) {
	if c.NArg() == 0 {
		return nil, nil
	}
	index, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid index %q", c.Args().First()))
	}
	return &index, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var jErr *errors.JotError
	if stderrors.As(err, &jErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", jErr.Code, jErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	return readContent(os.Stdin)
}

// readContent reads r up to maxStdinBytes. Larger input is rejected rather
// than truncated.
func readContent(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to read stdin: %w", err))
	}
	if len(data) > maxStdinBytes {
		return "", errors.NewInvalidRequest(fmt.Sprintf("stdin content exceeds %d bytes", maxStdinBytes))
	}
	return strings.TrimRight(string(data), "\n"), nil
}
