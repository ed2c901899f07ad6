package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqirenshi/padgen/internal/config"
	"github.com/yanqirenshi/padgen/pkg/errors"
	"github.com/yanqirenshi/padgen/pkg/pipeline"
)

// transformOpts holds the command-line flags for the transform command.
type transformOpts struct {
	output   string // output file path (stdout if empty)
	pretty   bool   // indent the JSON output
	refresh  bool   // bypass the cache lookup
	noCache  bool   // disable caching entirely
	ttlHours int    // cache TTL override
}

// newTransformCmd creates the transform command. It reads Rust source from
// a file argument or stdin and writes the PAD diagram JSON to stdout or
// --output.
func newTransformCmd(configPath *string) *cobra.Command {
	var opts transformOpts

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Convert Rust source into PAD diagram JSON",
		Long: `Convert Rust source code into a PAD (Problem Analysis Diagram) JSON tree.

Reads from the given file, or from stdin when the argument is "-" or omitted.
The result is always a JSON document: either the diagram or an error node
("Parse error: ..." or "No function found").

Examples:
  padgen transform main.rs
  cat main.rs | padgen transform
  padgen transform main.rs --pretty -o diagram.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, &opts, *configPath)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache lookup")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.ttlHours, "ttl", 0, "cache TTL in hours (0 uses the configured default)")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string, opts *transformOpts, configPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	src, err := readSource(args)
	if err != nil {
		printError("Failed to read source: %v", err)
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read source")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	if opts.noCache {
		cfg.Cache.Backend = config.BackendNone
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		// A broken cache should not block a local transform.
		logger.Warnf("Cache disabled: %v", err)
		c = nil
	} else {
		defer c.Close()
	}

	ttl := cfg.Cache.TTL()
	if opts.ttlHours > 0 {
		ttl = time.Duration(opts.ttlHours) * time.Hour
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(c, logger)
	result := runner.Execute(ctx, src, pipeline.Options{
		Refresh: opts.refresh,
		TTL:     ttl,
	})
	prog.done("Transformed source")

	out := []byte(result.JSON)
	if opts.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err == nil {
			out = buf.Bytes()
		}
	}
	out = append(out, '\n')

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if err := os.WriteFile(opts.output, out, 0644); err != nil {
		printError("Failed to write output: %v", err)
		return err
	}
	printSuccess("Wrote %s", opts.output)
	if result.CacheHit {
		printDetail("Result served from cache")
	}
	return nil
}

// readSource reads the source text from the file argument, or from stdin
// when the argument is "-" or omitted.
func readSource(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return src, nil
}
