// Package cli is the rapidid command line. It only adapts flags and output
// formats to the library; generation itself lives in package rapidid.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/rapidid"
	"github.com/Lzww0608/rapidid/internal/config"
	"github.com/Lzww0608/rapidid/internal/logging"
)

type app struct {
	configPath string
	output     string
	logLevel   string
	count      int
	workers    int

	cfg     config.Config
	log     *slog.Logger
	batcher *rapidid.Batcher
}

// NewRootCommand builds the rapidid command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rapidid",
		Short: "Generate UUIDs, short IDs and NanoIDs",
		Long: `Generate UUIDs (v1, v4, v7), 16-character time-sortable short IDs
and NanoIDs. Large counts are generated in parallel.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVarP(&a.output, "output", "o", "", "output format: text or json")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.IntVarP(&a.count, "count", "n", 1, "number of identifiers to generate")
	flags.IntVar(&a.workers, "workers", 0, "batch goroutines (0 uses config or GOMAXPROCS)")

	root.AddCommand(
		a.uuidCommand("uuid1", "Generate time-based version 1 UUIDs", a.v1),
		a.uuidCommand("uuid4", "Generate random version 4 UUIDs", a.v4),
		a.uuidCommand("uuid7", "Generate time-ordered version 7 UUIDs", a.v7),
		a.shortCommand(),
		a.nanoCommand(),
		a.inspectCommand(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.count < 0 {
		return fmt.Errorf("%w: --count must not be negative", rapidid.ErrInvalidArgument)
	}
	a.cfg = cfg

	a.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})
	rapidid.SetLogger(a.log)

	a.batcher = rapidid.NewBatcher(
		rapidid.WithWorkers(cfg.Workers),
		rapidid.WithMinChunk(cfg.MinChunk),
	)
	return nil
}

func (a *app) uuidCommand(use, short string, gen func(int) ([]rapidid.UUID, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := gen(a.count)
			if err != nil {
				return err
			}
			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = id.String()
			}
			return a.print(cmd.OutOrStdout(), out)
		},
	}
}

// v1 stays sequential: all version 1 UUIDs share the process clock sequence.
func (a *app) v1(n int) ([]rapidid.UUID, error) {
	ids := make([]rapidid.UUID, 0, n)
	for i := 0; i < n; i++ {
		id, err := rapidid.NewV1()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *app) v4(n int) ([]rapidid.UUID, error) { return a.batcher.V4(n) }

func (a *app) v7(n int) ([]rapidid.UUID, error) { return a.batcher.V7(n) }

func (a *app) shortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "short",
		Short: "Generate 16-character short IDs that sort by creation time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := a.batcher.ShortIDs(a.count)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), ids)
		},
	}
}

func (a *app) nanoCommand() *cobra.Command {
	var size int
	var alphabet string

	cmd := &cobra.Command{
		Use:   "nano",
		Short: "Generate NanoIDs",
		Example: `  rapidid nano
  rapidid nano --size 10 -n 5
  rapidid nano --alphabet 0123456789abcdef --size 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("size") {
				size = a.cfg.NanoIDSize
			}

			var ids []string
			var err error
			if alphabet != "" {
				ids, err = a.customNano(alphabet, size)
			} else {
				ids, err = a.batcher.NanoIDs(a.count, size)
			}
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), ids)
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", rapidid.DefaultNanoIDSize, "characters per ID")
	cmd.Flags().StringVar(&alphabet, "alphabet", "", "custom alphabet (default 0-9A-Za-z-_)")
	return cmd
}

func (a *app) customNano(alphabet string, size int) ([]string, error) {
	ids := make([]string, 0, a.count)
	for i := 0; i < a.count; i++ {
		id, err := rapidid.NewNanoIDAlphabet(alphabet, size)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *app) print(w io.Writer, ids []string) error {
	a.log.Debug("generated identifiers", "count", len(ids), "output", a.cfg.Output)
	if a.cfg.Output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}

// Main runs the CLI and exits non-zero on failure.
func Main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
