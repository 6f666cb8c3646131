// Package cli wires the lvassign commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvassign/scenario"
)

// rootOptions holds the persistent flags and the logger shared by every
// subcommand.
type rootOptions struct {
	verbose    bool
	configPath string
	logger     *zap.Logger
	// ownLogger is true when the logger was built from flags and must be synced.
	ownLogger bool
}

// NewRootCommand builds the lvassign command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(nil)
}

// newRootCommand builds the tree; a non-nil logger replaces the one built
// from --verbose.
func newRootCommand(logger *zap.Logger) *cobra.Command {
	o := &rootOptions{logger: logger}

	root := &cobra.Command{
		Use:   "lvassign",
		Short: "Optimal assignment and bundle-allocation toolkit",
		Long: `lvassign solves square assignment problems exactly with the Hungarian
(Kuhn-Munkres) algorithm and simulates market-based task allocation
(CBBA-style bidding, bundling and consensus) on a small grid.

Scenarios are read from YAML files; run "lvassign init" for an example.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if o.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			o.logger = l
			o.ownLogger = true

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.ownLogger && o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Scenario YAML file (default: built-in demo scenario)")

	root.AddCommand(newHungarianCommand(o))
	root.AddCommand(newCBBACommand(o))
	root.AddCommand(newInitCommand(o))
	root.AddCommand(newVersionCommand())

	return root
}

// ExecuteContext runs the command tree with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// scenario loads --config, or the demo scenario when no file is given.
func (o *rootOptions) scenario() (*scenario.Scenario, error) {
	if o.configPath == "" {
		o.log().Debug("using built-in scenario")
		return scenario.Default(), nil
	}
	s, err := scenario.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	o.log().Debug("scenario loaded",
		zap.String("path", o.configPath),
		zap.Int("tasks", len(s.Tasks)),
		zap.Int("agents", len(s.Agents)))

	return s, nil
}

func (o *rootOptions) log() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}

	return o.logger
}
