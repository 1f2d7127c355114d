// Command kinisigo analyzes a molecular-dynamics trajectory and reports the
// self-diffusion coefficient of a mobile species with full uncertainty.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinisigo/analyze"
	"github.com/katalvlaran/kinisigo/xdatcar"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCommand creates the kinisigo root command.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinisigo",
		Short: "Self-diffusion coefficients from MD trajectories",
		Long: `kinisigo estimates tracer mean-squared displacements with a block
bootstrap and fits the Einstein relation with Bayesian uncertainty.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCommand())
	return cmd
}

// runOptions holds flags for the run command.
type runOptions struct {
	Config string
	Out    string
	Seed   int64
}

// newRunCommand creates the run command.
func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <XDATCAR>",
		Short: "Run a full diffusion analysis on an XDATCAR trajectory",
		Long: `Run parses the XDATCAR file, builds drift-corrected displacements,
bootstraps the MSD over a bounded interval set, fits the Einstein relation,
and prints a plain-text report.

Example:
  kinisigo run --config run.yaml XDATCAR
  kinisigo run --config run.yaml --seed 42 --out report.txt XDATCAR`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML run configuration (required)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "override the config seed")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runAnalysis loads the config, parses the trajectory, runs the pipeline,
// and writes the report.
func runAnalysis(opts *runOptions, path string) error {
	cfg, err := analyze.LoadConfig(opts.Config)
	if err != nil {
		return err
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}

	t, err := xdatcar.ReadFile(path, cfg.TimeStep, cfg.StepSkip)
	if err != nil {
		return err
	}

	res, err := analyze.Run(t, cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if opts.Out != "" {
		f, cerr := os.Create(opts.Out)
		if cerr != nil {
			return cerr
		}
		defer f.Close()
		out = f
	}
	return res.WriteReport(out)
}
