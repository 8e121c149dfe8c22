package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/stabiliser"
	"gopkg.in/yaml.v3"
)

type options struct {
	output     string
	configPath string
	workers    int
}

type reduceReport struct {
	Qubits     int      `yaml:"qubits"`
	Generators []string `yaml:"generators"`
	XRows      []int    `yaml:"x_rows"`
	ZRows      []int    `yaml:"z_rows"`
}

type amplitudeEntry struct {
	Index int     `yaml:"index"`
	Basis string  `yaml:"basis"`
	Real  float64 `yaml:"real"`
	Imag  float64 `yaml:"imag"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "stabiliser",
		Short: "Reduce stabiliser generators and print the state they fix",
		Long: `Generators are Pauli strings such as "XZ", "-IZ" or "+iXY", one per
argument, with the leftmost letter acting on qubit 0. Put generators after a
"--" separator so that a leading minus sign is not read as a flag:

  stabiliser amplitudes -o yaml -- -IZ XX`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text or yaml")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "reduce -- [pauli...]",
		Short: "Print the canonical form of a generator set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd.OutOrStdout(), opts, args)
		},
	})

	amplitudesCmd := &cobra.Command{
		Use:   "amplitudes -- [pauli...]",
		Short: "Print the nonzero amplitudes of the stabilised state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmplitudes(cmd.OutOrStdout(), opts, args)
		},
	}

	amplitudesCmd.Flags().StringVar(&opts.configPath, "config", "", "YAML file with reconstructor settings")
	amplitudesCmd.Flags().IntVar(&opts.workers, "workers", 0, "goroutines per reconstruction (0 keeps the config value)")
	rootCmd.AddCommand(amplitudesCmd)

	return rootCmd
}

func buildTableau(args []string) (*stabiliser.Tableau, error) {
	paulis := make([]stabiliser.Pauli, len(args))

	for i, arg := range args {
		p, err := stabiliser.ParsePauli(arg)
		if err != nil {
			return nil, err
		}
		paulis[i] = p
	}

	return stabiliser.NewTableau(paulis)
}

func loadConfig(opts *options) (*stabiliser.Config, error) {
	config := stabiliser.NewConfig()

	if opts.configPath != "" {
		raw, err := os.ReadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", opts.configPath, err)
		}

		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", opts.configPath, err)
		}

		errnie.Info("loadConfig - loaded %s", opts.configPath)
	}

	if opts.workers > 0 {
		config.Workers = opts.workers
	}

	return config, nil
}

func runReduce(w io.Writer, opts *options, args []string) error {
	tableau, err := buildTableau(args)
	if err != nil {
		return err
	}

	if err := tableau.Reduce(); err != nil {
		return err
	}

	report := reduceReport{
		Qubits: tableau.Qubits(),
		XRows:  tableau.XRows(),
		ZRows:  tableau.ZRows(),
	}
	for _, p := range tableau.Paulis() {
		report.Generators = append(report.Generators, p.String())
	}

	if opts.output == "yaml" {
		return yaml.NewEncoder(w).Encode(report)
	}

	for i, g := range report.Generators {
		kind := "z"
		if slices.Contains(report.XRows, i) {
			kind = "x"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, kind, g)
	}

	return nil
}

func runAmplitudes(w io.Writer, opts *options, args []string) error {
	config, err := loadConfig(opts)
	if err != nil {
		return err
	}

	tableau, err := buildTableau(args)
	if err != nil {
		return err
	}

	amps, err := stabiliser.NewReconstructor(config).StateVector(tableau)
	if err != nil {
		return err
	}

	entries := make([]amplitudeEntry, 0)
	for _, i := range amps.Support() {
		entries = append(entries, amplitudeEntry{
			Index: i,
			Basis: fmt.Sprintf("%0*b", tableau.Qubits(), i),
			Real:  real(amps[i]),
			Imag:  imag(amps[i]),
		})
	}

	if opts.output == "yaml" {
		return yaml.NewEncoder(w).Encode(entries)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%d\t|%s⟩\t%s\n", e.Index, e.Basis, strconv.FormatComplex(complex(e.Real, e.Imag), 'g', 6, 128))
	}

	return nil
}
