package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// ErrUnknownFormat ...
var ErrUnknownFormat = errors.New("unknown output format")

// Report is the result of one command.
type Report struct {
	Kind      string         `json:"kind" yaml:"kind"`
	Seed      int32          `json:"seed,omitempty" yaml:"seed,omitempty"`
	Bound     int32          `json:"bound,omitempty" yaml:"bound,omitempty"`
	Values    []int64        `json:"values,omitempty" yaml:"values,omitempty,flow"`
	Counts    []int          `json:"counts,omitempty" yaml:"counts,omitempty,flow"`
	ChiSquare float64        `json:"chi_square,omitempty" yaml:"chi_square,omitempty"`
	Threshold float64        `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Uniform   *bool          `json:"uniform,omitempty" yaml:"uniform,omitempty"`
	Workers   []WorkerReport `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// WorkerReport holds the draws of one worker.
type WorkerReport struct {
	Index  int     `json:"index" yaml:"index"`
	Seed   int32   `json:"seed" yaml:"seed"`
	Values []int64 `json:"values" yaml:"values,flow"`
}

func (a *app) write(cmd *cobra.Command, r Report) error {
	return writeReport(cmd.OutOrStdout(), a.format(), r)
}

func writeReport(w io.Writer, format string, r Report) error {
	switch strings.ToLower(format) {
	case formatText, "":
		return writeText(w, r)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, r Report) (err error) {
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	for _, v := range r.Values {
		printf("%d\n", v)
	}
	for i, c := range r.Counts {
		printf("%d\t%d\n", i, c)
	}
	if r.Uniform != nil {
		printf("chi-square: %.3f (threshold %.3f) uniform: %t\n", r.ChiSquare, r.Threshold, *r.Uniform)
	}
	for _, wr := range r.Workers {
		values := make([]string, len(wr.Values))
		for i, v := range wr.Values {
			values[i] = fmt.Sprint(v)
		}
		printf("worker %d seed %d: %s\n", wr.Index, wr.Seed, strings.Join(values, " "))
	}
	return err
}
