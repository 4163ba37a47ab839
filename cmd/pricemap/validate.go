package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
	"github.com/anantsinghal-found/natgas-pricevis/internal/pipeline"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that source tables resolve and join cleanly",
		Long: `Load the price tables and report unresolved region labels, regions
missing from a table and regions dropped by the join. Exits non-zero when any
check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := observability.NewMetrics()
			sources, err := buildSources(cfg, metrics)
			if err != nil {
				return err
			}
			sources.Locator = nil

			p := pipeline.New(sources, nil, pipelineOptions(cfg), logger, metrics)
			in, err := p.Load(cmd.Context())
			if err != nil {
				return err
			}
			v, err := pipeline.Validate(in, cfg.Window)
			if err != nil {
				return err
			}

			printValidation(cmd.OutOrStdout(), v)
			if !v.OK() {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}

// phase tracks pass/fail for one validation check.
type phase struct {
	name   string
	errors []string
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validationPhases(v pipeline.Validation) []*phase {
	metrics := []domain.Metric{domain.MetricNaturalGas, domain.MetricElectricity}

	unresolved := &phase{name: "Region labels resolve"}
	missing := &phase{name: "Every region priced"}
	for _, m := range metrics {
		for _, label := range v.Unresolved[m] {
			unresolved.errors = append(unresolved.errors, fmt.Sprintf("%s: %q", m, label))
		}
		if codes := v.Missing[m]; len(codes) > 0 {
			missing.errors = append(missing.errors, fmt.Sprintf("%s: %s", m, joinRegions(codes)))
		}
	}

	gaps := &phase{name: "Tables join without gaps"}
	for _, code := range v.JoinGaps {
		gaps.errors = append(gaps.errors, string(code))
	}
	return []*phase{unresolved, missing, gaps}
}

func printValidation(w io.Writer, v pipeline.Validation) {
	phases := validationPhases(v)

	fmt.Fprintln(w, "Validation results:")
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
		}
		fmt.Fprintf(w, "  %-32s %s\n", p.name, status)
	}
	fmt.Fprintf(w, "Joined regions: %d\n", v.Joined)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}
}

func joinRegions(codes []domain.RegionCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
