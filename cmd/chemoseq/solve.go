package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chemoseq/rcpsp/bnb"
	"github.com/chemoseq/rcpsp/generator"
	"github.com/chemoseq/rcpsp/instance"
	"github.com/chemoseq/rcpsp/model"
	"github.com/chemoseq/rcpsp/report"
	"github.com/chemoseq/rcpsp/scheme"
)

// allowedPatientCounts mirrors the original source's fixed canned-instance
// sizes (original_source/pSGS-algorithm/main.py), per SPEC_FULL.md §7.
var allowedPatientCounts = map[int]bool{5: true, 25: true, 40: true, 50: true}

func solveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one instance and print the resulting schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(v)
		},
	}

	cmd.Flags().String("instance", "", "path to a .sm instance file")
	cmd.Flags().Int("patients", 0, "canned patient count (5, 25, 40, or 50); omit for an interactive prompt")
	cmd.Flags().Duration("time-limit", 30*time.Second, "soft wall-clock deadline for the search")

	return cmd
}

func runSolve(v *viper.Viper) error {
	log := newLogger(v.GetBool("verbose"))
	defer log.Sync()

	inst, precedences, incompatibilities, perPatient, err := loadInstance(v, log)
	if err != nil {
		return err
	}

	s := scheme.New(inst, precedences, incompatibilities)

	engine := bnb.NewEngine(bnb.WithLogger(log), bnb.WithTimeLimit(v.GetDuration("time-limit")))
	sol, err := engine.Solve(s)
	if err != nil {
		return fmt.Errorf("chemoseq: solve: %w", err)
	}

	return report.Render(os.Stdout, inst, sol.Schedule, sol.Stats, report.Options{ActivitiesPerPatient: perPatient})
}

// loadInstance resolves an instance from --instance, --patients, or (when
// both are absent) a blocking stdin prompt, per spec.md §6 and
// SPEC_FULL.md §7's CLI supplement. perPatient is nonzero only when the
// instance came from the generator, enabling report's per-patient view.
func loadInstance(v *viper.Viper, log *zap.Logger) (*model.Instance, [][2]int, [][2]int, int, error) {
	if path := v.GetString("instance"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("chemoseq: opening instance: %w", err)
		}
		defer f.Close()

		res, err := instance.Parse(f)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("chemoseq: parsing instance: %w", err)
		}

		inst, err := model.New(res.Activities, res.Resources)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("chemoseq: building instance: %w", err)
		}
		return inst, res.Precedences, nil, 0, nil
	}

	patients := v.GetInt("patients")
	if patients == 0 {
		var err error
		patients, err = promptPatientCount(os.Stdin, os.Stdout)
		if err != nil {
			return nil, nil, nil, 0, err
		}
	}
	if !allowedPatientCounts[patients] {
		return nil, nil, nil, 0, fmt.Errorf("chemoseq: unsupported patient count %d (must be one of 5, 25, 40, 50)", patients)
	}

	log.Info("resolved canned instance", zap.String("file", generator.FileName(patients)))

	res, incompat, err := generator.Generate(generator.Options{Patients: patients, Seed: int64(patients)})
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("chemoseq: generating instance: %w", err)
	}

	inst, err := model.New(res.Activities, res.Resources)
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("chemoseq: building instance: %w", err)
	}

	return inst, res.Precedences, incompat, 4, nil
}

func promptPatientCount(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, "Enter number of patients (5, 25, 40, or 50): ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return 0, fmt.Errorf("chemoseq: no patient count provided")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, fmt.Errorf("chemoseq: patient count must be an integer: %w", err)
	}
	return n, nil
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
