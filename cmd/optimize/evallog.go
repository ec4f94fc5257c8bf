package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// evalRow is one line of evals.csv.
type evalRow struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Survival float64 `csv:"survival_ticks"`
	Quality  float64 `csv:"quality"`
}

// paramRow is one parameter value used by an evaluation, in params.csv.
// The parameter set is only known at runtime, so values are stored long-form
// keyed by eval.
type paramRow struct {
	Eval  int     `csv:"eval"`
	Name  string  `csv:"param"`
	Value float64 `csv:"value"`
}

// csvTable appends gocsv rows to a file, writing the header once.
type csvTable struct {
	f             *os.File
	headerWritten bool
}

func (t *csvTable) append(rows any) error {
	if !t.headerWritten {
		t.headerWritten = true
		return gocsv.Marshal(rows, t.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, t.f)
}

// evalLog records every CMA-ES evaluation under the output directory.
type evalLog struct {
	evals  csvTable
	params csvTable
}

func newEvalLog(dir string) (*evalLog, error) {
	evals, err := os.Create(filepath.Join(dir, "evals.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating evals.csv: %w", err)
	}
	params, err := os.Create(filepath.Join(dir, "params.csv"))
	if err != nil {
		evals.Close()
		return nil, fmt.Errorf("creating params.csv: %w", err)
	}
	return &evalLog{evals: csvTable{f: evals}, params: csvTable{f: params}}, nil
}

// Write appends one evaluation and the clamped parameter values it ran with.
func (l *evalLog) Write(row evalRow, names []string, values []float64) error {
	if err := l.evals.append([]evalRow{row}); err != nil {
		return fmt.Errorf("writing evals.csv: %w", err)
	}
	rows := make([]paramRow, len(names))
	for i, name := range names {
		rows[i] = paramRow{Eval: row.Eval, Name: name, Value: values[i]}
	}
	if err := l.params.append(rows); err != nil {
		return fmt.Errorf("writing params.csv: %w", err)
	}
	return nil
}

func (l *evalLog) Close() error {
	return errors.Join(l.evals.f.Close(), l.params.f.Close())
}
