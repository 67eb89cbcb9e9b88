package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeStrict decodes exactly one JSON document into v. Unknown fields
// and trailing values are rejected; an empty or null payload yields
// ErrEmptyInput.
func decodeStrict(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyInput
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the JSON document")
	}
	return nil
}

// DecodeConfig parses a JSON run configuration. Unknown fields and
// trailing data are rejected; an empty or null payload yields ErrEmptyInput.
func DecodeConfig(data []byte) (*SimulationConfig, error) {
	var cfg SimulationConfig
	if err := decodeStrict(data, &cfg); err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return nil, err
		}
		return nil, fmt.Errorf("invalid input JSON: %w", err)
	}
	return &cfg, nil
}

// EncodeReport marshals a report into its JSON transport form.
func EncodeReport(r *SimulationReport) ([]byte, error) {
	if r == nil {
		return nil, ErrEmptyInput
	}
	out, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return out, nil
}

// DecodeReport parses a report previously produced by EncodeReport.
func DecodeReport(data []byte) (*SimulationReport, error) {
	var r SimulationReport
	if err := decodeStrict(data, &r); err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return nil, err
		}
		return nil, fmt.Errorf("invalid report JSON: %w", err)
	}
	return &r, nil
}

// RunJSON is the single entry point for callers on the far side of a text
// boundary: it accepts a JSON-encoded SimulationConfig, runs it, and returns
// the JSON-encoded SimulationReport. On any error no report is returned.
func RunJSON(input string) (string, error) {
	cfg, err := DecodeConfig([]byte(input))
	if err != nil {
		return "", err
	}
	report, err := Run(cfg)
	if err != nil {
		return "", err
	}
	out, err := EncodeReport(report)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
