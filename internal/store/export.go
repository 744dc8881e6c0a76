// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 10000

// ExportYAML writes the full run history (with equipment detail) to
// dir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	runs, err := s.exportRuns(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the full run history to dir/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	runs, err := s.exportRuns(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, "export.json"), data, 0o644)
}

func (s *Store) exportRuns(ctx context.Context) ([]any, error) {
	summaries, err := s.List(ctx, exportLimit)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(summaries))
	for _, sum := range summaries {
		full, err := s.Get(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, full)
	}
	return out, nil
}
