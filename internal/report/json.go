package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/github-health/internal/domain"
)

// Encode writes v as indented JSON.
func Encode(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')
	if _, err := w.Write(jsonData); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// Decode reads a Report previously written by Encode.
func Decode(r io.Reader) (*domain.Report, error) {
	var report domain.Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	for _, rk := range []*domain.Ranking{&report.Commentors, &report.CodeContributors, &report.ContributorCommits} {
		if *rk == nil {
			*rk = domain.Ranking{}
		}
	}
	return &report, nil
}
