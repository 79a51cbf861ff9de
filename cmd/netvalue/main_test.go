package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/netvalue/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("rank: %w", context.Canceled), exitInterrupted},
		{"bad source", errs.New(errs.ErrCodeInvalidSource, "node %q is not in the graph", "x"), exitBadInput},
		{"missing file", errs.New(errs.ErrCodeFileNotFound, "open net.json"), exitFailure},
		{"plain", errors.New("boom"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
