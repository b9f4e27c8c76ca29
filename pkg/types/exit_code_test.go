// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    ExitCode
		wantErr bool
	}{
		{ExitSuccess, false},
		{ExitFailure, false},
		{255, false},
		{-1, true},
		{256, true},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExitCode(%d).Validate() error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error should wrap ErrInvalidExitCode, got %v", err)
			}
			var invalid *InvalidExitCodeError
			if !errors.As(err, &invalid) || invalid.Value != tt.code {
				t.Errorf("errors.As(*InvalidExitCodeError) = %v, want value %d", invalid, tt.code)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false")
	}
	if ExitFailure.IsSuccess() {
		t.Error("ExitFailure.IsSuccess() = true")
	}
}
