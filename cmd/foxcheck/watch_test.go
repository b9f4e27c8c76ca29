// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigWatch(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	dir := filepath.Join(base, "extension")
	ciConfig := filepath.Join(base, "ci", "foxcheck.cue")
	inside := filepath.Join(dir, "conf", "strict.cue")

	tests := []struct {
		name      string
		explicit  string
		wantRel   string
		wantFiles []string
	}{
		{name: "default file", wantRel: "foxcheck.cue"},
		{name: "explicit file outside the root", explicit: ciConfig, wantRel: "../ci/foxcheck.cue", wantFiles: []string{ciConfig}},
		{name: "explicit file inside the root", explicit: inside, wantRel: "conf/strict.cue", wantFiles: []string{inside}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rel, files, err := configWatch(dir, tt.explicit)
			if err != nil {
				t.Fatalf("configWatch() error = %v", err)
			}
			if rel != tt.wantRel {
				t.Errorf("rel = %q, want %q", rel, tt.wantRel)
			}
			if diff := cmp.Diff(tt.wantFiles, files); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
