package literate

import (
	"errors"
	"testing"
)

func TestResolveTitle(t *testing.T) {
	names := map[string]struct{}{
		"parse command line": {},
		"parse config":       {},
		"main loop":          {},
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "full title passes through",
			raw:  "main loop",
			want: "main loop",
		},
		{
			name: "full title passes through even if unknown",
			raw:  "never defined",
			want: "never defined",
		},
		{
			name: "unique prefix resolves",
			raw:  "main...",
			want: "main loop",
		},
		{
			name: "prefix equal to full title resolves",
			raw:  "main loop...",
			want: "main loop",
		},
		{
			name:    "ambiguous prefix",
			raw:     "parse...",
			wantErr: ErrAmbiguousTitle,
		},
		{
			name:    "unknown prefix",
			raw:     "render...",
			wantErr: ErrUnknownTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTitle(tt.raw, names)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveTitle(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveTitle(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ResolveTitle(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveTitleEmptySet(t *testing.T) {
	if _, err := ResolveTitle("anything...", nil); !errors.Is(err, ErrUnknownTitle) {
		t.Errorf("ResolveTitle() error = %v, want ErrUnknownTitle", err)
	}
}
