package util

import (
	"strings"
	"testing"
)

func TestGenerateObjectID(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"short id", 5, false},
		{"object key id", 21, false},
		{"negative length", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateObjectID(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateObjectID(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != tt.n {
				t.Errorf("GenerateObjectID(%d) = %q, want length %d", tt.n, got, tt.n)
			}
			if strings.Trim(got, objectIDAlphabet) != "" {
				t.Errorf("GenerateObjectID(%d) = %q has characters outside the alphabet", tt.n, got)
			}
		})
	}
}
