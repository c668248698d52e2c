package core

import (
	"errors"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{
			name:    "valid query",
			query:   "latest news about space telescopes",
			wantErr: nil,
		},
		{
			name:    "single word",
			query:   "golang",
			wantErr: nil,
		},
		{
			name:    "empty query",
			query:   "",
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "whitespace only",
			query:   "   \t\n  ",
			wantErr: ErrEmptyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuery(%q) = %v, want %v", tt.query, err, tt.wantErr)
			}
		})
	}
}
