package recon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bankops/atmrecon/pkg/recon"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"prefixed with padding", "ATM-00042", "42"},
		{"plain padded", "042", "42"},
		{"all zeros collapse to zero", "0000", "0"},
		{"no digits", "no-digits-here", ""},
		{"empty", "", ""},
		{"trailing whitespace", "Terminal 007  ", "7"},
		{"digits only at the end count", "42 north branch", ""},
		{"mixed prefix", "ATM0042", "42"},
		{"free text prefix", "Sucursal Centro 815", "815"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recon.NormalizeID(tt.raw))
		})
	}
}
