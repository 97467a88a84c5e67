package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/atmrecon/internal/config"
)

func TestToleranceDefaults(t *testing.T) {
	viper.Reset()
	config.SetDefaults()

	d, err := config.Tolerance()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)
}

func TestToleranceRange(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    time.Duration
		wantErr bool
	}{
		{"zero is exact matching", 0, 0, false},
		{"mid range", 45, 45 * time.Minute, false},
		{"upper bound", 120, 120 * time.Minute, false},
		{"above upper bound", 121, 0, true},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			viper.Set(config.KeyTolerance, tt.minutes)

			d, err := config.Tolerance()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestGetString(t *testing.T) {
	viper.Reset()

	t.Setenv("ATMRECON_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", config.GetString("ATMRECON_TEST_KEY"))

	viper.Set("ATMRECON_TEST_KEY", "from-viper")
	assert.Equal(t, "from-viper", config.GetString("ATMRECON_TEST_KEY"))
}
