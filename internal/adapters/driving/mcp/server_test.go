package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
	})

	t.Run("missing interface service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Metrics: &mockMetricsService{}})
		assert.ErrorIs(t, err, ErrMissingInterfaceService)
		assert.Nil(t, server)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts(t))
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("settings are optional", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Settings = nil
		ports.Version = ""
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"empty", &Ports{}, ErrMissingInterfaceService},
		{"no metrics", &Ports{Interface: &mockInterfaceService{}}, ErrMissingMetricsService},
		{"required only", &Ports{Interface: &mockInterfaceService{}, Metrics: &mockMetricsService{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
