package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdsCmd(t *testing.T) {
	setupTestServices(t)

	stdout, stderr, err := run(t, "thresholds")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Threshold table: built-in")

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "Group\tFilter\tMetric\tKeep\tMin\tMax\tDefault\tStep\tUnit", lines[0])
	assert.Equal(t, "primary\tFilter dG\tAverage_dG\t<=\t-100\t50\t0\t0.5\tkcal/mol", lines[3])
	assert.Contains(t, stdout, "secondary\tFilter pTM\tAverage_pTM\t>=\t0\t1\t0.55\t0.01\t")
}

func TestThresholdsCmd_CustomPath(t *testing.T) {
	s := setupTestServices(t)
	require.NoError(t, s.Settings.SetThresholdsPath("/data/strict.toml"))

	_, stderr, err := run(t, "thresholds")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Threshold table: /data/strict.toml")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.5", formatFloat(0.5))
	assert.Equal(t, "-100", formatFloat(-100))
	assert.Equal(t, "0.01", formatFloat(0.01))
}
