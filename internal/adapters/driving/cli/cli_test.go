package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/adapters/driven/pdb"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/scores"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/spatial"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/thresholds"
	"github.com/custodia-labs/binderdash/internal/core/services"
)

// setupTestServices wires real services over in-memory adapters and
// resets command state when the test ends.
func setupTestServices(t *testing.T) Services {
	t.Helper()
	cache := memory.NewCache()
	structures := services.NewStructureService(pdb.NewParser(), cache)
	metrics, err := services.NewMetricsService(scores.NewCSVCodec(), thresholds.NewSource(""))
	require.NoError(t, err)

	s := Services{
		Interface: services.NewInterfaceService(structures, spatial.NewGrid(), cache),
		Metrics:   metrics,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Session:   services.NewSessionService(metrics, nil),
	}
	SetServices(s)

	t.Cleanup(func() {
		SetServices(Services{})
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		interfaceDistance, interfaceJSON = 0, false
		interfaceCmd.Flags().Lookup("distance").Changed = false
		designsFilters, designsOut, designsJSON = nil, "", false
		designsMetricSet = "top_metrics"
		settingsCacheDir = ""
		tuiStructure, tuiScores, tuiWatch = "", "", false
		versionShort = false
	})
	return s
}

// run executes args and returns what was written to stdout and stderr.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
