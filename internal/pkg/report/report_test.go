package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/hostenv"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/remotecache"
)

const fakeTool = `#!/bin/sh
case "$1" in
--version) echo "sccache 0.10.0" ;;
--show-stats) echo "Compile requests 0" ;;
*) exit 1 ;;
esac
`

func TestReport(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "sccache")
	require.NoError(t, os.WriteFile(bin, []byte(fakeTool), 0755))

	for _, name := range remotecache.VarNames() {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv(remotecache.VarEndpoint, "https://acct.r2.cloudflarestorage.com")
	t.Setenv(remotecache.VarAccessKeyID, "AKID-SENSITIVE")
	env := hostenv.Capture()

	var out bytes.Buffer
	require.NoError(t, Report(&out, env, bin))

	got := out.String()
	assert.Contains(t, got, "sccache 0.10.0 ("+bin+")")
	assert.Contains(t, got, remotecache.VarEndpoint+"=https://acct.r2.cloudflarestorage.com")
	// Credentials come out as presence only, other unset vars as a placeholder.
	assert.Contains(t, got, remotecache.VarAccessKeyID+"=set")
	assert.NotContains(t, got, "AKID-SENSITIVE")
	assert.Contains(t, got, remotecache.VarSecretAccessKey+"=(unset)")
	assert.Contains(t, got, remotecache.VarBucket+"=(unset)")
}

func TestReportSurvivesVersionFailure(t *testing.T) {
	// A binary that fails --version still gets a report; only the final
	// stats call is allowed to fail the step.
	bin := filepath.Join(t.TempDir(), "sccache")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexit 1\n"), 0755))
	env := hostenv.Capture()

	var out bytes.Buffer
	err := Report(&out, env, bin)
	require.Error(t, err)
	assert.Contains(t, out.String(), "(unset) ("+bin+")")
}
