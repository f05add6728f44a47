package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/origins/internal/store"
)

// execute runs the CLI with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRun_TextReportMatchesGolden(t *testing.T) {
	out, err := execute(t, "run", filepath.Join("testdata", "facts", "simple"))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "run_simple", []byte(out))
}

func TestRun_JSONReport(t *testing.T) {
	out, err := execute(t, "run", "--format", "json", filepath.Join("testdata", "facts", "simple"))
	require.NoError(t, err)

	var report RegionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, filepath.Join("testdata", "facts", "simple"), report.FactsDir)
	assert.Empty(t, report.RunID, "no database, no run ID")
	require.Len(t, report.Tuples, 5)
	assert.Equal(t, RegionPair{Origin: "'r0", Point: "P0"}, report.Tuples[0])
	assert.Equal(t, RegionPair{Origin: "'static", Point: "P2"}, report.Tuples[4])
}

func TestRun_PersistsWhenDatabaseGiven(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "origins.db")

	out, err := execute(t, "run",
		"--format", "json",
		"--db", dbPath,
		"--dump",
		filepath.Join("testdata", "facts", "simple"))
	require.NoError(t, err)

	var report RegionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.RunID)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	run, err := st.ReadRun(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, 5, run.Tuples)

	rows, err := st.ReadRegionLiveAt(ctx, report.RunID)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, store.RegionRow{Origin: "'r0", Point: "P0"}, rows[0])

	// --dump persisted the per-point liveness: _1 is live at P0 and P1.
	dump, err := st.ReadLivenessDump(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, []store.LivenessRow{
		{Point: "P0", Variable: "_1", DropLive: false},
		{Point: "P1", Variable: "_1", DropLive: false},
	}, dump)
}

func TestRun_MissingFactsDirFails(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRun_ConfigFileProvidesDefaults(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "origins.db")
	cfgPath := filepath.Join(dir, "origins.yaml")
	writeFile(t, cfgPath, "database: "+dbPath+"\nformat: json\n")

	out, err := execute(t, "run", "--config", cfgPath, filepath.Join("testdata", "facts", "simple"))
	require.NoError(t, err)

	var report RegionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), "config format: json took effect")
	assert.NotEmpty(t, report.RunID, "config database took effect")
}

func TestRun_FlagOverridesConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "origins.yaml")
	writeFile(t, cfgPath, "format: json\n")

	// --format text on the command line wins over the config file.
	out, err := execute(t, "run", "--config", cfgPath, "--format", "text",
		filepath.Join("testdata", "facts", "simple"))
	require.NoError(t, err)
	assert.Contains(t, out, "region_live_at (5 tuples):")
}

func TestRun_InvalidFormatRejected(t *testing.T) {
	_, err := execute(t, "run", "--format", "xml", filepath.Join("testdata", "facts", "simple"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
