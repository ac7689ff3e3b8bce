package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/ldagibbs/store"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func writeCorpus(t *testing.T, dir string) string {
	t.Helper()
	fn := filepath.Join(dir, "corpus.txt")
	data := "10 11 12 10 11 12\n30 31 32 30 31 32\n10 12 11\n"
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func TestTrainResumeInferSimilar(t *testing.T) {
	dir := t.TempDir()
	corpusFile := writeCorpus(t, dir)
	dictFile := filepath.Join(dir, "dict.json")
	require.NoError(t, os.WriteFile(dictFile, []byte(`{"10": "apple", "11": "pear"}`), 0o644))
	out := filepath.Join(dir, "run")
	ck := filepath.Join(dir, "run.ck")

	execute(t, TrainCmd(),
		"--corpus", corpusFile, "--dict", dictFile, "--out", out, "--checkpoint", ck,
		"--topics", "2", "--iter", "10", "--burn-in", "2", "--lag", "2", "--words", "3")

	for _, ext := range []string{".theta", ".phi", ".tw", ".toml", ".topics.json", ".report.txt"} {
		assert.FileExists(t, out+ext)
	}
	theta, err := store.ReadFloat64RowsFile(out + ".theta")
	require.NoError(t, err)
	assert.Len(t, theta, 3)

	c, err := store.LoadCheckpoint(ck)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Snapshot.Sweeps)
	assert.Equal(t, 4, c.Snapshot.Samples)
	assert.Equal(t, 2, c.Config.NumTopics)

	execute(t, ResumeCmd(), "--checkpoint", ck, "--iter", "5", "--out", out)
	c, err = store.LoadCheckpoint(ck)
	require.NoError(t, err)
	assert.Equal(t, 15, c.Snapshot.Sweeps)

	report, err := os.ReadFile(out + ".report.txt")
	require.NoError(t, err)
	assert.Contains(t, string(report), "***Topics per Document***")

	newDocs := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(newDocs, []byte("10 11 99\n31 32\n"), 0o644))
	inferred := filepath.Join(dir, "new")
	execute(t, InferCmd(), "--checkpoint", ck, "--corpus", newDocs, "--out", inferred, "--iter", "5")
	rows, err := store.ReadFloat64RowsFile(inferred + ".theta")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	printed := execute(t, SimilarCmd(), "--theta", out+".theta", "--doc", "0", "--k", "1")
	lines := strings.Split(strings.TrimSpace(printed), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, 2, len(strings.Split(lines[0], "\t")))
}

func TestTrainRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cmd := TrainCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--corpus", writeCorpus(t, dir), "--out", filepath.Join(dir, "run"), "--topics", "0"})
	assert.Error(t, cmd.Execute())
	assert.NoFileExists(t, filepath.Join(dir, "run.theta"))
}

func TestSimilarNeedsInput(t *testing.T) {
	cmd := SimilarCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--doc", "0"})
	assert.Error(t, cmd.Execute())
}
