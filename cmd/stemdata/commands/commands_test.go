package commands_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/stemdata/cmd/stemdata/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpus = `<?xml version="1.0" encoding="UTF-8"?>
<Wordlist>
  <Paradigm pdgId="1" lemma="на" tag="I">
    <Variant id="a" lemma="на">
      <Form tag="">на</Form>
    </Variant>
  </Paradigm>
  <Paradigm pdgId="2" lemma="ру+ка" tag="NCIIFN1">
    <Variant id="a" lemma="ру+ка" tag="NCIIFN1">
      <Form tag="NS">ру+ка</Form>
      <Form tag="GS">ру+кі</Form>
      <Form tag="DS">ру+цэ</Form>
    </Variant>
  </Paradigm>
</Wordlist>`

// writeWorkspace creates a dictionary directory and a config file pointing into it.
func writeWorkspace(t *testing.T) (string, string) {
	t.Helper()

	root := t.TempDir()
	sourceDir := filepath.Join(root, "grammardb")
	require.NoError(t, os.Mkdir(sourceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "A1.xml"), []byte(corpus), 0o600))

	configPath := filepath.Join(root, "stemdata.toml")
	content := fmt.Sprintf(`version = 1

[debug]
log_level = "warn"
log_dir = %q
max_logs_to_keep = 2

[source]
dir = %q

[output]
build_dir = %q

[archive]
dist_dir = %q
timezone = "UTC"
`, filepath.Join(root, "logs"), sourceDir, filepath.Join(root, "build"), filepath.Join(root, "dist"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return root, configPath
}

func TestBuildAndCheck(t *testing.T) {
	t.Parallel()

	root, configPath := writeWorkspace(t)
	ctx := context.Background()

	err := commands.BuildCommand().Run(ctx, []string{
		"build", "--config", configPath, "--formats", "csv", "--no-archive", "--order", "length",
	})
	require.NoError(t, err)

	buildDir := filepath.Join(root, "build")
	flexions, err := os.ReadFile(filepath.Join(buildDir, "flexions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "а\nі\n", string(flexions))

	invariants, err := os.ReadFile(filepath.Join(buildDir, "unchangeable_words.txt"))
	require.NoError(t, err)
	assert.Equal(t, "на\n", string(invariants))

	assert.FileExists(t, filepath.Join(buildDir, "flexions.csv"))
	assert.NoDirExists(t, filepath.Join(root, "dist"))

	// The fresh build passes the check
	require.NoError(t, commands.CheckCommand().Run(ctx, []string{"check", "--config", configPath, "--strict"}))

	// Packing afterwards archives the build
	require.NoError(t, commands.PackCommand().Run(ctx, []string{"pack", "--config", configPath}))
	entries, err := os.ReadDir(filepath.Join(root, "dist"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBuildFlagOverride(t *testing.T) {
	t.Parallel()

	root, configPath := writeWorkspace(t)
	outDir := filepath.Join(root, "custom")

	err := commands.BuildCommand().Run(context.Background(), []string{
		"build", "--config", configPath, "--out", outDir, "--no-archive",
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "flexions.txt"))
	assert.NoDirExists(t, filepath.Join(root, "build"))
}

func TestBuildInvalidFlag(t *testing.T) {
	t.Parallel()

	_, configPath := writeWorkspace(t)

	err := commands.BuildCommand().Run(context.Background(), []string{
		"build", "--config", configPath, "--share-base", "median",
	})
	require.Error(t, err)
}

func TestPublishRequiresArchive(t *testing.T) {
	t.Parallel()

	err := commands.PublishCommand().Run(context.Background(), []string{"publish"})
	require.ErrorIs(t, err, commands.ErrArchiveRequired)
}
