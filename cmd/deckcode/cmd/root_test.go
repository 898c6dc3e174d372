package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/deckcode/pkg/di"
)

var decklistTestdata = filepath.Join("..", "..", "..", "pkg", "decklist", "testdata")

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with a fresh container and an empty home directory,
// so no user config leaks into the test.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd(di.NewContainer())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := execute(root)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestEncodeCommand(t *testing.T) {
	t.Run("cards from flags", func(t *testing.T) {
		res := run(t, "", "encode", "--card", "4:01DE002")
		require.NoError(t, res.err)
		assert.Equal(t, "CMAAAAAEAEAAE\n", res.stdout)
	})

	t.Run("chunked", func(t *testing.T) {
		res := run(t, "", "encode", "-c", "4:01DE002", "--chunk", "4")
		require.NoError(t, res.err)
		assert.Equal(t, "CMAA-AAAE-AEAA-E\n", res.stdout)
	})

	t.Run("yaml file", func(t *testing.T) {
		res := run(t, "", "encode", filepath.Join(decklistTestdata, "bilgewater.yaml"))
		require.NoError(t, res.err)
		assert.Equal(t, "CMAQCAQGBIAQCAQGAMAAIAIAAICQCAAE\n", res.stdout)
	})

	t.Run("stdin plus flags", func(t *testing.T) {
		res := run(t, "4:01DE002\n2:02BW003\n3:02BW010\n", "encode", "-", "--card", "5:01DE004")
		require.NoError(t, res.err)
		assert.Equal(t, "CMAQCAQGBIAQCAQGAMAAIAIAAICQCAAE\n", res.stdout)
	})

	t.Run("json output", func(t *testing.T) {
		res := run(t, "", "encode", "--card", "1:01DE002", "-o", "json")
		require.NoError(t, res.err)

		var out encodeOutput
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
		assert.Equal(t, "CMAAAAIBAEAAE", out.Code)
		assert.Len(t, out.Cards, 1)
	})

	t.Run("no cards", func(t *testing.T) {
		res := run(t, "", "encode")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "no cards given")
	})

	t.Run("malformed flag", func(t *testing.T) {
		res := run(t, "", "encode", "--card", "01DE002")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "invalid --card value")
	})

	t.Run("invalid card", func(t *testing.T) {
		res := run(t, "", "encode", "--card", "1:01XX002")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "invalid card token")
		assert.Contains(t, res.stderr, "Error:")
	})
}

func TestDecodeCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		res := run(t, "", "decode", "cmaa-aaae-aeaa-e")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "01DE002")
		assert.Contains(t, res.stdout, "Demacia")
		assert.Contains(t, res.stdout, "1 cards, 4 copies")
	})

	t.Run("yaml", func(t *testing.T) {
		res := run(t, "", "decode", "CMAQCAQAAMAQCAIAAMAQCAIAAI", "-o", "yaml")
		require.NoError(t, res.err)

		var out decodeOutput
		require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &out))
		assert.Equal(t, 6, out.Copies)
		assert.Len(t, out.Cards, 3)
	})

	t.Run("garbage", func(t *testing.T) {
		res := run(t, "", "decode", "I'm no card code!")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "base32")
	})

	t.Run("garbage still exports metrics", func(t *testing.T) {
		metricsPath := filepath.Join(t.TempDir(), "deckcode.prom")
		res := run(t, "", "decode", "I'm no card code!", "--metrics-file", metricsPath)
		require.Error(t, res.err)

		data, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `kind="decode_failure"`)
		assert.Contains(t, string(data), `deckcode_operations_total{operation="decode",status="error"} 1`)
	})

	t.Run("bad output format", func(t *testing.T) {
		res := run(t, "", "decode", "CMAAAAAEAEAAE", "-o", "csv")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "output.format")
	})
}

func TestVerifyCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res := run(t, "", "verify", filepath.Join(decklistTestdata, "bilgewater.jsonc"))
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "deck is valid: 4 cards, 14 copies")
	})

	t.Run("invalid", func(t *testing.T) {
		res := run(t, "", "verify", "--card", "1:01XX002", "--card", "0:01DE002", "--card", "2:01DE003")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "deck has 2 invalid cards")
		assert.Contains(t, res.stdout, "invalid_token")
		assert.Contains(t, res.stdout, "invalid_count")
	})
}

func TestInspectCommand(t *testing.T) {
	res := run(t, "", "inspect", "CMAQCAQGBIAQCAQGAMAAIAIAAICQCAAE")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "format 1, version 3")
	assert.Contains(t, res.stdout, "BW")
	assert.Contains(t, res.stdout, "010")

	res = run(t, "", "inspect", "CMAAAAAEAEAAE", "-o", "json")
	require.NoError(t, res.err)
	var layout map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &layout))
	assert.EqualValues(t, 3, layout["version"])
}

func TestCheckCommand(t *testing.T) {
	t.Run("fixture passes", func(t *testing.T) {
		metricsPath := filepath.Join(t.TempDir(), "deckcode.prom")
		res := run(t, "", "check", filepath.Join(decklistTestdata, "cases.txt"), "--metrics-file", metricsPath)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "8 passed, 0 failed")

		data, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `deckcode_check_cases_total{result="pass"} 8`)
	})

	t.Run("failing case", func(t *testing.T) {
		dir := t.TempDir()
		casesPath := filepath.Join(dir, "cases.txt")
		require.NoError(t, os.WriteFile(casesPath, []byte("CMAAAAAEAEAAE\n3:01DE002\n"), 0644))
		metricsPath := filepath.Join(dir, "deckcode.prom")

		res := run(t, "", "check", casesPath, "--metrics-file", metricsPath)
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "1 of 1 cases failed")
		assert.Contains(t, res.stdout, "FAIL")

		data, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `deckcode_check_cases_total{result="fail"} 1`)
	})

	t.Run("missing file", func(t *testing.T) {
		res := run(t, "", "check", filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, res.err)
	})
}

func TestConfigCommands(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "deckcode.yaml")

	res := run(t, "", "config", "init", "--config", configFile)
	require.NoError(t, res.err)
	assert.FileExists(t, configFile)

	res = run(t, "", "config", "init", "--config", configFile)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = run(t, "", "config", "init", "--config", configFile, "--force")
	require.NoError(t, res.err)

	res = run(t, "", "config", "show", "--config", configFile, "-o", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "format: json")
	assert.Contains(t, res.stdout, "level: info")
}

func TestConfigFileIsApplied(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "deckcode.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("output:\n  chunk_size: 5\n"), 0600))

	res := run(t, "", "encode", "--config", configFile, "--card", "4:01DE002")
	require.NoError(t, res.err)
	assert.Equal(t, "CMAAA-AAEAE-AAE\n", res.stdout)

	// Flags win over the file.
	res = run(t, "", "encode", "--config", configFile, "--card", "4:01DE002", "--chunk", "0")
	require.NoError(t, res.err)
	assert.Equal(t, "CMAAAAAEAEAAE\n", res.stdout)
}

func TestMissingExplicitConfig(t *testing.T) {
	res := run(t, "", "decode", "CMAAAAAEAEAAE", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "config file does not exist")
}

func TestDebugLogging(t *testing.T) {
	res := run(t, "", "decode", "CMAAAAAEAEAAE", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"op":"decode"`)
}

func TestVersionCommand(t *testing.T) {
	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "deckcode "))
}

func TestNilContainer(t *testing.T) {
	root := newRootCmd(nil)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"decode", "CMAAAAAEAEAAE"})

	err := execute(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency container not initialized")
}
