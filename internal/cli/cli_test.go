package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alaingilbert/seedrand"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(WithOutput(&out, &errOut), WithClock(clockwork.NewFakeClockAt(epoch)))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInts_Text(t *testing.T) {
	out, _, err := run(t, "ints", "--seed", "1", "--count", "3")
	require.NoError(t, err)
	assert.Equal(t, "1804289383\n846930886\n1681692777\n", out)
}

func TestLongs_JSON(t *testing.T) {
	out, _, err := run(t, "longs", "--seed", "12345678", "-n", "4", "--format", "json")
	require.NoError(t, err)
	var r Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	g := seedrand.NewWithSeed(12345678)
	assert.Equal(t, "longs", r.Kind)
	assert.Equal(t, int32(12345678), r.Seed)
	assert.Equal(t, []int64{g.NextLong(), g.NextLong(), g.NextLong(), g.NextLong()}, r.Values)
}

func TestBounded_YAML(t *testing.T) {
	out, _, err := run(t, "bounded", "--seed", "87654321", "--bound", "7", "--format", "yaml")
	require.NoError(t, err)
	var r Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, int32(7), r.Bound)
	require.Len(t, r.Values, 10)
	for _, v := range r.Values {
		assert.True(t, v >= 0 && v < 7, "value %d", v)
	}
}

func TestBounded_InvalidBound(t *testing.T) {
	_, _, err := run(t, "bounded", "--seed", "1", "--bound", "0")
	assert.ErrorIs(t, err, seedrand.ErrInvalidArgument)
}

func TestTimeDerivedSeed(t *testing.T) {
	out, errOut, err := run(t, "ints", "-n", "2")
	require.NoError(t, err)
	seed := int32(epoch.UnixNano())
	assert.Contains(t, errOut, "using seed: 1380122624")
	g := seedrand.NewWithSeed(seed)
	assert.Equal(t, []string{itoa(g.NextInt()), itoa(g.NextInt())}, strings.Fields(out))
}

func TestSeedZero_IsTimeDerived(t *testing.T) {
	usage := NewRootCmd().PersistentFlags().Lookup("seed").Usage
	assert.Contains(t, usage, "0 is replaced by a time-derived seed")

	out, errOut, err := run(t, "ints", "--seed", "0", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "using seed: 1380122624")
	assert.Equal(t, itoa(seedrand.NewWithSeed(1380122624).NextInt()), strings.TrimSpace(out))
}

func TestSeedFromEnv(t *testing.T) {
	t.Setenv("SEEDRAND_SEED", "1")
	t.Setenv("SEEDRAND_COUNT", "1")
	out, errOut, err := run(t, "ints")
	require.NoError(t, err)
	assert.Equal(t, "1804289383\n", out)
	assert.Empty(t, errOut)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seedrand.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 1\ncount: 2\n"), 0o600))
	out, _, err := run(t, "ints", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "1804289383\n846930886\n", out)

	// flags win over the config file
	out, _, err = run(t, "ints", "--config", path, "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "1804289383\n", out)
}

func TestUniformity(t *testing.T) {
	out, _, err := run(t, "uniformity", "--seed", "12345678", "--bound", "7", "--samples", "70000")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[7], "uniform: true")
}

func TestWorkers(t *testing.T) {
	out, _, err := run(t, "workers", "--workers", "3", "-n", "2", "--format", "json")
	require.NoError(t, err)
	var r Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Workers, 3)
	for i, w := range r.Workers {
		g := seedrand.NewWithSeed(int32(i) * 12345)
		assert.Equal(t, i, w.Index)
		assert.Equal(t, []int64{int64(g.NextInt()), int64(g.NextInt())}, w.Values)
	}
}

func TestWorkers_Shared(t *testing.T) {
	out, _, err := run(t, "workers", "--workers", "4", "-n", "3", "--shared")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestUnknownFormat(t *testing.T) {
	_, _, err := run(t, "ints", "--seed", "1", "--format", "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNegativeCount(t *testing.T) {
	_, _, err := run(t, "ints", "--count", "-1")
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func itoa(v int32) string {
	return strconv.Itoa(int(v))
}
