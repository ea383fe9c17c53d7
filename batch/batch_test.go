package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/ssfconv/convert"
	"github.com/jsphweid/ssfconv/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const good = "#BPM01: 120\n#START\n0\n0:000\n96:2\nEND\n"

func TestProcessAllCharts(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.Nil(t, os.MkdirAll(outDir, 0755))

	charts := map[string]string{
		"a.ssf": good,
		"b.ssf": good,
		"c.ssf": "#BPM01: 120\n#START\n0\n0:Q00\nEND\n",
	}
	var paths []string
	for name, text := range charts {
		path := filepath.Join(dir, name)
		require.Nil(t, os.WriteFile(path, []byte(text), 0644))
		paths = append(paths, path)
	}

	outcomes := ProcessAllCharts(file.CreateOutputMap(paths, outDir, ".xml"), 2, convert.Options{})
	require.Len(t, outcomes, 3)
	assert.Equal(t, 1, Failed(outcomes))

	assert.Equal(t, filepath.Join(dir, "a.ssf"), outcomes[0].Input)
	assert.Nil(t, outcomes[0].Err)
	assert.Equal(t, 2, outcomes[0].Steps)
	assert.Greater(t, outcomes[0].Bytes, 0)
	assert.NotNil(t, outcomes[2].Err)

	_, err := os.Stat(filepath.Join(outDir, "b.xml"))
	assert.Nil(t, err)
	_, err = os.Stat(filepath.Join(outDir, "c.xml"))
	assert.True(t, os.IsNotExist(err))
}
