package file

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CreateOutputMap assigns every chart an output file in outDir named after
// the chart, with ext replacing the chart's extension. Charts whose name is
// already used get the first free numeric suffix in input order.
func CreateOutputMap(paths []string, outDir string, ext string) map[string]string {
	res := make(map[string]string)
	used := make(map[string]bool)
	for _, v := range paths {
		base := filepath.Base(v)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		name := stem
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%v-%v", stem, n)
		}
		used[name] = true
		res[v] = filepath.Join(outDir, name+ext)
	}
	return res
}
