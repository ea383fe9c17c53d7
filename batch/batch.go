package batch

import (
	"fmt"
	"sync"

	"github.com/jsphweid/ssfconv/convert"
	"github.com/jsphweid/ssfconv/util"
	"github.com/remeh/sizedwaitgroup"
)

type Outcome struct {
	Input  string
	Output string
	Steps  int
	Bytes  int
	Err    error
}

// ProcessAllCharts converts every chart in m (input -> output path) using at
// most jobs conversions at once. One failed chart doesn't stop the others.
// Outcomes come back sorted by input path.
func ProcessAllCharts(m map[string]string, jobs int, opts convert.Options) []Outcome {
	keys := util.SortedKeys(m)
	res := make([]Outcome, len(keys))

	var mu sync.Mutex
	done := 0
	wg := sizedwaitgroup.New(util.Max(jobs, 1))
	for i, in := range keys {
		wg.Add()
		go func(i int, in string) {
			defer wg.Done()
			res[i] = processChart(in, m[in], opts)

			mu.Lock()
			done++
			fmt.Printf("Processed %v of %v charts\n", done, len(keys))
			mu.Unlock()
		}(i, in)
	}
	wg.Wait()

	return res
}

func processChart(in string, out string, opts convert.Options) Outcome {
	o := Outcome{Input: in, Output: out}
	r, err := convert.File(in, out, opts)
	if err != nil {
		o.Err = err
		return o
	}
	o.Steps = len(r.Sequence.Steps)
	o.Bytes = len(r.XML)
	return o
}

func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
