package intervals_test

import (
	"fmt"

	"github.com/katalvlaran/kinisigo/intervals"
)

// ExampleChoose demonstrates interval selection for a 1000-frame run with 10
// mobile atoms under a unit time base. The lower bound skips offsets shorter
// than 10 time units; the upper bound keeps at least 30 observations per
// offset.
func ExampleChoose() {
	opts := intervals.DefaultOptions()
	opts.MinTime = 10

	set, err := intervals.Choose(1000, 10, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("offsets=%d first=%d last=%d\n", len(set), set[0], set[len(set)-1])

	dt := intervals.Times(set[:3], 1, 1)
	fmt.Println("dt axis head:", dt)
	// Output:
	// offsets=323 first=10 last=332
	// dt axis head: [10 11 12]
}
