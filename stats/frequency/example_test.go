package frequency_test

import (
	"fmt"

	"github.com/cwbudde/algo-vis/dsp/spectrum"
	frequencystats "github.com/cwbudde/algo-vis/stats/frequency"
)

func ExampleCalculate() {
	sp, _ := spectrum.FromBins([]spectrum.Bin{
		{Freq: 0, Mag: 0}, {Freq: 1000, Mag: 1}, {Freq: 2000, Mag: 2},
		{Freq: 3000, Mag: 1}, {Freq: 4000, Mag: 0},
	})
	s := frequencystats.Calculate(sp)
	fmt.Printf("peak=%.0f centroid=%.0f rolloff=%.0f\n", s.PeakFreq, s.Centroid, s.Rolloff)

	// Output:
	// peak=2000 centroid=2000 rolloff=3000
}
