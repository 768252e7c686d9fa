package render

import (
	"fmt"

	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/stats/frequency"
)

// HUD is the diagnostic overlay content for one frame.
type HUD struct {
	State       control.State
	Time        float64
	Accumulator float64
	Stats       frequency.Stats
	FPS         float64
}

// Lines formats the overlay.
func (h HUD) Lines() []string {
	dir := "forward"
	if h.State.Backward {
		dir = "backward"
	}
	lines := []string{
		fmt.Sprintf("mode %s  %s", h.State.Mode, dir),
		fmt.Sprintf("intensity %.0f  dilation %.0f  decay %.4f", h.State.Intensity, h.State.Dilation, h.State.Decay),
		fmt.Sprintf("t %.6g  acc %.4g", h.Time, h.Accumulator),
		fmt.Sprintf("peak %.1f Hz (%.1f dB)  centroid %.0f Hz", h.Stats.PeakFreq, h.Stats.Peak_dB, h.Stats.Centroid),
	}
	if h.State.Reset {
		lines = append(lines, "reset")
	}
	if h.FPS > 0 {
		lines = append(lines, fmt.Sprintf("%.1f fps", h.FPS))
	}
	return lines
}
