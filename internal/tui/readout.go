package tui

import (
	"fmt"
	"strings"

	"github.com/san-kum/pendulum/internal/scene"
)

// FormatReadout renders the numeric overlay: right-aligned labels, two
// decimal places, linear quantities first with angular ones in parentheses.
func FormatReadout(r scene.Readout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%15s%5.2f m\n", " Length: ", r.Length)
	fmt.Fprintf(&b, "%15s%5.2f m/s^2 (%5.2f rad/s^2)\n", " Acceleration: ", r.LinearAcceleration, r.Acceleration)
	fmt.Fprintf(&b, "%15s%5.2f m/s   (%5.2f rad/s)\n", " Velocity: ", r.LinearVelocity, r.Velocity)
	fmt.Fprintf(&b, "%15s%5.2f s", " Elapsed: ", r.Elapsed)
	return b.String()
}
