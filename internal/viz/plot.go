package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/lnls-sirius/trackgo/internal/track"
)

// PlotTrajectory renders Rx, Ry, and De against index as three stacked
// asciigraph charts, the body of `trackgo plot <run-dir>`.
func PlotTrajectory(traj []track.Pos) string {
	if len(traj) == 0 {
		return "(empty trajectory)"
	}

	rx := make([]float64, len(traj))
	ry := make([]float64, len(traj))
	de := make([]float64, len(traj))
	for i, p := range traj {
		rx[i], ry[i], de[i] = p.Rx, p.Ry, p.De
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(rx, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("Rx [m]")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(ry, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("Ry [m]")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(de, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("De")))
	return b.String()
}

// PlotConvergence renders a Newton-iteration residual history, clamped away
// from zero so a fully converged residual still plots.
func PlotConvergence(residuals []float64) string {
	if len(residuals) == 0 {
		return "(no iterations recorded)"
	}
	clamped := make([]float64, len(residuals))
	for i, r := range residuals {
		if r < 1e-16 {
			r = 1e-16
		}
		clamped[i] = r
	}
	return asciigraph.Plot(clamped, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("Newton residual (inf-norm)"))
}

// PhaseSpaceCanvas draws an Rx-vs-Ry scatter of traj onto a Braille canvas
// autoscaled to the trajectory's own extent.
func PhaseSpaceCanvas(traj []track.Pos, width, height int) string {
	if len(traj) == 0 {
		return ""
	}
	xmin, xmax := traj[0].Rx, traj[0].Rx
	ymin, ymax := traj[0].Ry, traj[0].Ry
	for _, p := range traj {
		if p.Rx < xmin {
			xmin = p.Rx
		}
		if p.Rx > xmax {
			xmax = p.Rx
		}
		if p.Ry < ymin {
			ymin = p.Ry
		}
		if p.Ry > ymax {
			ymax = p.Ry
		}
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}

	c := NewCanvas(width, height)
	subW, subH := width*2, height*4
	for _, p := range traj {
		sx := int((p.Rx - xmin) / (xmax - xmin) * float64(subW-1))
		sy := int((ymax - p.Ry) / (ymax - ymin) * float64(subH-1))
		c.Set(sx, sy)
	}
	return c.String()
}
