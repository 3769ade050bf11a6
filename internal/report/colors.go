package report

import "coursedash/internal/models"

// ColorMap assigns a display colour to a status. The zero value maps nothing.
// It has no mutators; DefaultColorMap builds a fresh copy on each call.
type ColorMap struct {
	colors map[models.Status]string
}

// NewColorMap copies the given mapping.
func NewColorMap(colors map[models.Status]string) ColorMap {
	m := make(map[models.Status]string, len(colors))
	for k, v := range colors {
		m[k] = v
	}
	return ColorMap{colors: m}
}

func DefaultColorMap() ColorMap {
	return NewColorMap(map[models.Status]string{
		models.StatusCompleted:  "green",
		models.StatusInProgress: "yellow",
		models.StatusNotStarted: "red",
	})
}

// Color returns the colour for a status, or false when the renderer
// should fall back to its own palette.
func (c ColorMap) Color(s models.Status) (string, bool) {
	color, ok := c.colors[s]
	return color, ok
}

// Discrete returns the mapping keyed by status text, for chart specs.
func (c ColorMap) Discrete() map[string]string {
	out := make(map[string]string, len(c.colors))
	for k, v := range c.colors {
		out[string(k)] = v
	}
	return out
}
