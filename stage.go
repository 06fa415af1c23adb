package shader

import "fmt"

// Stage identifies one compilation unit of a program.
type Stage int

const (
	Vertex Stage = iota
	Fragment
	Geometry

	// Link is the pseudo-stage reported for program link failures.
	Link
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	case Geometry:
		return "GEOMETRY"
	case Link:
		return "PROGRAM"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}
