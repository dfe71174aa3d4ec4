package style

// BorderSide mirrors one side (<left>, <right>, <top>, <bottom>, <diagonal>)
// of a <border> element: a raw border-line style token and a color spec.
// An empty Style means "no border" on that side.
type BorderSide struct {
	Style string
	Color string
}

// Border mirrors an OOXML <border> element's four sides plus the diagonal
// direction flags.
type Border struct {
	Left, Right, Top, Bottom, Diagonal BorderSide
	DiagonalUp, DiagonalDown           bool
}
