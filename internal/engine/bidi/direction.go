package bidi

// Direction is the reading direction of a paragraph or run.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
)

// IsLTR returns true for left-to-right.
func (d Direction) IsLTR() bool {
	return d == LeftToRight
}

// IsRTL returns true for right-to-left.
func (d Direction) IsRTL() bool {
	return d == RightToLeft
}

// String returns the direction name.
func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}
