package compose

// insideRoundedRect reports whether the local point (x, y) of a w×h
// rectangle lies inside it after rounding the corners with the given
// radius. Points outside all four corner arcs but inside the rectangle
// always pass; straight edges are never rounded beyond the corner
// regions.
func insideRoundedRect(x, y, w, h, radius int) bool {
	// Top-left corner.
	if x < radius && y < radius {
		dx := radius - x
		dy := radius - y
		return dx*dx+dy*dy <= radius*radius
	}
	// Top-right corner.
	if x >= w-radius && y < radius {
		dx := x - (w - radius - 1)
		dy := radius - y
		return dx*dx+dy*dy <= radius*radius
	}
	// Bottom-left corner.
	if x < radius && y >= h-radius {
		dx := radius - x
		dy := y - (h - radius - 1)
		return dx*dx+dy*dy <= radius*radius
	}
	// Bottom-right corner.
	if x >= w-radius && y >= h-radius {
		dx := x - (w - radius - 1)
		dy := y - (h - radius - 1)
		return dx*dx+dy*dy <= radius*radius
	}
	return true
}
