package uihelpers

// ComputeChartDimensions applies the width/height clamp rules used for the
// dashboard chart slots. Input: desired raw width (e.g. half the window
// width for the two-column grid). Returns clamped width and height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW - 24 // grid padding and scrollbar margin
	if w < 480 {
		w = 480
	}
	if w > 960 {
		w = 960
	}
	// bar charts with rotated labels want a taller aspect than line charts
	h := int(float32(w) * 0.75)
	if h < 360 {
		h = 360
	}
	if h > 640 {
		h = 640
	}
	return w, h
}
