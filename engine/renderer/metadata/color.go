package metadata

/**
 * @brief A resolved display color. Value is the CSS form the color was
 * produced in ("#RRGGBB" or "hsl(h, s%, l%)"), R, G and B are the same color
 * in [0, 1] sRGB for backends.
 */
type Color struct {
	Value   string
	R, G, B float32
}
