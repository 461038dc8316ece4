package colors

import "math"

// WCAGAAMinContrastRatio is the WCAG AA minimum for normal text.
const WCAGAAMinContrastRatio = 4.5

var (
	darkText  = FromRGB(0, 0, 0)
	lightText = FromRGB(255, 255, 255)
)

// RelativeLuminance is the WCAG relative luminance of c, in [0,1].
func RelativeLuminance(c Color) float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio is the WCAG contrast ratio between two colors, in [1,21].
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// BestTextColor picks black or white text for background, whichever contrasts more.
func BestTextColor(background Color) (Color, float64) {
	dark := ContrastRatio(darkText, background)
	light := ContrastRatio(lightText, background)
	if light > dark {
		return lightText, light
	}
	return darkText, dark
}
