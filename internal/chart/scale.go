package chart

import "github.com/lucasb-eyer/go-colorful"

// Scale is a two-stop sequential color scale blended in Lab space.
type Scale struct {
	Low  colorful.Color
	High colorful.Color
}

var (
	Reds    = Scale{Low: mustHex("#fee0d2"), High: mustHex("#a50f15")}
	Oranges = Scale{Low: mustHex("#fee6ce"), High: mustHex("#a63603")}
)

// At returns the hex color for v on [0, max]. Values outside the range are clamped.
func (s Scale) At(v, max int) string {
	if max <= 0 {
		return s.High.Hex()
	}
	t := float64(v) / float64(max)
	switch {
	case t <= 0:
		return s.Low.Hex()
	case t >= 1:
		return s.High.Hex()
	}
	return s.Low.BlendLab(s.High, t).Clamped().Hex()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
