package mask

import "github.com/backmassage/brightmask/internal/imageio"

// Set is the sample value written for a set mask pixel.
const Set uint8 = 255

// Threshold compares every sample of g against t independently and returns
// a mask with the same channel count: Set where the sample is strictly
// greater than t, 0 otherwise.
func Threshold(g *imageio.Grid, t uint8) *imageio.Grid {
	m := imageio.NewGrid(g.Width, g.Height, g.Channels)
	for i, v := range g.Pix {
		if v > t {
			m.Pix[i] = Set
		}
	}
	return m
}

// Collapse reduces a per-channel mask to a single channel. A pixel is set
// only when every one of its channels is set, so one bright pixel counts
// once and a pixel with any dark channel does not count at all. A
// single-channel mask is returned as is.
func Collapse(m *imageio.Grid) *imageio.Grid {
	if m.Channels == 1 {
		return m
	}
	out := imageio.NewGrid(m.Width, m.Height, 1)
	n := m.Pixels()
	for i := 0; i < n; i++ {
		px := m.Pix[i*m.Channels : (i+1)*m.Channels]
		all := true
		for _, v := range px {
			if v == 0 {
				all = false
				break
			}
		}
		if all {
			out.Pix[i] = Set
		}
	}
	return out
}

// CountNonZero returns the number of non-zero samples in a single-channel grid.
func CountNonZero(m *imageio.Grid) int64 {
	var n int64
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
