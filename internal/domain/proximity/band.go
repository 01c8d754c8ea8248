package proximity

import "orefinder/internal/domain/voxel"

type Band string

const (
	BandVeryCold    Band = "very_cold"
	BandOneBlockHot Band = "oneblock_hot"
	BandVeryHot     Band = "very_hot"
	BandHot         Band = "hot"
	BandWarm        Band = "warm"
	BandLukewarm    Band = "lukewarm"
	BandCold        Band = "cold"
)

// Bands lists every band from hottest to coldest.
var Bands = []Band{BandOneBlockHot, BandVeryHot, BandHot, BandWarm, BandLukewarm, BandCold, BandVeryCold}

// BandFor maps a search result to its message band. Distances of 20 and
// beyond have no band.
func BandFor(r voxel.Result) (Band, bool) {
	if !r.Found {
		return BandVeryCold, true
	}
	switch d := r.Distance; {
	case d < 2:
		return BandOneBlockHot, true
	case d < 4:
		return BandVeryHot, true
	case d < 6:
		return BandHot, true
	case d < 8:
		return BandWarm, true
	case d < 15:
		return BandLukewarm, true
	case d < 20:
		return BandCold, true
	default:
		return "", false
	}
}

func (b Band) Color() Color {
	switch b {
	case BandVeryCold:
		return ColorBlue
	case BandOneBlockHot:
		return ColorDarkRed
	case BandVeryHot, BandHot:
		return ColorRed
	case BandWarm:
		return ColorGold
	case BandLukewarm:
		return ColorYellow
	case BandCold:
		return ColorAqua
	default:
		return ColorNone
	}
}
