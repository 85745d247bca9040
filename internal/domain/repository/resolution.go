package repository

// Resolution represents provider candle resolutions.
type Resolution string

const (
	Res1   Resolution = "1"
	Res5   Resolution = "5"
	Res15  Resolution = "15"
	Res30  Resolution = "30"
	Res60  Resolution = "60"
	ResDay Resolution = "D"
	ResWk  Resolution = "W"
	ResMo  Resolution = "M"
)

// IsValidResolution returns true if res is a supported resolution.
func IsValidResolution(res Resolution) bool {
	switch res {
	case Res1, Res5, Res15, Res30, Res60, ResDay, ResWk, ResMo:
		return true
	default:
		return false
	}
}

// DefaultResolution returns the default candle resolution.
func DefaultResolution() Resolution { return ResDay }

// NormalizeResolution converts a raw string to a valid resolution (or default).
func NormalizeResolution(s string) Resolution {
	if s == "" {
		return DefaultResolution()
	}
	res := Resolution(s)
	if IsValidResolution(res) {
		return res
	}
	return DefaultResolution()
}
