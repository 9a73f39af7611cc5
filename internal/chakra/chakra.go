// Package chakra defines the seven canonical chakra names shared by
// character display values and the metaphysics flux layer.
package chakra

const (
	Muladhara    = "muladhara"
	Svadhisthana = "svadhisthana"
	Manipura     = "manipura"
	Anahata      = "anahata"
	Vishuddha    = "vishuddha"
	Ajna         = "ajna"
	Sahasrara    = "sahasrara"
)

// Keys lists the chakras in their canonical root-to-crown order.
var Keys = []string{
	Muladhara,
	Svadhisthana,
	Manipura,
	Anahata,
	Vishuddha,
	Ajna,
	Sahasrara,
}

// Set maps chakra names to numeric levels. Both character display values
// and metaphysics flux use this shape; levels stay within [0,100].
type Set map[string]float64

// IsValid reports whether name is one of the seven recognized chakras.
func IsValid(name string) bool {
	for _, k := range Keys {
		if k == name {
			return true
		}
	}
	return false
}

// DefaultSeed returns the canonical starting distribution used for new
// characters and lazily created metaphysics state.
func DefaultSeed() Set {
	return Set{
		Muladhara:    10,
		Svadhisthana: 5,
		Manipura:     5,
		Anahata:      5,
		Vishuddha:    5,
		Ajna:         2,
		Sahasrara:    1,
	}
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Sum returns the total of all levels in the set.
func (s Set) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Clamp bounds a level to the valid [0,100] range.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
