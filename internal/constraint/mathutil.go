package constraint

import "math"

func acos(v float64) float64 { return math.Acos(v) }
func sqrt(v float64) float64 { return math.Sqrt(v) }
