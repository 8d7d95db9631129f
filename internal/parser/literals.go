package parser

import "strconv"

func parseIntLiteral(lit string) int64 {
	v, _ := strconv.ParseInt(lit, 10, 64)
	return v
}

func parseFloatLiteral(lit string) float64 {
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}
