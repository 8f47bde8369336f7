package csvload

import (
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// missingMarkers are the cell values read as "no value".
var missingMarkers = map[string]struct{}{
	"":         {},
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"<NA>":     {},
	"NaN":      {},
	"-NaN":     {},
	"nan":      {},
	"-nan":     {},
	"NULL":     {},
	"null":     {},
	"None":     {},
	"1.#IND":   {},
	"-1.#IND":  {},
	"1.#QNAN":  {},
	"-1.#QNAN": {},
}

func isMissing(cell string) bool {
	v := strings.TrimSpace(cell)
	if _, ok := missingMarkers[v]; ok {
		return true
	}
	// NaN in any case and sign
	return strings.EqualFold(strings.TrimLeft(v, "+-"), "nan")
}

// parseFinite accepts decimal numbers only. Inf and Infinity are text.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// inferColumnType narrows a column from the most specific type that fits
// every non-missing cell.
func inferColumnType(records [][]string, col int) csvmongo.ColumnType {
	seen := false
	isInt, isFloat, isBool := true, true, true

	for _, rec := range records {
		cell := rec[col]
		if isMissing(cell) {
			continue
		}
		seen = true
		v := strings.TrimSpace(cell)

		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat && !isInt {
			if _, ok := parseFinite(v); !ok {
				isFloat = false
			}
		}
		if isBool {
			if _, ok := parseBool(v); !ok {
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			return csvmongo.ColumnTypeString
		}
	}

	switch {
	case !seen:
		return csvmongo.ColumnTypeNull
	case isInt:
		return csvmongo.ColumnTypeInt
	case isFloat:
		return csvmongo.ColumnTypeFloat
	case isBool:
		return csvmongo.ColumnTypeBool
	default:
		return csvmongo.ColumnTypeString
	}
}

// convertCell converts a raw cell to the column's type. Inference already
// proved the conversion succeeds, so parse errors cannot occur here.
func convertCell(cell string, typ csvmongo.ColumnType) any {
	if isMissing(cell) {
		return nil
	}
	v := strings.TrimSpace(cell)

	switch typ {
	case csvmongo.ColumnTypeInt:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case csvmongo.ColumnTypeFloat:
		f, _ := parseFinite(v)
		return f
	case csvmongo.ColumnTypeBool:
		b, _ := parseBool(v)
		return b
	default:
		return cell
	}
}
