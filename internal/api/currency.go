// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.English)

// FormatINR renders a price as Indian rupees with thousands separators,
// e.g. ₹1,234.50. Values that are not numbers are returned unchanged and a
// nil pointer renders as "".
func FormatINR(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *float64:
		if x == nil {
			return ""
		}
		return FormatINR(*x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprint(x)
		}
		return inrPrinter.Sprintf("₹%.2f", x)
	case float32:
		return FormatINR(float64(x))
	case int:
		return FormatINR(float64(x))
	case int64:
		return FormatINR(float64(x))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return x
		}
		return FormatINR(f)
	default:
		return fmt.Sprint(v)
	}
}
