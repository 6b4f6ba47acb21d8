package generator

import (
	"schemaforge/internal/dialect"
	"schemaforge/internal/model"
)

// sampleLiteral picks a fixed, type-appropriate placeholder for sample-data
// inserts. Values are constant so generation stays deterministic.
func sampleLiteral(c *model.Column, a dialect.Adapter) string {
	if c.Default != nil {
		return defaultLiteral(c, a)
	}

	switch {
	case c.Type == model.TypeBoolean:
		return a.BooleanLiteral(true)
	case c.Type == model.TypeUUID:
		return a.QuoteString("00000000-0000-0000-0000-000000000000")
	case c.Type == model.TypeJSON:
		return a.QuoteString("{}")
	case c.Type == model.TypeBlob:
		// no portable blob literal
		if c.Nullable {
			return "NULL"
		}
		return a.QuoteString("")
	case c.Type == model.TypeDate:
		return a.QuoteString("2024-01-01")
	case c.Type == model.TypeTime:
		return a.QuoteString("00:00:00")
	case c.Type == model.TypeDatetime, c.Type == model.TypeTimestamp:
		return a.QuoteString("2024-01-01 00:00:00")
	case c.Type.IntegerFamily():
		return "1"
	case c.Type.Fractional():
		return "1.0"
	default:
		sample := "sample"
		if c.Type == model.TypeChar && c.Length > 0 && c.Length < len(sample) {
			sample = sample[:c.Length]
		}
		return a.QuoteString(sample)
	}
}
