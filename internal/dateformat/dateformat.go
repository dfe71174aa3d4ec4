// Package dateformat provides the built-in numFmtId date/time range check
// style.IsDateFormat relies on.
//
// It exists solely to eliminate duplicated code; it has no public-API
// contract of its own.  All callers are within the same module.
package dateformat

// IsBuiltInDateID reports whether id is a built-in Excel numFmtId that
// represents a date, datetime, or time format.
//
// The recognised IDs follow ECMA-376 §18.8.30:
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
//
// This function intentionally includes the time-only IDs 18–21 so that
// style.IsDateFormat treats them as date/time values requiring
// serial-number conversion.
func IsBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		// IDs 14-17: date formats (m/d/yy, d-mmm-yy, d-mmm, mmm-yy)
		// IDs 18-21: time formats (h:mm AM/PM, h:mm:ss AM/PM, h:mm, h:mm:ss)
		// ID 22:     datetime format (m/d/yy h:mm)
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}
