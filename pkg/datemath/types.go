package datemath

const (
	// UTCLayout is the wire format for timestamps exchanged between services.
	UTCLayout = "2006-01-02T15:04:05Z"

	// DisplayLayout is the human-facing format, zone abbreviation last (e.g. "IST").
	DisplayLayout = "2006-01-02 15:04:05 MST"
)
