package temporal

import (
	"fmt"
	"time"

	// embeds the tz database so the reference zone resolves on minimal images
	_ "time/tzdata"
)

const (
	// InputLayout is the accepted wire format: YYYY-MM-DD HH:MM:SS ±HHMM
	InputLayout = "2006-01-02 15:04:05 -0700"

	// DisplayLayout renders instants for views. Not meant to be parsed back.
	DisplayLayout = "2006-01-02 15:04:05.999999999 -07:00"

	// DefaultReferenceZone is where every stored start_time is normalized to.
	DefaultReferenceZone = "Asia/Jakarta"
)

// Codec parses, normalizes and formats todo timestamps
type Codec struct {
	reference *time.Location
	display   *time.Location
}

// NewCodec creates a codec normalizing to reference and displaying in display.
// A nil display location means the process local zone.
func NewCodec(reference, display *time.Location) *Codec {
	if reference == nil {
		reference = time.UTC
	}
	if display == nil {
		display = time.Local
	}
	return &Codec{reference: reference, display: display}
}

// NewCodecFromZone resolves zone by IANA name and builds a codec displaying in the local zone.
func NewCodecFromZone(zone string) (*Codec, error) {
	if zone == "" {
		zone = DefaultReferenceZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load reference timezone %q: %w", zone, err)
	}
	return NewCodec(loc, time.Local), nil
}

// DefaultCodec normalizes to Asia/Jakarta
func DefaultCodec() *Codec {
	c, err := NewCodecFromZone(DefaultReferenceZone)
	if err != nil {
		// tzdata is embedded, fall back to the fixed offset anyway
		return NewCodec(time.FixedZone("WIB", 7*60*60), time.Local)
	}
	return c
}

// Reference returns the storage timezone
func (c *Codec) Reference() *time.Location { return c.reference }

// Parse reads s in InputLayout. The offset is mandatory. Every field has a
// fixed width, so fractional seconds and unpadded components are rejected.
func (c *Codec) Parse(s string) (time.Time, error) {
	if len(s) != len(InputLayout) {
		return time.Time{}, fmt.Errorf("parsing time %q: expected format %q", s, InputLayout)
	}
	t, err := time.Parse(InputLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Normalize moves t into the reference timezone. The instant is unchanged.
func (c *Codec) Normalize(t time.Time) time.Time {
	return t.In(c.reference)
}

// ParseNormalized is Parse followed by Normalize.
func (c *Codec) ParseNormalized(s string) (time.Time, error) {
	t, err := c.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return c.Normalize(t), nil
}

// Format renders t in the display timezone.
func (c *Codec) Format(t time.Time) string {
	return t.In(c.display).Format(DisplayLayout)
}
