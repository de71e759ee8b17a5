package temporal

import (
	"testing"
	"time"
)

func TestParseAcceptsOffsetLayout(t *testing.T) {
	c := DefaultCodec()

	got, err := c.Parse("2024-01-15 09:00:00 +0700")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	got, err = c.Parse("2024-01-15 09:00:00 -0330")
	if err != nil {
		t.Fatalf("parse negative offset: %v", err)
	}
	want = time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	c := DefaultCodec()
	cases := map[string]string{
		"missing offset":     "2024-01-15 09:00:00",
		"iso separators":     "2024-01-15T09:00:00 +0700",
		"slash date":         "2024/01/15 09:00:00 +0700",
		"colon offset":       "2024-01-15 09:00:00 +07:00",
		"zulu":               "2024-01-15 09:00:00 Z",
		"non numeric":        "2024-0a-15 09:00:00 +0700",
		"month out of range": "2024-13-15 09:00:00 +0700",
		"hour out of range":  "2024-01-15 25:00:00 +0700",
		"day out of range":   "2024-02-30 09:00:00 +0700",
		"empty":              "",
		"trailing garbage":   "2024-01-15 09:00:00 +0700 x",
		"fractional seconds": "2024-01-15 09:00:00.5 +0700",
		"comma fraction":     "2024-01-15 09:00:00,123456 +0700",
		"one digit hour":     "2024-01-15 9:00:00 +0700",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Parse(input); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}

func TestNormalizeMovesToReferenceZone(t *testing.T) {
	c := DefaultCodec()

	parsed, err := c.ParseNormalized("2024-01-15 09:00:00 +0000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Location().String() != DefaultReferenceZone {
		t.Fatalf("expected location %s, got %s", DefaultReferenceZone, parsed.Location())
	}
	if parsed.Hour() != 16 {
		t.Fatalf("expected 16h in Jakarta, got %d", parsed.Hour())
	}
	if !parsed.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("normalization must not change the instant")
	}
}

func TestFormatUsesDisplayZone(t *testing.T) {
	c := NewCodec(time.UTC, time.FixedZone("X", 2*60*60))

	got := c.Format(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	if got != "2024-01-15 11:00:00 +02:00" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestNewCodecFromZoneUnknown(t *testing.T) {
	if _, err := NewCodecFromZone("Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
