package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain value untouched", "Acme", "Acme"},
		{"semicolon forces quoting", "Acme;Corp", `"Acme;Corp"`},
		{"internal quotes doubled", `say "hi"`, `"say ""hi"""`},
		{"newline forces quoting", "line1\nline2", "\"line1\nline2\""},
		{"carriage return forces quoting", "line1\rline2", "\"line1\rline2\""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeCSV(tt.input))
		})
	}
}

func TestBuildCSV(t *testing.T) {
	start := time.Date(2025, 11, 18, 9, 30, 0, 0, time.UTC)
	company := &Company{
		ID:   uuid.New(),
		Name: "Acme;Corp",
	}
	slot := &TimeSlot{
		ID:             uuid.New(),
		CompanyID:      company.ID,
		StartDatetime:  start,
		EndDatetime:    start.Add(2 * time.Hour),
		Capacity:       20,
		AvailableSpots: 5,
	}

	mapping := ExportMapping{
		"titre":        {Source: "company.name"},
		"jour":         {Source: "slot.day_name"},
		"etat":         {Source: SourceStatic, StaticValue: "published"},
		"participants": {Source: "slot.capacity"},
	}

	out := string(BuildCSV(mapping, []ExportRow{{Slot: slot, Company: company}}))

	// BOM prefix, then the fixed header row.
	assert.True(t, strings.HasPrefix(out, "\uFEFF"))

	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
	require.Len(t, lines, 2)

	headers := strings.Split(lines[0], ";")
	require.Len(t, headers, len(DataGouvFields))
	assert.Equal(t, "Age", headers[0])
	assert.Equal(t, "Titre", headers[4])

	values := strings.Split(lines[1], ";")
	assert.Contains(t, lines[1], `"Acme;Corp"`)
	assert.Equal(t, "", values[0], "unmapped columns stay empty")
	// 2025-11-18 is a Tuesday.
	assert.Equal(t, "mardi", values[2])
	// The quoted "Acme;Corp" cell splits in two under the naive split, so
	// the etat column lands one index later.
	assert.Equal(t, "published", values[7])
}

func TestExportMappingRoundTrip(t *testing.T) {
	mapping := ExportMapping{
		"titre": {Source: "company.name"},
		"etat":  {Source: SourceStatic, StaticValue: "published"},
		"geo":   {Source: "company.geo"},
	}

	data, err := json.Marshal(mapping)
	require.NoError(t, err)

	var reloaded ExportMapping
	require.NoError(t, json.Unmarshal(data, &reloaded))

	assert.Equal(t, mapping, reloaded)
}

func TestResolveSource(t *testing.T) {
	lat, lon := 48.8566, 2.3522
	city := "Paris"
	start := time.Date(2025, 11, 21, 14, 0, 0, 0, time.UTC)

	company := &Company{
		Name:      "Forge Nord",
		City:      &city,
		Latitude:  &lat,
		Longitude: &lon,
		Themes:    []string{"metallurgie", "energie"},
	}
	slot := &TimeSlot{
		StartDatetime:  start,
		EndDatetime:    start.Add(90 * time.Minute),
		Capacity:       12,
		AvailableSpots: 2,
		VisitType:      "atelier",
		Status:         SlotOpen,
	}
	row := ExportRow{
		Slot:    slot,
		Company: company,
		Photos: []*CompanyPhoto{
			{PhotoURL: "https://img/1.jpg"},
			{PhotoURL: "https://img/2.jpg"},
		},
		Stats: SlotBookingStats{TotalBookings: 3, ConfirmedParticipants: 10},
	}

	tests := []struct {
		source   string
		expected string
	}{
		{"company.name", "Forge Nord"},
		{"company.city", "Paris"},
		{"company.geo", "48.8566,2.3522"},
		{"company.themes", "metallurgie, energie"},
		{"company.photo_first", "https://img/1.jpg"},
		{"company.photo_all", "https://img/1.jpg, https://img/2.jpg"},
		{"company.pmr_accessible", "false"},
		{"slot.date", "2025-11-21"},
		{"slot.start_time", "14:00"},
		{"slot.end_time", "15:30"},
		{"slot.day_name", "vendredi"},
		{"slot.date_range", "2025-11-21"},
		{"slot.capacity", "12"},
		{"slot.available_spots", "2"},
		{"slot.status", "open"},
		{"slot.bookings_total", "3"},
		{"slot.participants_confirmed", "10"},
		{"", ""},
		{"static", ""},
		{"unknown.source", ""},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveSource(tt.source, row))
		})
	}
}

func TestResolveSource_DateRangeAcrossDays(t *testing.T) {
	start := time.Date(2025, 11, 21, 23, 0, 0, 0, time.UTC)
	slot := &TimeSlot{StartDatetime: start, EndDatetime: start.Add(3 * time.Hour)}

	assert.Equal(t, "2025-11-21 - 2025-11-22", ResolveSource("slot.date_range", ExportRow{Slot: slot}))
}
