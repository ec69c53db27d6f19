package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAttrs(extra map[string]any) map[string]any {
	attrs := map[string]any{"city_id": "C1", "user_id": "U1", "name": "Nest"}
	for k, v := range extra {
		attrs[k] = v
	}

	return attrs
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		got, err := ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	_, err := ParseKind("BaseModel")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreate_Attributes(t *testing.T) {
	tests := []struct {
		name    string
		extra   map[string]any
		wantErr error
	}{
		{"whole number as float", map[string]any{"number_rooms": 3.0}, nil},
		{"fractional integer field", map[string]any{"number_rooms": 3.7}, ErrInvalidField},
		{"negative fraction", map[string]any{"price_by_night": -0.5}, ErrInvalidField},
		{"negative integer", map[string]any{"price_by_night": -1}, ErrInvalidField},
		{"latitude out of range", map[string]any{"latitude": 100.0}, ErrInvalidField},
		{"longitude out of range", map[string]any{"longitude": -181}, ErrInvalidField},
		{"wrong type", map[string]any{"max_guest": "four"}, ErrInvalidField},
		{"missing name", map[string]any{"name": ""}, ErrMissingAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Create(KindPlace, placeAttrs(tt.extra))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, e)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, e.(*Place).NumberRooms)
		})
	}
}

func TestCreate_AgreesWithSetField(t *testing.T) {
	values := []any{3.7, -0.5, -1}

	for _, v := range values {
		_, createErr := Create(KindPlace, placeAttrs(map[string]any{"price_by_night": v}))
		setErr := NewPlace("C1", "U1", "Nest").SetField("price_by_night", v)

		assert.ErrorIs(t, createErr, ErrInvalidField, "create %v", v)
		assert.ErrorIs(t, setErr, ErrInvalidField, "set %v", v)
	}
}

func TestCreate_AssignsIdentityAndIgnoresTimestamps(t *testing.T) {
	before := Now()

	e, err := Create(KindState, map[string]any{
		"name":       "Texas",
		ClassKey:     "City",
		"created_at": "2001-01-01T00:00:00.000000",
		"updated_at": "2001-01-01T00:00:00.000000",
	})
	require.NoError(t, err)

	state := e.(*State)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, KindState, state.Kind())
	assert.False(t, state.CreatedAt.Before(before))
	assert.Equal(t, state.CreatedAt, state.UpdatedAt)

	withID, err := Create(KindState, map[string]any{"id": "fixed", "name": "Utah"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", withID.GetID())
}

func TestCreate_UnknownKind(t *testing.T) {
	_, err := Create(Kind("Planet"), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestFromRecord_RoundTrip(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)

	place := NewPlace("C1", "U1", "Nest")
	place.Description = "Treehouse"
	place.NumberRooms = 2
	place.PriceByNight = 90
	place.Latitude = 37.7749
	place.Longitude = -122.4194
	place.LinkAmenity("A1")

	user := NewUser("ada@example.com", "hash")
	user.FirstName = "Ada"

	entities := []Entity{
		NewState("California"),
		NewCity("S1", "San Francisco"),
		NewAmenity("Wifi"),
		user,
		place,
		NewReview("P1", "U1", "Lovely"),
	}

	for _, e := range entities {
		t.Run(string(e.Kind()), func(t *testing.T) {
			e.Meta().CreatedAt = stamp
			e.Meta().UpdatedAt = stamp.Add(time.Microsecond)

			got, err := FromRecord(e.ToRecord())
			require.NoError(t, err)
			assert.Equal(t, e.ToRecord(), got.ToRecord())
			assert.True(t, got.Meta().CreatedAt.Equal(stamp))
			assert.Equal(t, 123456000, got.Meta().CreatedAt.Nanosecond())

			// Through JSON, as the file and sqlite stores keep it.
			raw, err := json.Marshal(e.ToRecord())
			require.NoError(t, err)
			var rec Record
			require.NoError(t, json.Unmarshal(raw, &rec))

			fromJSON, err := FromRecord(rec)
			require.NoError(t, err)
			assert.Equal(t, e.ToRecord(), fromJSON.ToRecord())
		})
	}
}

func TestFromRecord_Malformed(t *testing.T) {
	valid := func() Record {
		return Record{
			ClassKey:     "State",
			"id":         "S1",
			"name":       "Texas",
			"created_at": "2024-03-01T12:00:00.000000",
			"updated_at": "2024-03-01T12:00:00.000001",
		}
	}

	tests := []struct {
		name   string
		mutate func(Record)
	}{
		{"unknown class", func(r Record) { r[ClassKey] = "Planet" }},
		{"missing class", func(r Record) { delete(r, ClassKey) }},
		{"missing id", func(r Record) { delete(r, "id") }},
		{"missing created_at", func(r Record) { delete(r, "created_at") }},
		{"missing updated_at", func(r Record) { delete(r, "updated_at") }},
		{"unparsable timestamp", func(r Record) { r["created_at"] = "yesterday" }},
		{"updated before created", func(r Record) { r["updated_at"] = "2024-02-29T12:00:00.000000" }},
		{"missing required attribute", func(r Record) { delete(r, "name") }},
	}

	_, err := FromRecord(valid())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid()
			tt.mutate(rec)

			_, err := FromRecord(rec)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestFromRecord_FractionalCountIsMalformed(t *testing.T) {
	rec := NewPlace("C1", "U1", "Nest").ToRecord()
	rec["number_rooms"] = 2.5

	_, err := FromRecord(rec)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestCompare(t *testing.T) {
	older := NewState("A")
	newer := NewState("B")
	newer.CreatedAt = older.CreatedAt.Add(time.Second)
	city := NewCity("S1", "C")

	assert.Negative(t, Compare(older, newer))
	assert.Positive(t, Compare(newer, older))
	assert.Negative(t, Compare(city, older), "City sorts before State")
	assert.Zero(t, Compare(older, older))
}
