package costkey

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(meta, cost string) Record {
	return Record{"user:scalr-meta": meta, "Cost": cost}
}

func TestExtract_EmitsNonEmptySlots(t *testing.T) {
	triples, reason, err := Extract(record("v1:e-1::fr-7:srv-3", "10.5"), DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, SkipNone, reason)

	cost := decimal.RequireFromString("10.5")
	require.Len(t, triples, 3)
	assert.Equal(t, Triple{Type: Env, ID: "e-1", Cost: cost}, triples[0])
	assert.Equal(t, Triple{Type: FarmRole, ID: "fr-7", Cost: cost}, triples[1])
	assert.Equal(t, Triple{Type: Server, ID: "srv-3", Cost: cost}, triples[2])
	for _, tr := range triples {
		assert.NotEqual(t, Farm, tr.Type)
	}
}

func TestExtract_SkipsWithoutError(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		reason SkipReason
	}{
		{name: "unsupported version", rec: record("v2:e-1:f-2::", "1"), reason: SkipUnsupportedVersion},
		{name: "unsupported version with short key", rec: record("v0:e-1", "1"), reason: SkipUnsupportedVersion},
		{name: "empty metadata", rec: record("", "1"), reason: SkipMissingKey},
		{name: "absent metadata column", rec: Record{"Cost": "1"}, reason: SkipMissingKey},
		{name: "all slots empty", rec: record("v1::::", "1"), reason: SkipNoObjects},
		{name: "no objects leaves cost unparsed", rec: record("v1::::", "n/a"), reason: SkipNoObjects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triples, reason, err := Extract(tt.rec, DefaultColumns())
			require.NoError(t, err)
			assert.Empty(t, triples)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestExtract_MalformedKey(t *testing.T) {
	triples, reason, err := Extract(record("v1:e-1:f-2", "3"), DefaultColumns())
	require.Error(t, err)
	assert.Empty(t, triples)
	assert.Equal(t, SkipMalformedKey, reason)

	var keyErr *MalformedKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, 3, keyErr.Parts)
	assert.Equal(t, 5, keyErr.Required)
}

func TestExtract_OverlongObjectID(t *testing.T) {
	long := strings.Repeat("x", 100)
	triples, reason, err := Extract(record("v1:e-1:"+long+"::", "3"), DefaultColumns())
	assert.Empty(t, triples)
	assert.Equal(t, SkipMalformedKey, reason)

	var keyErr *MalformedKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, long, keyErr.ID)
	assert.Contains(t, keyErr.Error(), "100 characters exceeds 64")
}

func TestExtract_ObjectIDAtWidthLimit(t *testing.T) {
	id := strings.Repeat("é", MaxObjectIDLength)
	triples, reason, err := Extract(record("v1:"+id+":::", "1"), DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, SkipNone, reason)
	require.Len(t, triples, 1)
	assert.Equal(t, id, triples[0].ID)
}

func TestExtract_MalformedCost(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{name: "not a number", rec: record("v1:e-1:::", "ten")},
		{name: "empty cost", rec: record("v1:e-1:::", "")},
		{name: "missing cost column", rec: Record{"user:scalr-meta": "v1:e-1:::"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triples, reason, err := Extract(tt.rec, DefaultColumns())
			assert.Empty(t, triples)
			assert.Equal(t, SkipMalformedCost, reason)

			var costErr *MalformedCostError
			require.True(t, errors.As(err, &costErr))
		})
	}
}

func TestExtract_ExtraPartsIgnored(t *testing.T) {
	triples, _, err := Extract(record("v1:::f-9::trailing", "2"), DefaultColumns())
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, Server, triples[0].Type)
	assert.Equal(t, "f-9", triples[0].ID)
}

func TestExtract_CustomColumns(t *testing.T) {
	cols := Columns{Cost: "UnblendedCost", Metadata: "tag"}
	triples, _, err := Extract(Record{"tag": "v1:e-1:f-1::", "UnblendedCost": "0.25"}, cols)
	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, "0.25", triples[0].Cost.String())
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "10.5", want: "10.5"},
		{raw: " 2.25 ", want: "2.25"},
		{raw: "-1", want: "-1"},
		{raw: "1.5E-3", want: "0.0015"},
		{raw: "0", want: "0"},
	}
	for _, tt := range tests {
		got, err := ParseCost(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got.String(), tt.raw)
	}

	_, err := ParseCost("   ")
	assert.Error(t, err)
	_, err = ParseCost("1,5")
	assert.Error(t, err)
}
