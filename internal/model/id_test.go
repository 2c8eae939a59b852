package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1729350000123)

	t.Run("uses clock reading in milliseconds", func(t *testing.T) {
		assert.Equal(t, int64(1729350000123), NewID(now, 0))
	})

	t.Run("clock behind last id bumps past it", func(t *testing.T) {
		assert.Equal(t, int64(1729350000124), NewID(now, 1729350000123))
		assert.Equal(t, int64(1729350009000), NewID(now, 1729350008999))
	})

	t.Run("ids strictly increase for a frozen clock", func(t *testing.T) {
		var last int64
		for i := 0; i < 5; i++ {
			id := NewID(now, last)
			assert.Greater(t, id, last)
			last = id
		}
	})
}

func TestParseRef(t *testing.T) {
	digits, err := ParseRef("#0000")
	require.NoError(t, err)
	assert.Equal(t, "0000", digits)

	digits, err = ParseRef("0")
	require.NoError(t, err)
	assert.Equal(t, "0", digits)

	_, err = ParseRef("-5")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain number", input: "1729350000123", want: 1729350000123},
		{name: "hash prefix", input: "#42", want: 42},
		{name: "small number", input: "7", want: 7},
		// Error cases
		{name: "invalid - empty", input: "", wantErr: true},
		{name: "invalid - letters", input: "abc", wantErr: true},
		{name: "invalid - zero", input: "0", wantErr: true},
		{name: "invalid - negative", input: "-5", wantErr: true},
		{name: "invalid - trailing junk", input: "12x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAndShortID(t *testing.T) {
	assert.Equal(t, "1729350000123", FormatID(1729350000123))
	assert.Equal(t, "0123", ShortID(1729350000123, 4))
	assert.Equal(t, "42", ShortID(42, 4))
	assert.Equal(t, "1729350000123", ShortID(1729350000123, 0))
}

func TestMaxID(t *testing.T) {
	assert.Equal(t, int64(0), MaxID(nil))
	assert.Equal(t, int64(9), MaxID([]Task{{ID: 3}, {ID: 9}, {ID: 5}}))
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{input: "high", want: PriorityHigh},
		{input: "HIGH", want: PriorityHigh},
		{input: "h", want: PriorityHigh},
		{input: "medium", want: PriorityMedium},
		{input: "m", want: PriorityMedium},
		{input: " low ", want: PriorityLow},
		{input: "alta", want: PriorityHigh},
		{input: "media", want: PriorityMedium},
		{input: "baixa", want: PriorityLow},
		{input: "urgent", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "HIGH", PriorityHigh.Label())
	assert.Equal(t, "MEDIUM", PriorityMedium.Label())
	assert.Equal(t, "LOW", PriorityLow.Label())
	assert.Equal(t, "LOW", Priority("bogus").Label())
	assert.False(t, Priority("bogus").Valid())
}

func TestPriorityNormalize(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityHigh.Normalize())
	assert.Equal(t, PriorityLow, Priority("urgent").Normalize())
	assert.Equal(t, PriorityLow, Priority("").Normalize())
}

func TestIDWidth(t *testing.T) {
	tasks := []Task{{ID: 1729350000001}, {ID: 1729350000002}}
	assert.Equal(t, 4, IDWidth(tasks))

	tasks = []Task{{ID: 1729350000001}, {ID: 1729360000001}}
	assert.Equal(t, 8, IDWidth(tasks))

	assert.Equal(t, 3, IDWidth([]Task{{ID: 123}}))
	assert.Equal(t, 0, IDWidth(nil))
}
