package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRegion_Boundaries(t *testing.T) {
	tests := []struct {
		zip  string
		want Region
	}{
		{"00000", RegionNortheast},
		{"10001", RegionNortheast},
		{"20500", RegionMidAtlantic},
		{"30301", RegionSoutheast},
		{"48104", RegionMidwest},
		{"55401", RegionMidwest},
		{"60601", RegionMidwest},
		{"77777", RegionSouthwest},
		{"80202", RegionMountain},
		{"99999", RegionWest},
		{"", RegionNational},
		{"X1234", RegionNational},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRegion(tt.zip))
		})
	}
}

func TestResolveRegion_DependsOnlyOnFirstDigit(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		first := ResolveRegion(string(d) + "0000")
		for _, rest := range []string{"1234", "9999", "5050", "0001"} {
			assert.Equal(t, first, ResolveRegion(string(d)+rest), "zip %c%s", d, rest)
		}
	}
}

func TestIsValidZIP(t *testing.T) {
	assert.True(t, IsValidZIP("48104"))
	assert.True(t, IsValidZIP("00000"))

	assert.False(t, IsValidZIP("1234A"))
	assert.False(t, IsValidZIP("1234"))
	assert.False(t, IsValidZIP("123456"))
	assert.False(t, IsValidZIP(" 4810"))
	assert.False(t, IsValidZIP("４８１０４"))
	assert.False(t, IsValidZIP(""))
}

func TestRegion_Label(t *testing.T) {
	assert.Equal(t, "Midwest", RegionMidwest.Label())
	assert.Equal(t, "Midatlantic", RegionMidAtlantic.Label())
	assert.Equal(t, "National", RegionNational.Label())
	assert.Equal(t, "", Region("").Label())
}

func TestRegionFactorTable_Factor(t *testing.T) {
	table := RegionFactorTable{"midwest": 1.1}

	assert.Equal(t, 1.1, table.Factor(RegionMidwest))
	assert.Equal(t, 1.0, table.Factor(RegionSouthwest))
	assert.Equal(t, 1.0, RegionFactorTable(nil).Factor(RegionWest))
}
