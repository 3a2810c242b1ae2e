package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.InDelta(t, 0, Distance(37.5665, 126.9780, 37.5665, 126.9780), 1e-9)
	})

	t.Run("seoul city hall to gangnam station", func(t *testing.T) {
		d := Distance(37.5665, 126.9780, 37.4979, 127.0276)
		assert.InDelta(t, 8.8, d, 0.2)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Distance(35.1796, 129.0756, 37.5665, 126.9780)
		b := Distance(37.5665, 126.9780, 35.1796, 129.0756)
		assert.InDelta(t, a, b, 1e-9)
		assert.InDelta(t, 325, a, 5)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		assert.InDelta(t, 111.19, Distance(0, 0, 1, 0), 0.01)
	})
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "0m"},
		{0.3, "300m"},
		{0.99949, "999m"},
		{0.9996, "1.0km"},
		{1, "1.0km"},
		{1.26, "1.3km"},
		{12.34, "12.3km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.km), "km=%v", tt.km)
	}
}
