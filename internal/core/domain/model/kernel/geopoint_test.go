package kernel_test

import (
	"testing"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(41.88, 12.676)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 41.88, p.Latitude(), 1e-9)
		assert.InDelta(t, 12.676, p.Longitude(), 1e-9)
	})

	t.Run("boundary_coordinates", func(t *testing.T) {
		for _, tc := range []struct{ lat, lon float64 }{
			{kernel.LatitudeMin, kernel.LongitudeMin},
			{kernel.LatitudeMax, kernel.LongitudeMax},
			{0, 0},
		} {
			_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
			require.NoError(t, err)
		}
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.01, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		require.Error(t, p.Validate())
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	p1, _ := kernel.NewGeoPoint(41.88, 12.676)
	p2, _ := kernel.NewGeoPoint(41.88, 12.676)
	p3, _ := kernel.NewGeoPoint(41.89, 12.676)

	assert.True(t, p1.IsEqual(p2))
	assert.False(t, p1.IsEqual(p3))
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	t.Run("one_degree_of_longitude_at_equator", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(0, 1)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		// 2*pi*R/360 ~ 111195 m; allow 1%.
		assert.InDelta(t, 111195, d, 111195*0.01)
	})

	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(41.88, 12.676)

		d, err := p.DistanceTo(p)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(41.88, 12.676)
		b, _ := kernel.NewGeoPoint(41.9, 12.5)

		d1, err := a.DistanceTo(b)
		require.NoError(t, err)
		d2, err := b.DistanceTo(a)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-6)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(41.88, 12.676)
		var zero kernel.GeoPoint

		_, err := p.DistanceTo(zero)

		require.Error(t, err)
	})
}
