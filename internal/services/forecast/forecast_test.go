package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iweather/internal/models"
	"iweather/internal/services/forecast"
)

// fixtures use a fixed zone so day/hour bucketing does not depend on the
// machine running the tests.
var testZone = time.FixedZone("TEST", 0)

var testBase = time.Date(2025, time.March, 10, 0, 0, 0, 0, testZone) // a Monday

// makeSamples builds n samples on the provider's 3-hour cadence starting
// at testBase.
func makeSamples(n int) []models.ForecastSample {
	samples := make([]models.ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		t := testBase.Add(time.Duration(i) * 3 * time.Hour)
		samples = append(samples, models.ForecastSample{
			Timestamp:   t.Unix(),
			Temp:        15.0,
			TempMin:     10.0,
			TempMax:     20.0,
			Icon:        "04d",
			Description: "scattered clouds",
		})
	}
	return samples
}

func TestHourlyCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 8, 12, 40} {
		points := forecast.Hourly(makeSamples(n), testZone)

		expected := n
		if expected > 8 {
			expected = 8
		}
		assert.Len(t, points, expected, "n=%d", n)
	}
}

func TestHourlyLabelsAndRounding(t *testing.T) {
	samples := makeSamples(8)
	samples[0].Temp = 21.5
	samples[1].Temp = 21.4

	points := forecast.Hourly(samples, testZone)
	require.Len(t, points, 8)

	assert.Equal(t, "00h", points[0].Hour)
	assert.Equal(t, 22, points[0].Temp)
	assert.Equal(t, "03h", points[1].Hour)
	assert.Equal(t, 21, points[1].Temp)
	assert.Equal(t, "06h", points[2].Hour)
	assert.Equal(t, "21h", points[7].Hour)
}

func TestHourlySubzeroHalvesRoundUp(t *testing.T) {
	samples := makeSamples(3)
	samples[0].Temp = -0.5
	samples[1].Temp = -1.5
	samples[2].Temp = -1.6

	points := forecast.Hourly(samples, testZone)
	require.Len(t, points, 3)

	assert.Equal(t, 0, points[0].Temp)
	assert.Equal(t, -1, points[1].Temp)
	assert.Equal(t, -2, points[2].Temp)
}

func TestHourlyEmptyInput(t *testing.T) {
	points := forecast.Hourly(nil, testZone)
	assert.Empty(t, points)
}

func TestDailyCountPerDistinctDay(t *testing.T) {
	// 40 samples on a 3-hour cadence starting at midnight span 5 full days.
	digests := forecast.Daily(makeSamples(40), "en", testZone)
	assert.Len(t, digests, 5)

	// 48 samples span 6 distinct days; output stays truncated to 5.
	digests = forecast.Daily(makeSamples(48), "en", testZone)
	assert.Len(t, digests, 5)

	// A single sample makes a single digest.
	digests = forecast.Daily(makeSamples(1), "en", testZone)
	assert.Len(t, digests, 1)

	assert.Empty(t, forecast.Daily(nil, "en", testZone))
}

func TestDailyFoldThenRound(t *testing.T) {
	noon := testBase.Add(12 * time.Hour)
	samples := []models.ForecastSample{
		{Timestamp: testBase.Unix(), TempMin: 10.2, TempMax: 15.8, Icon: "04d", Description: "scattered clouds"},
		{Timestamp: noon.Unix(), TempMin: 9.9, TempMax: 16.1, Icon: "04d", Description: "scattered clouds"},
	}

	digests := forecast.Daily(samples, "en", testZone)
	require.Len(t, digests, 1)

	assert.Equal(t, 10, digests[0].Min)
	assert.Equal(t, 16, digests[0].Max)
}

func TestDailyMiddayWindowFallback(t *testing.T) {
	// Samples at 00, 03, 06 and 09 only — nothing in [12,15].
	samples := makeSamples(4)

	digests := forecast.Daily(samples, "en", testZone)
	require.Len(t, digests, 1)

	assert.Equal(t, "https://openweathermap.org/img/wn/01d.png", digests[0].IconURL)
	assert.Equal(t, "clear sky", digests[0].Description)
}

func TestDailyRepresentativeConditions(t *testing.T) {
	samples := makeSamples(40)

	// Shift the day's 12h sample to 13h and mark it rainy; still inside
	// the midday window and ahead of the 15h sample.
	samples[4].Timestamp = testBase.Add(13 * time.Hour).Unix()
	samples[4].Icon = "10d"
	samples[4].Description = "light rain"

	digests := forecast.Daily(samples, "en", testZone)
	require.Len(t, digests, 5)

	assert.Contains(t, digests[0].IconURL, "10d")
	assert.Equal(t, "light rain", digests[0].Description)

	// The other days keep their own midday conditions.
	assert.Contains(t, digests[1].IconURL, "04d")
	assert.Equal(t, "scattered clouds", digests[1].Description)
}

func TestDailyFirstMiddaySampleWins(t *testing.T) {
	samples := makeSamples(8)
	samples[4].Icon = "09d" // 12h
	samples[4].Description = "shower rain"
	samples[5].Icon = "11d" // 15h
	samples[5].Description = "thunderstorm"

	digests := forecast.Daily(samples, "en", testZone)
	require.Len(t, digests, 1)

	assert.Contains(t, digests[0].IconURL, "09d")
	assert.Equal(t, "shower rain", digests[0].Description)
}

func TestDailyDayNamesLocalizedAndCapitalized(t *testing.T) {
	samples := makeSamples(16) // Monday and Tuesday

	digests := forecast.Daily(samples, "es", testZone)
	require.Len(t, digests, 2)
	assert.Equal(t, "Lunes", digests[0].Day)
	assert.Equal(t, "Martes", digests[1].Day)

	digests = forecast.Daily(samples, "en", testZone)
	require.Len(t, digests, 2)
	assert.Equal(t, "Monday", digests[0].Day)
	assert.Equal(t, "Tuesday", digests[1].Day)
}

func TestDailySpanishFallbackDescription(t *testing.T) {
	digests := forecast.Daily(makeSamples(2), "es", testZone)
	require.Len(t, digests, 1)

	assert.Equal(t, "Cielo despejado", digests[0].Description)
}

func TestDailyOrderFollowsFirstAppearance(t *testing.T) {
	samples := makeSamples(40)
	digests := forecast.Daily(samples, "en", testZone)
	require.Len(t, digests, 5)

	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	for i, digest := range digests {
		assert.Equal(t, want[i], digest.Day)
	}
}
