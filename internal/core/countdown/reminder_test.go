package countdown

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		-3:   "00:00",
		0:    "00:00",
		9:    "00:09",
		60:   "01:00",
		180:  "03:00",
		3599: "59:59",
		3600: "60:00",
		5999: "99:59",
	}
	for seconds, expected := range cases {
		require.Equal(t, expected, FormatClock(seconds), seconds)
	}
}

func TestFormatReminderLabel(t *testing.T) {
	require.Equal(t, "2 min 30 sec", FormatReminderLabel(150))
	require.Equal(t, "2 min", FormatReminderLabel(120))
	require.Equal(t, "45 sec", FormatReminderLabel(45))
	require.Equal(t, "0 sec", FormatReminderLabel(-1))
	require.Equal(t, "1 min 30 sec", Reminder{Offset: 90}.Label())
}

func TestParseMinutes(t *testing.T) {
	value, err := ParseMinutes(" 2.5\n")
	require.NoError(t, err)
	require.Equal(t, 2.5, value)

	for _, text := range []string{"", "two", "1,5", "NaN", "+Inf"} {
		_, err := ParseMinutes(text)
		require.True(t, errors.Is(err, ErrInvalidInput), text)
	}
}

func TestMinutesToSeconds(t *testing.T) {
	require.Equal(t, 150, MinutesToSeconds(2.5))
	require.Equal(t, 1, MinutesToSeconds(0.01))
	require.Equal(t, 0, MinutesToSeconds(0.001))
	require.Equal(t, 45, MinutesToSeconds(0.75))
}
