package h264

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProfileLevelIdForAnswer(t *testing.T) {
	t.Run("empty parameters", func(t *testing.T) {
		answer, err := GenerateProfileLevelIdForAnswer(RtpParameter{}, RtpParameter{})
		require.NoError(t, err)
		assert.Empty(t, answer)
	})

	t.Run("level is capped without asymmetry", func(t *testing.T) {
		low := RtpParameter{ProfileLevelId: "42e015"}
		high := RtpParameter{ProfileLevelId: "42e01f"}

		answer, err := GenerateProfileLevelIdForAnswer(low, high)
		require.NoError(t, err)
		assert.Equal(t, "42e015", answer)

		answer, err = GenerateProfileLevelIdForAnswer(high, low)
		require.NoError(t, err)
		assert.Equal(t, "42e015", answer)
	})

	t.Run("local level kept with asymmetry", func(t *testing.T) {
		local := RtpParameter{ProfileLevelId: "42e01f", LevelAsymmetryAllowed: 1}
		remote := RtpParameter{ProfileLevelId: "42e015", LevelAsymmetryAllowed: 1}

		answer, err := GenerateProfileLevelIdForAnswer(local, remote)
		require.NoError(t, err)
		assert.Equal(t, "42e01f", answer)
	})

	t.Run("default applies to a missing side", func(t *testing.T) {
		answer, err := GenerateProfileLevelIdForAnswer(RtpParameter{ProfileLevelId: "42e02a"}, RtpParameter{})
		require.NoError(t, err)
		assert.Equal(t, "42e01f", answer)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := GenerateProfileLevelIdForAnswer(RtpParameter{ProfileLevelId: "foobar"}, RtpParameter{ProfileLevelId: "42e01f"})
		assert.ErrorIs(t, err, ErrInvalidLocalProfileLevelId)

		_, err = GenerateProfileLevelIdForAnswer(RtpParameter{ProfileLevelId: "42e01f"}, RtpParameter{ProfileLevelId: "foobar"})
		assert.ErrorIs(t, err, ErrInvalidRemoteProfileLevelId)

		_, err = GenerateProfileLevelIdForAnswer(RtpParameter{ProfileLevelId: "42e01f"}, RtpParameter{ProfileLevelId: "4d001f"})
		assert.ErrorIs(t, err, ErrProfileMismatch)
	})
}
