package mediasoupclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	assert.False(t, debugEnabled("", "Device"))
	assert.True(t, debugEnabled("*", "Device"))
	assert.True(t, debugEnabled("Dev*", "Device"))
	assert.False(t, debugEnabled("*,-Device", "Device"))
	assert.True(t, debugEnabled("-Device, Device", "Device"))
	assert.True(t, debugEnabled(" , audio*", "audiodevice"))
	assert.False(t, debugEnabled("audio*", "Device"))
}

func TestNewLogger(t *testing.T) {
	t.Setenv("DEBUG", "Device")

	assert.True(t, NewLogger("Device").V(1).Enabled())
	assert.False(t, NewLogger("Other").V(1).Enabled())
}
