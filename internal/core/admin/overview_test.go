package admin

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetBridgeInfo(t *testing.T) {
	provider := &fakeProvider{topics: []string{"orders", "alerts"}}
	clock := newFakeClock()
	service := NewService(provider, nil, WithClock(clock), WithVersion("1.2.3"))

	clock.Advance(75 * time.Second)
	info := service.GetBridgeInfo()

	assert.Equal(t, "OtterBridge", info.Product)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, int64(75), info.UptimeSecs)
	assert.Equal(t, "2024-05-01T12:00:00Z", info.StartTime)
	assert.Equal(t, []string{"orders", "alerts"}, info.Topics)
}
