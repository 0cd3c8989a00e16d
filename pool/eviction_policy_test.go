package pool

import (
	"testing"
	"time"
)

func TestDefaultEvictionPolicyHardThreshold(t *testing.T) {
	s := NewSlot("resource")
	time.Sleep(5 * time.Millisecond)

	cfg := &EvictionConfig{
		IdleEvictTime:     time.Millisecond,
		IdleSoftEvictTime: time.Hour,
		MinIdle:           0,
	}
	if !(DefaultEvictionPolicy{}).Evict(cfg, s, 1) {
		t.Fatal("expected eviction once idle time exceeds the hard threshold")
	}
}

func TestDefaultEvictionPolicySoftThresholdRespectsFloor(t *testing.T) {
	s := NewSlot("resource")
	time.Sleep(5 * time.Millisecond)

	cfg := &EvictionConfig{
		IdleEvictTime:     time.Hour,
		IdleSoftEvictTime: time.Millisecond,
		MinIdle:           2,
	}
	if (DefaultEvictionPolicy{}).Evict(cfg, s, 2) {
		t.Fatal("expected no eviction when idleCount does not exceed MinIdle")
	}
	if !(DefaultEvictionPolicy{}).Evict(cfg, s, 3) {
		t.Fatal("expected eviction past the soft threshold once idleCount exceeds MinIdle")
	}
}

func TestDefaultEvictionPolicyBelowBothThresholds(t *testing.T) {
	s := NewSlot("resource")
	cfg := &EvictionConfig{
		IdleEvictTime:     time.Hour,
		IdleSoftEvictTime: time.Hour,
		MinIdle:           0,
	}
	if (DefaultEvictionPolicy{}).Evict(cfg, s, 5) {
		t.Fatal("expected no eviction while idle time is below both thresholds")
	}
}
