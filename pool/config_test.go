package pool

import "testing"

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if c.MaxTotal != 8 || c.MaxIdle != 8 || c.MinIdle != 0 {
		t.Fatalf("unexpected size defaults: %+v", c)
	}
	if !c.BlockWhenExhausted || c.MaxWaitMillis != -1 {
		t.Fatalf("unexpected blocking defaults: %+v", c)
	}
	if !c.Lifo {
		t.Fatal("expected Lifo default true")
	}
	if c.TimeBetweenEvictionRunsMillis != -1 {
		t.Fatal("expected maintenance disabled by default")
	}
	if c.MinEvictableIdleTimeMillis != 30*60*1000 {
		t.Fatalf("MinEvictableIdleTimeMillis = %d, want 1800000", c.MinEvictableIdleTimeMillis)
	}
}

func TestConfigCloneIsIndependent(t *testing.T) {
	c := DefaultConfig()
	clone := c.Clone()
	clone.MaxTotal = 99
	if c.MaxTotal == 99 {
		t.Fatal("mutating the clone should not affect the original")
	}
}
