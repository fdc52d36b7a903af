package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss with nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := "order:abc123"
	payload := []byte(`["SecureRandom","Cipher"]`)

	if _, hit, _ := c.Get(ctx, key); hit {
		t.Fatal("unexpected hit before Set")
	}

	if err := c.Set(ctx, key, payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get = %v, hit %v", err, hit)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("hit after Delete")
	}
	// Deleting again must not error.
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned as hit")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ok1 := k.OrderKey("fp1", "Cipher", OrderKeyOpts{})
	ok2 := k.OrderKey("fp1", "Cipher", OrderKeyOpts{DisableRecovery: true})
	if ok1 == ok2 {
		t.Error("resolver options must change the order key")
	}
	if ok3 := k.OrderKey("fp1", "SecureRandom", OrderKeyOpts{}); ok1 == ok3 {
		t.Error("focus must change the order key")
	}
	if again := k.OrderKey("fp1", "Cipher", OrderKeyOpts{}); again != ok1 {
		t.Error("keyer is not deterministic")
	}

	uk1 := k.UniverseKey("jca")
	uk2 := k.UniverseKey("bc")
	if uk1 == uk2 {
		t.Error("universe name must change the universe key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:42:")

	key := scoped.UniverseKey("jca")
	if len(key) < len("tenant:42:") || key[:len("tenant:42:")] != "tenant:42:" {
		t.Errorf("scoped key not prefixed: %s", key)
	}

	inner := NewDefaultKeyer().UniverseKey("jca")
	if key != "tenant:42:"+inner {
		t.Errorf("scoped key = %s, want prefix + inner key", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	want := "p:" + NewDefaultKeyer().UniverseKey("jca")
	if got := scoped.UniverseKey("jca"); got != want {
		t.Errorf("UniverseKey = %s, want %s", got, want)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	base := errors.New("connection reset")
	wrapped := Retryable(base)
	if !IsRetryable(wrapped) {
		t.Error("wrapped error should be retryable")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if IsRetryable(base) {
		t.Error("plain error should not be retryable")
	}
}

func TestRetryWithBackoff_NonRetryableStops(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("fatal")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (non-retryable must not retry)", calls)
	}
}
