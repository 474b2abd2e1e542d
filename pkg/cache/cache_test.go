package cache

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

var errPermanent = errors.New("permanent")

func TestNone(t *testing.T) {
	ctx := context.Background()
	c := None()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestHash(t *testing.T) {
	a, b := Hash([]byte("vertex")), Hash([]byte("edge"))
	if a != Hash([]byte("vertex")) {
		t.Error("Hash() is not deterministic")
	}
	if a == b {
		t.Error("Hash() collides for different inputs")
	}
	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{PaddingW: 0.2, PaddingH: 0.6, CheckBuffer: 1, AdjustBuffer: 0.05, LabelBuffer: 0.5}

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"layout deterministic", k.LayoutKey("doc", base), k.LayoutKey("doc", base), true},
		{"layout padding", k.LayoutKey("doc", base), k.LayoutKey("doc", LayoutKeyOpts{PaddingW: 0.3, PaddingH: 0.6}), false},
		{"layout document", k.LayoutKey("doc", base), k.LayoutKey("other", base), false},
		{"artifact format", k.ArtifactKey("s", ArtifactKeyOpts{Format: "svg"}), k.ArtifactKey("s", ArtifactKeyOpts{Format: "png"}), false},
		{"artifact anchors", k.ArtifactKey("s", ArtifactKeyOpts{Format: "svg"}), k.ArtifactKey("s", ArtifactKeyOpts{Format: "svg", Anchors: true}), false},
		{"artifact state", k.ArtifactKey("s", ArtifactKeyOpts{Format: "svg"}), k.ArtifactKey("t", ArtifactKeyOpts{Format: "svg"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.a == tt.b) != tt.same {
				t.Errorf("keys %s and %s: equal = %v, want %v", tt.a, tt.b, tt.a == tt.b, tt.same)
			}
		})
	}

	if got := k.LayoutKey("doc", base); !strings.HasPrefix(got, "layout:") {
		t.Errorf("LayoutKey() = %s, want layout: prefix", got)
	}
	if got := k.ArtifactKey("s", ArtifactKeyOpts{}); !strings.HasPrefix(got, "artifact:") {
		t.Errorf("ArtifactKey() = %s, want artifact: prefix", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit")
	}

	if err := c.Set(ctx, "layout", []byte(`{"vertices":[]}`), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(ctx, "forever", []byte("svg"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "layout")
	if err != nil || !hit || string(data) != `{"vertices":[]}` {
		t.Errorf("Get() = %q, %v, %v, want stored value", data, hit, err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without expiry missed")
	}

	if err := c.Delete(ctx, "layout"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout"); hit {
		t.Error("Get() after Delete() hit")
	}
	if err := c.Delete(ctx, "layout"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Clear() = %d, want 1", n)
	}
	if entries, _ := os.ReadDir(c.Dir()); len(entries) != 0 {
		t.Errorf("Clear() left %d entries", len(entries))
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry hit")
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Errorf("expired entry not removed: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	path := c.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want miss without error", hit, err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(1 << 20)
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v, want miss", hit, err)
	}
	if err := c.Set(ctx, "artifact", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get() = %q, %v, %v, want stored value", data, hit, err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if err := c.Set(ctx, "huge", make([]byte, 4<<10), 0); err == nil {
		t.Error("Set() of an entry above 1/1024 of the buffer succeeded")
	}

	if err := c.Delete(ctx, "artifact"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact"); hit {
		t.Error("Get() after Delete() hit")
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", c.Len())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"redis nil", redis.Nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"io", io.ErrUnexpectedEOF, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if IsTransient(got) != tt.transient {
				t.Errorf("IsTransient(classify(%v)) = %v, want %v", tt.err, !tt.transient, tt.transient)
			}
			if tt.transient && !errors.Is(got, ErrUnavailable) {
				t.Errorf("classify(%v) = %v, want ErrUnavailable", tt.err, got)
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := backoff{attempts: 3, delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, nil, 1, false},
		{"permanent", 5, errPermanent, 1, true},
		{"recovers", 2, transient(ErrUnavailable), 3, false},
		{"exhausted", 5, transient(ErrUnavailable), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("do() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := defaultBackoff.do(ctx, func() error { return transient(ErrUnavailable) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("do() error = %v, want context.Canceled", err)
	}
}
