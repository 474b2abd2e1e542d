package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadComplete(ctx, "demo", 10, 4, 1, time.Second, nil)
	p.OnLayoutComplete(ctx, "demo", 2, time.Second)
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	e := NoopEngineHooks{}
	e.OnDocumentLoaded("demo", 1)
	e.OnDragStart("a")
	e.OnDragTick("a", 3, time.Millisecond)
	e.OnDragEnd("a", 0, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	s := NoopServerHooks{}
	s.OnRequest("GET", "/document", 200, time.Millisecond)
	s.OnSubscribe("sub", 1)
	s.OnUnsubscribe("sub", 0)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)
	SetEngineHooks(nil)

	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testEngineHooks struct{ NoopEngineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }

func TestUseRegistersEveryCategory(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	if n := Use(h); n != 4 {
		t.Fatalf("Use() = %d, want 4", n)
	}
	if Engine() != EngineHooks(h) || Server() != ServerHooks(h) {
		t.Fatal("Use() did not register log hooks")
	}

	Engine().OnDragTick("api", 2, time.Millisecond)
	Pipeline().OnRenderComplete(context.Background(), []string{"png"}, 0, errors.New("no graphviz"))
	Server().OnRequest("POST", "/drag/tick", 204, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"drag tick", "vertex=api", "render failed", "no graphviz", "route=/drag/tick"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestUsePartial(t *testing.T) {
	Reset()
	defer Reset()

	if n := Use(&testCacheHooks{}); n != 1 {
		t.Errorf("Use(cache hooks) = %d, want 1", n)
	}
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Use(cache hooks) replaced engine hooks")
	}
}
