package prefs

import (
	"context"
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	p, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p != Default() {
		t.Errorf("Load() = %+v, want %+v", p, Default())
	}
	if p.UserName != "guest" || p.File != "models/hypergraph.json" {
		t.Errorf("Default() = %+v", p)
	}
}

func TestSaveAndUpdate(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := s.Save(ctx, Prefs{Email: "a@example.com"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	p, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Email != "a@example.com" || p.UserName != DefaultUserName {
		t.Errorf("Load() = %+v, want email kept and user defaulted", p)
	}

	p, err = s.Update(ctx, func(p *Prefs) {
		p.HypergraphName = "orders"
		p.File = "models/orders.json"
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if p.HypergraphName != "orders" || p.Email != "a@example.com" {
		t.Errorf("Update() = %+v", p)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("Clear() left %s", s.Path())
	}
}

func TestLoadCorrupt(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(context.Background()); err == nil {
		t.Error("Load() of corrupt file should fail")
	}
}
