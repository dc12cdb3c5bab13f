package session

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"visitor-cli/pkg/models"
)

func TestMemoryStore_SaveLoadClear(t *testing.T) {
	s := NewMemoryStore()
	if got := s.Load(); got.Token != "" {
		t.Fatalf("new store should be empty, got %+v", got)
	}

	want := Session{Token: "tok", User: models.User{Name: "Admin", Email: "admin@demo.com"}}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := s.Load(); got != (Session{}) {
		t.Errorf("after Clear, Load() = %+v", got)
	}
}

func TestFileStore_RoundTripThroughConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitor.yaml")

	v := viper.New()
	v.SetConfigFile(path)
	store := NewFileStore(v)

	want := Session{Token: "tok-1", User: models.User{ID: "7", Name: "Admin", Email: "admin@demo.com"}}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh viper reading the same file sees the persisted session.
	r := viper.New()
	r.SetConfigFile(path)
	if err := r.ReadInConfig(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := NewFileStore(r).Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := store.Load(); got.Token != "" || got.User.Email != "" {
		t.Errorf("after Clear, Load() = %+v", got)
	}
}
