package infra

import (
	"context"
	"errors"
	"testing"

	"tabi/pkg/utils"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if _, err := s.Get(ctx, "osaka_prep_time"); !errors.Is(err, utils.ErrKeyNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "osaka_prep_time", []byte("45")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "osaka_prep_time", []byte("50")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := s.Get(ctx, "osaka_prep_time")
	if err != nil || string(got) != "50" {
		t.Fatalf("Get = %q, %v; want 50", got, err)
	}

	if err := s.Delete(ctx, "osaka_prep_time"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "osaka_prep_time"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
	if _, err := s.Get(ctx, "osaka_prep_time"); !errors.Is(err, utils.ErrKeyNotFound) {
		t.Errorf("Get after Delete err = %v", err)
	}
}

func TestDiskStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	if err := first.Set(ctx, "osaka_pax_state", []byte(`{"Docs-Passport":true}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Get(ctx, "osaka_pax_state")
	if err != nil || string(got) != `{"Docs-Passport":true}` {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}

func TestDiskStoreSeesWritesFromAnotherStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	server, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	cli, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := server.Set(ctx, "osaka_itinerary_overrides", []byte(`{"3/5":[]}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, err := server.Get(ctx, "osaka_itinerary_overrides"); err != nil || string(got) != `{"3/5":[]}` {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := cli.Set(ctx, "osaka_itinerary_overrides", []byte(`{"3/6":[]}`)); err != nil {
		t.Fatalf("Set from second store: %v", err)
	}
	if got, err := server.Get(ctx, "osaka_itinerary_overrides"); err != nil || string(got) != `{"3/6":[]}` {
		t.Errorf("Get after write elsewhere = %q, %v; want the new value", got, err)
	}

	if err := cli.Delete(ctx, "osaka_itinerary_overrides"); err != nil {
		t.Fatalf("Delete from second store: %v", err)
	}
	if _, err := server.Get(ctx, "osaka_itinerary_overrides"); !errors.Is(err, utils.ErrKeyNotFound) {
		t.Errorf("Get after erase elsewhere err = %v, want ErrKeyNotFound", err)
	}
}
