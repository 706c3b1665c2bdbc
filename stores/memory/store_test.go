package memory

import (
	"context"
	"errors"
	"portfolio-gallery/core"
	"strings"
	"sync"
	"testing"
)

func TestGetItem_Missing(t *testing.T) {
	store := NewStore(0)

	_, ok, err := store.GetItem(context.Background(), "galleryPhotos")
	if err != nil {
		t.Fatalf("GetItem() failed: %v", err)
	}
	if ok {
		t.Error("GetItem() reported a missing key as present")
	}
}

func TestSetItem_RoundTrip(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()

	if err := store.SetItem(ctx, "galleryPhotos", `[{"id":"1"}]`); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}

	value, ok, err := store.GetItem(ctx, "galleryPhotos")
	if err != nil {
		t.Fatalf("GetItem() failed: %v", err)
	}
	if !ok || value != `[{"id":"1"}]` {
		t.Errorf("GetItem() = %q, %v", value, ok)
	}
}

func TestSetItem_Overwrite(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()

	store.SetItem(ctx, "profilePhoto", "first")
	store.SetItem(ctx, "profilePhoto", "second")

	value, _, _ := store.GetItem(ctx, "profilePhoto")
	if value != "second" {
		t.Errorf("GetItem() after overwrite = %q, want %q", value, "second")
	}
}

func TestRemoveItem(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()

	store.SetItem(ctx, "k", "v")
	if err := store.RemoveItem(ctx, "k"); err != nil {
		t.Fatalf("RemoveItem() failed: %v", err)
	}
	if _, ok, _ := store.GetItem(ctx, "k"); ok {
		t.Error("key still present after RemoveItem()")
	}
	if err := store.RemoveItem(ctx, "k"); err != nil {
		t.Errorf("RemoveItem() on missing key failed: %v", err)
	}
}

func TestSetItem_QuotaExceeded(t *testing.T) {
	store := NewStore(20)
	ctx := context.Background()

	if err := store.SetItem(ctx, "k", "small"); err != nil {
		t.Fatalf("SetItem() within quota failed: %v", err)
	}

	err := store.SetItem(ctx, "k", strings.Repeat("x", 50))
	if !errors.Is(err, core.ErrQuotaExceeded) {
		t.Fatalf("SetItem() over quota error = %v, want ErrQuotaExceeded", err)
	}

	value, _, _ := store.GetItem(ctx, "k")
	if value != "small" {
		t.Errorf("previous value lost after rejected write: %q", value)
	}
}

func TestSetItem_QuotaCountsReplacedValue(t *testing.T) {
	store := NewStore(12)
	ctx := context.Background()

	// key (1) + value (10) fits; replacing it with another 10 bytes must
	// not be counted twice.
	if err := store.SetItem(ctx, "k", strings.Repeat("a", 10)); err != nil {
		t.Fatalf("SetItem() failed: %v", err)
	}
	if err := store.SetItem(ctx, "k", strings.Repeat("b", 10)); err != nil {
		t.Errorf("SetItem() replacement failed: %v", err)
	}
}

func TestConcurrentSetItem(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key-" + string(rune('a'+i))
			if err := store.SetItem(ctx, key, "v"); err != nil {
				t.Errorf("SetItem() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		key := "key-" + string(rune('a'+i))
		if _, ok, _ := store.GetItem(ctx, key); !ok {
			t.Errorf("key %s missing after concurrent writes", key)
		}
	}
}
