package canvas

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
)

func mustCanvas(t *testing.T, ids IDSource, r geom.Rectangle) Canvas {
	t.Helper()
	c, err := New(r, 10, ids)
	if err != nil {
		t.Fatalf("New(%v): %v", r, err)
	}
	return c
}

func TestRegistryInsertGet(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(4)
	c := mustCanvas(t, ids, geom.Rect(0, 0, 10, 10))

	if err := reg.Insert(c); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	got, err := reg.Get(c.ID())
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != c {
		t.Errorf("Get() = %+v, want %+v", got, c)
	}
	if reg.Len() != 1 || reg.Cap() != 4 || reg.Free() != 3 {
		t.Errorf("Len/Cap/Free = %d/%d/%d, want 1/4/3", reg.Len(), reg.Cap(), reg.Free())
	}
}

func TestRegistryDefaultCapacity(t *testing.T) {
	if got := NewRegistry(0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}

func TestRegistryCapacityExceeded(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(2)
	for i := 0; i < 2; i++ {
		if err := reg.Insert(mustCanvas(t, ids, geom.Rect(0, i*10, 10, i*10+10))); err != nil {
			t.Fatalf("Insert(%d) error: %v", i, err)
		}
	}
	before := reg.Snapshot()

	extra := mustCanvas(t, ids, geom.Rect(0, 20, 10, 30))
	err := reg.Insert(extra)
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Fatalf("Insert() error = %v, want CAPACITY_EXCEEDED", err)
	}
	if !reflect.DeepEqual(reg.Snapshot(), before) {
		t.Error("failed insert modified the registry")
	}
	if reg.Has(extra.ID()) {
		t.Error("rejected canvas should not be registered")
	}

	// Repeated attempts fail the same way.
	if err := reg.Insert(extra); !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Errorf("second Insert() error = %v, want CAPACITY_EXCEEDED", err)
	}
}

func TestRegistryInsertAllAtomic(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(3)
	if err := reg.Insert(mustCanvas(t, ids, geom.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}

	batch := []Canvas{
		mustCanvas(t, ids, geom.Rect(0, 1, 1, 2)),
		mustCanvas(t, ids, geom.Rect(0, 2, 1, 3)),
		mustCanvas(t, ids, geom.Rect(0, 3, 1, 4)),
	}
	if err := reg.InsertAll(batch...); !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Fatalf("InsertAll() error = %v, want CAPACITY_EXCEEDED", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d after failed batch, want 1", reg.Len())
	}

	if err := reg.InsertAll(batch[:2]...); err != nil {
		t.Fatalf("InsertAll() error: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(4)
	c := mustCanvas(t, ids, geom.Rect(0, 0, 1, 1))

	if err := reg.Insert(c); err != nil {
		t.Fatal(err)
	}
	if err := reg.Insert(c); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate Insert() error = %v, want INVALID_INPUT", err)
	}

	d := mustCanvas(t, ids, geom.Rect(0, 1, 1, 2))
	if err := reg.InsertAll(d, d); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("repeated batch error = %v, want INVALID_INPUT", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}

	if err := reg.Insert(Canvas{rect: geom.Rect(0, 0, 1, 1)}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil id Insert() error = %v, want INVALID_INPUT", err)
	}
}

func TestRegistryNotFound(t *testing.T) {
	reg := NewRegistry(1)
	missing := NewSequence().NewID()

	_, err := reg.Get(missing)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
	if !errors.Fatal(err) {
		t.Error("NOT_FOUND should be fatal")
	}
	if err := reg.SetClip(missing, geom.Rect(0, 0, 1, 1)); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("SetClip() error = %v, want NOT_FOUND", err)
	}
}

func TestRegistrySetClip(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(2)
	c := mustCanvas(t, ids, geom.Rect(0, 0, 100, 100))
	if err := reg.Insert(c); err != nil {
		t.Fatal(err)
	}

	clip := geom.Rect(0, 50, 100, 100)
	if err := reg.SetClip(c.ID(), clip); err != nil {
		t.Fatalf("SetClip() error: %v", err)
	}
	got, _ := reg.Get(c.ID())
	if got.Clip() != clip {
		t.Errorf("Clip() = %v, want %v", got.Clip(), clip)
	}
	if got.Rect() != c.Rect() {
		t.Error("SetClip should not change the allocation rectangle")
	}
	if got.Trust() != c.Trust() {
		t.Error("SetClip should not change trust")
	}
}

func TestRegistryIDsOrder(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(3)
	var want []ID
	for i := 0; i < 3; i++ {
		c := mustCanvas(t, ids, geom.Rect(0, i, 1, i+1))
		want = append(want, c.ID())
		if err := reg.Insert(c); err != nil {
			t.Fatal(err)
		}
	}
	if got := reg.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestRegistrySnapshotIsCopy(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(1)
	c := mustCanvas(t, ids, geom.Rect(0, 0, 10, 10))
	if err := reg.Insert(c); err != nil {
		t.Fatal(err)
	}

	snap := reg.Snapshot()
	snap[0].clip = geom.Rect(0, 0, 1, 1)

	got, _ := reg.Get(c.ID())
	if got.Clip() != c.Clip() {
		t.Error("mutating a snapshot changed the registry")
	}
}

func TestCheckDisjoint(t *testing.T) {
	ids := NewSequence()
	reg := NewRegistry(3)
	a := mustCanvas(t, ids, geom.Rect(0, 0, 10, 10))
	b := mustCanvas(t, ids, geom.Rect(0, 10, 10, 20))
	c := mustCanvas(t, ids, geom.Rect(5, 5, 15, 15))
	if err := reg.InsertAll(a, b, c); err != nil {
		t.Fatal(err)
	}

	if err := reg.CheckDisjoint(a.ID(), b.ID()); err != nil {
		t.Errorf("CheckDisjoint(a, b) error: %v", err)
	}
	err := reg.CheckDisjoint(a.ID(), b.ID(), c.ID())
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("CheckDisjoint(a, b, c) error = %v, want internal", err)
	}
	if !strings.HasSuffix(err.Error(), "in (5,5)-(10,10)") {
		t.Errorf("overlap error should name the shared area: %v", err)
	}
}
