package engine

import (
	"errors"
	"testing"
)

func TestDataRegistryRegisterAssignsSequentialHandles(t *testing.T) {
	reg := NewDataRegistry()

	h1, err := reg.Register("health", BTTypeNumber)
	if err != nil {
		t.Fatalf("Register health: %v", err)
	}
	h2, err := reg.Register("target", BTTypeActor)
	if err != nil {
		t.Fatalf("Register target: %v", err)
	}

	if h1 != 0 || h2 != 1 {
		t.Errorf("expected sequential handles 0,1; got %d,%d", h1, h2)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestDataRegistryRejectsDuplicateAndEmptyNames(t *testing.T) {
	reg := NewDataRegistry()
	if _, err := reg.Register("key", BTTypeNumber); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := reg.Register("key", BTTypeNumber); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := reg.Register("", BTTypeNumber); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestDataRegistryRejectsOverflow(t *testing.T) {
	reg := NewDataRegistry()
	reg.entries = make([]DataEntry, MaxRegistryEntries)
	if _, err := reg.Register("overflow", BTTypeNumber); !errors.Is(err, ErrRegistryFull) {
		t.Errorf("expected ErrRegistryFull, got %v", err)
	}
}

func TestDataTableSetCreatesDefaultOnTypeMismatch(t *testing.T) {
	reg := NewDataRegistry()
	handle, _ := reg.Register("health", BTTypeNumber)
	table := NewDataTable(reg)

	if ok := table.Set(handle, TextValue("not a number")); !ok {
		t.Fatal("Set should succeed for a known handle")
	}
	v, ok := table.Find(handle)
	if !ok {
		t.Fatal("Find should report the handle as present")
	}
	if v.Tag() != BTTypeNumber {
		t.Errorf("type-mismatched Set should fall back to the registry's declared type, got %s", v.Tag())
	}
}

func TestDataTableSetUnknownHandleFails(t *testing.T) {
	reg := NewDataRegistry()
	table := NewDataTable(reg)
	if ok := table.Set(DataHandle(99), NumberValue(1)); ok {
		t.Error("Set on an unregistered handle should fail")
	}
}

func TestDataTableFindByNameAndUnsetByName(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("mood", BTTypeText)
	table := NewDataTable(reg)

	table.SetByName("mood", TextValue("happy"))
	v, ok := table.FindByName("mood")
	if !ok || v.AsText() != "happy" {
		t.Fatalf("FindByName: got (%v, %v), want (happy, true)", v, ok)
	}

	table.UnsetByName("mood")
	if _, ok := table.FindByName("mood"); ok {
		t.Error("value should be gone after UnsetByName")
	}
}

func TestDataTableHandlesPreservesInsertionOrder(t *testing.T) {
	reg := NewDataRegistry()
	hA, _ := reg.Register("a", BTTypeNumber)
	hB, _ := reg.Register("b", BTTypeNumber)
	hC, _ := reg.Register("c", BTTypeNumber)
	table := NewDataTable(reg)

	table.Set(hB, NumberValue(2))
	table.Set(hA, NumberValue(1))
	table.Set(hC, NumberValue(3))

	got := table.Handles()
	want := []DataHandle{hB, hA, hC}
	if len(got) != len(want) {
		t.Fatalf("Handles() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Handles()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
