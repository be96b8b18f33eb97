package types

import "testing"

func TestComputeLayoutScalarPacking(t *testing.T) {
	// Byte (1/1) then Int (4/4): the Int field must be padded up to a
	// 4-byte boundary, and the struct's overall size rounds up to its
	// largest field alignment (spec.md §3.6).
	fields := []FieldDecl{
		{Name: "tag", Type: TByte},
		{Name: "value", Type: TInt},
	}
	layout, err := ComputeLayout(fields, Subst{})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if layout.Align != 4 {
		t.Errorf("Align = %d, want 4", layout.Align)
	}
	if layout.Fields[0].Offset != 0 {
		t.Errorf("tag offset = %d, want 0", layout.Fields[0].Offset)
	}
	if layout.Fields[1].Offset != 4 {
		t.Errorf("value offset = %d, want 4", layout.Fields[1].Offset)
	}
	if layout.Size != 8 {
		t.Errorf("Size = %d, want 8", layout.Size)
	}
}

func TestComputeLayoutNoPaddingNeeded(t *testing.T) {
	fields := []FieldDecl{
		{Name: "a", Type: TByte},
		{Name: "b", Type: TBool},
	}
	layout, err := ComputeLayout(fields, Subst{})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if layout.Size != 2 || layout.Align != 1 {
		t.Errorf("Size/Align = %d/%d, want 2/1", layout.Size, layout.Align)
	}
}

func TestComputeLayoutAppIsByReference(t *testing.T) {
	fields := []FieldDecl{
		{Name: "next", Type: App{Name: "Box", Args: []Type{TInt}}},
	}
	layout, err := ComputeLayout(fields, Subst{})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if layout.Size != 8 || layout.Align != 8 {
		t.Errorf("Size/Align = %d/%d, want 8/8 (by-reference handle)", layout.Size, layout.Align)
	}
}

func TestComputeLayoutSubstitutesGenericFields(t *testing.T) {
	// struct Box<T> { value: T } instantiated as Box<Long>.
	fields := []FieldDecl{{Name: "value", Type: Var{"T"}}}
	sigma := Subst{"T": TLong}
	layout, err := ComputeLayout(fields, sigma)
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if layout.Size != 8 {
		t.Errorf("Size = %d, want 8 (Long)", layout.Size)
	}
	if !Equal(layout.Fields[0].Type, TLong) {
		t.Errorf("field type = %s, want Long", layout.Fields[0].Type)
	}
}

func TestComputeLayoutRejectsVoidField(t *testing.T) {
	fields := []FieldDecl{{Name: "bad", Type: TVoid}}
	if _, err := ComputeLayout(fields, Subst{}); err == nil {
		t.Fatal("ComputeLayout with a Void field should fail")
	}
}

func TestComputeLayoutRejectsBareTypeVariable(t *testing.T) {
	// An uninstantiated struct (no substitution supplied for T) can never
	// have a layout — computing one is an ABI violation.
	fields := []FieldDecl{{Name: "value", Type: Var{"T"}}}
	if _, err := ComputeLayout(fields, Subst{}); err == nil {
		t.Fatal("ComputeLayout with an unresolved type variable should fail")
	}
}
