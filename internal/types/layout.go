package types

import "fmt"

// FieldLayout is one field's placement within a struct layout.
type FieldLayout struct {
	Name   string
	Offset uint32
	Type   Type
}

// StructLayout is the computed, cached layout of a concrete type
// application `Name<...>` (spec.md §3.6). Grounded on
// original_source/src/backend/codegen/context.rs's `StructLayout { size,
// align, fields, field_offsets }`.
type StructLayout struct {
	Size   uint32
	Align  uint32
	Fields []FieldLayout
}

// FieldsOf resolves a struct declaration's field types by substituting
// the struct's own type parameters with the concrete App's arguments.
// Callers pass the declared (name, type) pairs and the struct's type
// parameter names; LayoutOf does not know about declarations itself so it
// stays in this leaf package with no dependency on ast/traits/check.
type FieldDecl struct {
	Name string
	Type Type
}

// sizeAlign returns a field's (size, align) per spec.md §3.6. Any App
// (box/rc/arc or a user struct) is a by-reference handle: 8/8. A bare
// type variable reaching layout is an error.
func sizeAlign(t Type) (uint32, uint32, error) {
	switch t := t.(type) {
	case Primitive:
		switch t.Kind {
		case Byte, Bool:
			return 1, 1, nil
		case Int, Char, Float:
			return 4, 4, nil
		case Long, String, Double:
			return 8, 8, nil
		case Void:
			return 0, 0, fmt.Errorf("Void has no layout")
		}
	case App:
		return 8, 8, nil
	case Var:
		return 0, 0, fmt.Errorf("type variable `%s` reaching layout", t.Name)
	}
	return 0, 0, fmt.Errorf("unsupported type in layout: %s", t.String())
}

func alignUp(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}

// ComputeLayout lays out fields in declaration order, substituting σ
// (struct type params -> concrete App args) into each declared field
// type first.
func ComputeLayout(fields []FieldDecl, sigma Subst) (*StructLayout, error) {
	layout := &StructLayout{Align: 1}
	var size uint32
	for _, f := range fields {
		ft := Apply(f.Type, sigma)
		fsize, falign, err := sizeAlign(ft)
		if err != nil {
			return nil, fmt.Errorf("field `%s`: %w", f.Name, err)
		}
		offset := alignUp(size, falign)
		layout.Fields = append(layout.Fields, FieldLayout{Name: f.Name, Offset: offset, Type: ft})
		size = offset + fsize
		if falign > layout.Align {
			layout.Align = falign
		}
	}
	layout.Size = alignUp(size, layout.Align)
	return layout, nil
}
