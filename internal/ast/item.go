package ast

import "github.com/pawlang-project/paw/internal/types"

// Visibility is a Fun's exported-ness (spec.md §3.2, §4.5.2 `pub` maps to
// Export).
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Param is one function parameter.
type Param struct {
	Name string
	Type types.Type
}

// WhereBound is `T: Trait<Args...>` (spec.md §4.3.6 step 4, §4.3.7).
type WhereBound struct {
	TypeParam string
	Trait     string
	Args      []types.Type
}

// Item is any top-level declaration.
type Item interface {
	Spanned
	itemNode()
}

type BaseItem struct{ Sp Span }

func (b BaseItem) Span() Span { return b.Sp }

// Fun is a free function declaration (spec.md §3.2). Body is nil for
// `extern` items.
type Fun struct {
	BaseItem
	Visibility  Visibility
	Name        string
	TypeParams  []string
	Params      []Param
	ReturnType  types.Type
	WhereBounds []WhereBound
	Body        *Block
	IsExtern    bool
}

// Global is a top-level `let`/`const` binding.
type Global struct {
	BaseItem
	Name        string
	Type        types.Type
	Initializer Expr
	IsConst     bool
}

// Import is `import a::b::c;`.
type Import struct {
	BaseItem
	Path string // "a::b::c" as written
}

// Struct is a struct declaration.
type Struct struct {
	BaseItem
	Name       string
	TypeParams []string
	Fields     []types.FieldDecl
}

// TraitMethodSig is one method signature inside a trait.
type TraitMethodSig struct {
	Name       string
	Params     []Param
	ReturnType types.Type
}

// TraitAssocType is an associated-type declaration inside a trait, with
// its stated bounds (spec.md §4.4).
type TraitAssocType struct {
	Name   string
	Bounds []WhereBound
}

// Trait is a trait declaration, parameterized by type variables.
type Trait struct {
	BaseItem
	Name        string
	TypeParams  []string
	Methods     []TraitMethodSig
	AssocTypes  []TraitAssocType
}

// ImplMethod is a method or extern-method body inside an impl.
type ImplMethod struct {
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       *Block // nil for extern-method
	IsExtern   bool
}

// ImplAssocType is an associated-type definition inside an impl.
type ImplAssocType struct {
	Name string
	Type types.Type
}

// Impl is `impl<TypeParams> Trait<TraitArgs> where WhereBounds { items }`.
type Impl struct {
	BaseItem
	TypeParams  []string
	TraitName   string
	TraitArgs   []types.Type
	WhereBounds []WhereBound
	Methods     []ImplMethod
	AssocTypes  []ImplAssocType
}

func (*Fun) itemNode()    {}
func (*Global) itemNode() {}
func (*Import) itemNode() {}
func (*Struct) itemNode() {}
func (*Trait) itemNode()  {}
func (*Impl) itemNode()   {}

// Program is an ordered sequence of items (spec.md §3.2), plus the file
// it was parsed from (used by import expansion for relative resolution).
type Program struct {
	File  string
	Items []Item
}
