package lexer

import "testing"

func TestTokenizeProducesExpectedStream(t *testing.T) {
	src := `fn add(x: Int, y: Int) -> Int {
    return x + y;
}
`
	want := []Kind{
		KwFn, Ident, LParen, Ident, Colon, Ident, Comma, Ident, Colon, Ident, RParen,
		Arrow, Ident, LBrace,
		KwReturn, Ident, Plus, Ident, Semi,
		RBrace,
		EOF,
	}

	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(toks) != len(want) {
		t.Fatalf("len(toks) = %d, want %d (%v)", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("toks[%d].Kind = %v, want %v (text %q)", i, toks[i].Kind, k, toks[i].Text)
		}
	}
}

func TestKeywordsAreNotIdentifiers(t *testing.T) {
	for word, kind := range keywords {
		toks, err := New(word).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", word, err)
		}
		if toks[0].Kind != kind {
			t.Errorf("Tokenize(%q)[0].Kind = %v, want %v", word, toks[0].Kind, kind)
		}
	}
}

func TestUnderscoreIsItsOwnKind(t *testing.T) {
	toks, err := New("_").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != Underscore {
		t.Errorf("Tokenize(\"_\")[0].Kind = %v, want Underscore", toks[0].Kind)
	}
}

func TestLineCommentIsSkipped(t *testing.T) {
	toks, err := New("// a comment\nlet").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != KwLet || toks[1].Kind != EOF {
		t.Fatalf("Tokenize() = %v, want [KwLet EOF]", toks)
	}
	if toks[0].Line != 2 {
		t.Errorf("KwLet token Line = %d, want 2 (after the comment line)", toks[0].Line)
	}
}

func TestIntLiteralWithinInt32RangeLexesAsIntLit(t *testing.T) {
	toks, err := New("2147483647").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != IntLit {
		t.Errorf("Kind = %v, want IntLit", toks[0].Kind)
	}
}

func TestIntLiteralOutOfInt32RangeLexesAsLongLit(t *testing.T) {
	// spec.md §8.3: an integer literal too large for Int parses as Long.
	toks, err := New("2147483648").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != LongLit {
		t.Errorf("Kind = %v, want LongLit", toks[0].Kind)
	}
}

func TestIntLiteralOutOfInt64RangeIsALexError(t *testing.T) {
	_, err := New("99999999999999999999").Tokenize()
	if err == nil {
		t.Fatal("Tokenize() on an Int64-overflowing literal should error")
	}
	if _, ok := err.(*LexError); !ok {
		t.Errorf("error = %T, want *LexError", err)
	}
}

func TestExplicitLongSuffix(t *testing.T) {
	toks, err := New("8L").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != LongLit || toks[0].Text != "8" {
		t.Errorf("toks[0] = %+v, want {LongLit 8}", toks[0])
	}
}

func TestFloatSuffixVsDoubleDefault(t *testing.T) {
	toks, err := New("1.5f 1.5").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != FloatLit {
		t.Errorf("toks[0].Kind = %v, want FloatLit", toks[0].Kind)
	}
	if toks[1].Kind != DoubleLit {
		t.Errorf("toks[1].Kind = %v, want DoubleLit", toks[1].Kind)
	}
}

func TestStringLiteralUnescaping(t *testing.T) {
	toks, err := New(`"a\nb"`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != StringLit || toks[0].Text != "a\nb" {
		t.Errorf("toks[0] = %+v, want {StringLit \"a\\nb\"}", toks[0])
	}
}

func TestUnterminatedStringIsALexError(t *testing.T) {
	_, err := New(`"unterminated`).Tokenize()
	if err == nil {
		t.Fatal("Tokenize() on an unterminated string should error")
	}
}

func TestCharLiteral(t *testing.T) {
	toks, err := New(`'x'`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if toks[0].Kind != CharLit || toks[0].Text != "x" {
		t.Errorf("toks[0] = %+v, want {CharLit x}", toks[0])
	}
}

func TestTwoCharPunctuation(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"->", Arrow}, {"=>", FatArrow}, {"==", Eq}, {"!=", Ne},
		{"<=", Le}, {">=", Ge}, {"&&", AndAnd}, {"||", OrOr}, {"::", ColonColon},
	}
	for _, c := range cases {
		toks, err := New(c.src).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", c.src, err)
		}
		if toks[0].Kind != c.kind {
			t.Errorf("Tokenize(%q)[0].Kind = %v, want %v", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestSingleAmpersandIsALexError(t *testing.T) {
	// Paw has no bitwise-and operator, only `&&`.
	_, err := New("&").Tokenize()
	if err == nil {
		t.Fatal("Tokenize(\"&\") should error: a lone & is not a valid token")
	}
}
