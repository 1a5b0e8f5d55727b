package secrets

import "testing"

func TestParseOnePassword(t *testing.T) {
	ref, err := Parse("op://Personal/GitHub/token")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Kind != KindOnePassword || ref.Vault != "Personal" || ref.Item != "GitHub" || ref.Field != "token" {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
}

func TestParseOnePasswordWrongSegmentCount(t *testing.T) {
	if _, err := Parse("op://only/two"); err == nil {
		t.Fatal("expected error for op:// reference with two segments")
	}
	if _, err := Parse("op://a/b/c/d"); err == nil {
		t.Fatal("expected error for op:// reference with four segments")
	}
}

func TestParseEnvironment(t *testing.T) {
	ref, err := Parse("env://HOME")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Kind != KindEnvironment || ref.Var != "HOME" {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
}

func TestParseLiteral(t *testing.T) {
	ref, err := Parse("literal://abc")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Kind != KindLiteral || ref.Value != "abc" {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
}

func TestParseInvalidPrefix(t *testing.T) {
	if _, err := Parse("ftp://nope"); err == nil {
		t.Fatal("expected error for unrecognised prefix")
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"op://v/i/f", "env://HOME", "literal://abc"} {
		ref, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		if ref.String() != s {
			t.Errorf("round trip failed: Parse(%q).String() = %q", s, ref.String())
		}
	}
}
