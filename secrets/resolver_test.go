package secrets

import (
	"context"
	"testing"
)

func TestResolverEnvironmentAndLiteral(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	r := NewResolver(nil)
	ctx := context.Background()

	v, err := r.Resolve(ctx, "env://HOME")
	if err != nil || v != "/home/tester" {
		t.Fatalf("Resolve(env://HOME) = %q, %v", v, err)
	}

	v, err = r.Resolve(ctx, "literal://abc")
	if err != nil || v != "abc" {
		t.Fatalf("Resolve(literal://abc) = %q, %v", v, err)
	}
}

func TestResolverCachesByRawString(t *testing.T) {
	t.Setenv("DHD_CACHE_TEST", "first")
	r := NewResolver(nil)
	ctx := context.Background()

	v1, err := r.Resolve(ctx, "env://DHD_CACHE_TEST")
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("DHD_CACHE_TEST", "second")
	v2, err := r.Resolve(ctx, "env://DHD_CACHE_TEST")
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 {
		t.Fatalf("expected cached value %q to be reused, got %q", v1, v2)
	}
}

func TestResolverWithoutOnePasswordProvider(t *testing.T) {
	r := NewResolver(nil)
	if _, err := r.Resolve(context.Background(), "op://v/i/f"); err == nil {
		t.Fatal("expected error when no OnePassword provider is configured")
	}
}

type fakeOnePassword struct {
	value  string
	exists bool
}

func (f fakeOnePassword) Get(context.Context, Reference) (string, error) { return f.value, nil }
func (f fakeOnePassword) Exists(context.Context, Reference) (bool, error) {
	return f.exists, nil
}

func TestResolverOnePasswordProvider(t *testing.T) {
	r := NewResolver(fakeOnePassword{value: "secret-token", exists: true})
	v, err := r.Resolve(context.Background(), "op://Personal/GitHub/token")
	if err != nil || v != "secret-token" {
		t.Fatalf("Resolve(op://...) = %q, %v", v, err)
	}
	ok, err := r.Exists(context.Background(), "op://Personal/GitHub/token")
	if err != nil || !ok {
		t.Fatalf("Exists(op://...) = %v, %v", ok, err)
	}
}
