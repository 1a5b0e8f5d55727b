package condition

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileAndDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if ok, _ := (FileExists{Path: file}).Evaluate(ctx); !ok {
		t.Error("FileExists should be true for an existing file")
	}
	if ok, _ := (FileExists{Path: dir}).Evaluate(ctx); ok {
		t.Error("FileExists should be false for a directory")
	}
	if ok, _ := (DirectoryExists{Path: dir}).Evaluate(ctx); !ok {
		t.Error("DirectoryExists should be true for an existing directory")
	}
	if ok, _ := (FileExists{Path: filepath.Join(dir, "nope")}).Evaluate(ctx); ok {
		t.Error("FileExists should be false for a missing path")
	}
}

func TestEnvVar(t *testing.T) {
	t.Setenv("DHD_TEST_VAR", "yes")
	ctx := context.Background()
	if ok, _ := (EnvVar{Name: "DHD_TEST_VAR"}).Evaluate(ctx); !ok {
		t.Error("EnvVar should be true when set with no expectation")
	}
	if ok, _ := (EnvVar{Name: "DHD_TEST_VAR", Expected: "yes"}).Evaluate(ctx); !ok {
		t.Error("EnvVar should be true when value matches")
	}
	if ok, _ := (EnvVar{Name: "DHD_TEST_VAR", Expected: "no"}).Evaluate(ctx); ok {
		t.Error("EnvVar should be false when value differs")
	}
	if ok, _ := (EnvVar{Name: "DHD_TEST_VAR_UNSET"}).Evaluate(ctx); ok {
		t.Error("EnvVar should be false when unset")
	}
}

func TestCombinators(t *testing.T) {
	ctx := context.Background()
	alwaysTrue := EnvVar{Name: "DHD_ALWAYS_TRUE"}
	t.Setenv("DHD_ALWAYS_TRUE", "1")
	alwaysFalse := EnvVar{Name: "DHD_DEFINITELY_UNSET_VAR"}

	if ok, _ := (AllOf{Conditions: []Condition{alwaysTrue, alwaysFalse}}).Evaluate(ctx); ok {
		t.Error("AllOf should be false when one condition is false")
	}
	if ok, _ := (AllOf{Conditions: []Condition{alwaysTrue, alwaysTrue}}).Evaluate(ctx); !ok {
		t.Error("AllOf should be true when every condition is true")
	}
	if ok, _ := (AnyOf{Conditions: []Condition{alwaysFalse, alwaysTrue}}).Evaluate(ctx); !ok {
		t.Error("AnyOf should be true when one condition is true")
	}
	if ok, _ := (Not{Condition: alwaysFalse}).Evaluate(ctx); !ok {
		t.Error("Not should invert a false condition to true")
	}
}
