package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestBaseKinds(t *testing.T) {
	cases := []struct {
		kind ProjectKind
		want []ProjectKind
	}{
		{KindFlutter, []ProjectKind{KindFlutter}},
		{KindRust, []ProjectKind{KindRust}},
		{KindMixed, []ProjectKind{KindFlutter, KindRust}},
	}
	for _, c := range cases {
		if got := c.kind.BaseKinds(); !reflect.DeepEqual(got, c.want) {
			t.Errorf("BaseKinds(%s) = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestSpec(t *testing.T) {
	flutter, ok := Spec(KindFlutter)
	if !ok {
		t.Fatal("expected a spec for the flutter kind")
	}
	if flutter.Manifest != "pubspec.yaml" || flutter.Tool != "flutter" {
		t.Errorf("unexpected flutter spec: %+v", flutter)
	}
	if !reflect.DeepEqual(flutter.ReclaimableDirs, []string{".dart_tool", "build", ".flutter-plugins-dependencies"}) {
		t.Errorf("unexpected flutter reclaimable dirs: %v", flutter.ReclaimableDirs)
	}

	rust, ok := Spec(KindRust)
	if !ok {
		t.Fatal("expected a spec for the rust kind")
	}
	if rust.Manifest != "Cargo.toml" || rust.Tool != "cargo" {
		t.Errorf("unexpected rust spec: %+v", rust)
	}
	if !reflect.DeepEqual(rust.ReclaimableDirs, []string{"target"}) {
		t.Errorf("unexpected rust reclaimable dirs: %v", rust.ReclaimableDirs)
	}

	if _, ok := Spec(KindMixed); ok {
		t.Error("mixed must not have a spec of its own")
	}
}

func TestValid(t *testing.T) {
	for _, kind := range []ProjectKind{KindFlutter, KindRust, KindMixed} {
		if !kind.Valid() {
			t.Errorf("%s should be valid", kind)
		}
	}
	if ProjectKind("node").Valid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestName_FallsBackToBasename(t *testing.T) {
	p := NewProject("/home/user/projects/my_app", KindFlutter)
	if got := p.Name(); got != "my_app" {
		t.Errorf("Name() = %q, want basename fallback", got)
	}

	p.Metadata.Name = "fancy_app"
	if got := p.Name(); got != "fancy_app" {
		t.Errorf("Name() = %q, want manifest name", got)
	}
}

func TestCleanResultConstructors(t *testing.T) {
	p := NewProject("/p", KindRust)

	ok := SucceededResult(p, 42)
	if !ok.Success || ok.Err != nil || ok.SpaceFreed == nil || *ok.SpaceFreed != 42 {
		t.Errorf("unexpected success result: %+v", ok)
	}

	cause := errors.New("boom")
	bad := FailedResult(p, cause)
	if bad.Success || !errors.Is(bad.Err, cause) || bad.SpaceFreed != nil {
		t.Errorf("unexpected failure result: %+v", bad)
	}
}
