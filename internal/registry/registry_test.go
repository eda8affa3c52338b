package registry

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return stubGame{id: "stub_a"} })
	RegisterVariant("stub_a_alt", func() Game { return stubGame{id: "stub_a_alt"} })

	if !Exists("stub_a") || !Exists("stub_a_alt") {
		t.Fatal("registered games should exist")
	}

	g, err := Create("stub_a_alt")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_a_alt" {
		t.Errorf("Create() returned %q", g.ID())
	}

	for _, info := range List() {
		if info.ID == "stub_a_alt" {
			t.Error("List() should omit variants")
		}
	}

	found := false
	for _, info := range ListAll() {
		if info.ID == "stub_a_alt" {
			found = info.Variant && info.Title == "Stub stub_a_alt"
		}
	}
	if !found {
		t.Error("ListAll() should include the variant with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() of unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })
}
