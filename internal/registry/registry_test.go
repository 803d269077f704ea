package registry

import (
	"testing"

	"github.com/vovakirdan/kobra/internal/core"
)

type stubGame struct {
	id, title, desc string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return g.desc }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub", title: "Stub"} })
	Register("aa_described", func() Game {
		return &describedGame{stubGame{id: "aa_described", title: "Described", desc: "has a summary"}}
	})

	if !Exists("zz_stub") || Exists("missing") {
		t.Error("Exists() mismatch")
	}

	info, ok := Lookup("aa_described")
	if !ok || info.Title != "Described" || info.Description != "has a summary" {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}
	if info, _ := Lookup("zz_stub"); info.Description != "" {
		t.Errorf("stub without Describer has description %q", info.Description)
	}

	list := List()
	if len(list) < 2 || list[0].ID != "aa_described" || list[len(list)-1].ID != "zz_stub" {
		t.Errorf("List() not sorted by ID: %+v", list)
	}

	g, err := Create("zz_stub")
	if err != nil || g.ID() != "zz_stub" {
		t.Errorf("Create() = %v, %v", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func() Game { return &stubGame{id: "dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup", func() Game { return &stubGame{id: "dup"} })
}
