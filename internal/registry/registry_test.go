package registry

import (
	"strings"
	"testing"

	"github.com/AbdelPr0/terminal-arcade/internal/core"
)

type fakeGame struct {
	id    string
	state core.GameState
}

func (g *fakeGame) ID() string { return g.id }
func (g *fakeGame) Title() string { return strings.ToUpper(g.id) }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *fakeGame) Render(*core.Screen) {}
func (g *fakeGame) State() core.GameState { return g.state }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_fake", func() Game { return &fakeGame{id: "zz_fake"} })

	if !Exists("zz_fake") {
		t.Fatal("registered game should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("zz_fake")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_fake" {
		t.Errorf("ID() = %q", g.ID())
	}
	if Title("zz_fake") != "ZZ_FAKE" {
		t.Errorf("Title() = %q", Title("zz_fake"))
	}
	if Title("zz_missing") != "zz_missing" {
		t.Error("unknown title should fall back to the ID")
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create of unknown game should fail")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
}
