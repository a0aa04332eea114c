package viz

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/experiment"
)

func TestColumn(t *testing.T) {
	states := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	got := Column(states, 1)
	want := []float64{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Column = %v, want %v", got, want)
		}
	}
	if Column(states, 2) != nil {
		t.Error("out of range column should be nil")
	}
}

func TestRenderers(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"table", Table("state", []Row{{"speed", Num(1.5, "m/s")}}), "1.5 m/s"},
		{"empty plot", PlotSeries("u", nil), "no data"},
		{"plot caption", PlotSeries("decay", []float64{3, 2, 1}), "decay"},
		{"sparkline", Sparkline([]float64{0, 1}, 10), "█"},
		{"bar", ProgressBar(1, 5), "█████"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.out, tt.want) {
				t.Errorf("output %q does not contain %q", tt.out, tt.want)
			}
		})
	}
}

func newTestWatch(t *testing.T) *Watch {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	e, err := experiment.New(config.GetPreset("hartmann"), log)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatch(e, 2)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchStepsOnTick(t *testing.T) {
	w := newTestWatch(t)
	w.Update(TickMsg{})
	if w.t <= 0 {
		t.Fatal("tick did not advance time")
	}
	if w.peak.Ratio() >= 1 {
		t.Errorf("flow should brake, ratio %g", w.peak.Ratio())
	}
	if got := len(w.speedHistory); got != 3 {
		t.Errorf("history length %d, want 3", got)
	}
}

func TestWatchKeys(t *testing.T) {
	w := newTestWatch(t)
	bz := w.exp.Model.B()[0].Z

	w.Update(key(" "))
	w.Update(TickMsg{})
	if w.t != 0 {
		t.Error("paused watch advanced")
	}

	w.Update(key("+"))
	if got := w.exp.Model.B()[0].Z; got != bz*fieldStep {
		t.Errorf("B = %g, want %g", got, bz*fieldStep)
	}
	w.Update(key("-"))
	w.Update(key("-"))
	if got := w.exp.Model.B()[0].Z; got >= bz {
		t.Errorf("B = %g should be below %g", got, bz)
	}

	w.Update(key(" "))
	w.Update(TickMsg{})
	w.Update(key("r"))
	if w.t != 0 || w.fieldScale != 1 || w.exp.Model.B()[0].Z != bz {
		t.Error("reset did not restore the initial state")
	}

	w.Update(key("?"))
	if !strings.Contains(w.View(), "scale B") {
		t.Error("help not shown")
	}
	if _, cmd := w.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}
