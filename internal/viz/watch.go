package viz

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/dynamo"
	"github.com/san-kum/lowremag/internal/experiment"
	"github.com/san-kum/lowremag/internal/integrators"
	"github.com/san-kum/lowremag/internal/metrics"
)

const (
	historyCapacity = 600
	fieldStep       = 1.25
)

type TickMsg time.Time

// Watch steps an experiment on every tick and shows the decay of the flow.
// The model's B is scaled in place by the +/- keys, the way an external
// field solver would overwrite it between updates.
type Watch struct {
	exp        *experiment.Experiment
	integrator dynamo.Integrator
	peak       *metrics.PeakSpeed

	x0, x         dynamo.State
	b0            []r3.Vec
	t, dt         float64
	stepsPerTick  int
	fieldScale    float64
	running       bool
	showHelp      bool
	err           error
	speedHistory  []float64
	powerHistory  []float64
	energyHistory []float64
}

// NewWatch steps exp with its case integrator, stepsPerTick steps per frame.
func NewWatch(exp *experiment.Experiment, stepsPerTick int) (*Watch, error) {
	integ, err := integrators.Get(exp.Case.Integrator)
	if err != nil {
		return nil, err
	}
	x0 := exp.InitialState()
	w := &Watch{
		exp:          exp,
		integrator:   integ,
		peak:         metrics.NewPeakSpeed(),
		x0:           x0,
		x:            x0.Clone(),
		b0:           append([]r3.Vec(nil), exp.Model.B()...),
		dt:           exp.Case.Dt,
		stepsPerTick: max(stepsPerTick, 1),
		fieldScale:   1,
		running:      true,
	}
	w.record()
	return w, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (w *Watch) Init() tea.Cmd { return tick() }

func (w *Watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return w, tea.Quit
		case " ":
			w.running = !w.running
		case "r":
			w.reset()
		case "+", "=":
			w.scaleField(fieldStep)
		case "-", "_":
			w.scaleField(1 / fieldStep)
		case "?":
			w.showHelp = !w.showHelp
		}
	case TickMsg:
		if w.running && w.err == nil {
			for i := 0; i < w.stepsPerTick; i++ {
				if err := w.step(); err != nil {
					w.err = err
					break
				}
			}
		}
		return w, tick()
	}
	return w, nil
}

func (w *Watch) step() error {
	next, err := w.integrator.Step(w.exp.Brake, w.x, w.t, w.dt)
	if err != nil {
		return err
	}
	if !next.IsValid() {
		return dynamo.ErrInvalidState
	}
	w.x = next
	w.t += w.dt
	w.record()
	return nil
}

func (w *Watch) record() {
	w.peak.Observe(w.x, w.t)
	p, err := w.exp.Brake.JoulePower(w.x)
	if err != nil {
		w.err = err
		return
	}
	w.speedHistory = appendCapped(w.speedHistory, w.peak.Value())
	w.powerHistory = appendCapped(w.powerHistory, p)
	w.energyHistory = appendCapped(w.energyHistory, w.exp.Brake.Energy(w.x))
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (w *Watch) scaleField(f float64) {
	w.fieldScale *= f
	B := w.exp.Model.B()
	for i := range B {
		B[i] = r3.Scale(f, B[i])
	}
}

func (w *Watch) reset() {
	copy(w.exp.Model.B(), w.b0)
	w.fieldScale = 1
	w.x = w.x0.Clone()
	w.t = 0
	w.err = nil
	w.peak.Reset()
	w.speedHistory = w.speedHistory[:0]
	w.powerHistory = w.powerHistory[:0]
	w.energyHistory = w.energyHistory[:0]
	w.record()
}

func (w *Watch) View() string {
	var s strings.Builder

	status := StatusRunning.Render("RUNNING")
	switch {
	case w.err != nil:
		status = StatusError.Render("FAILED: " + w.err.Error())
	case !w.running:
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(Title.Render("lowReMag · "+w.exp.Case.Name) + "  " + status + "\n\n")

	tau := w.exp.BrakingTime()
	rows := []Row{
		{"time", Num(w.t, "s")},
		{"braking time", Num(tau, "s")},
		{"field scale", Num(w.fieldScale, "")},
		{"peak speed", Num(w.peak.Value(), "m/s")},
		{"u / u0", Num(w.peak.Ratio(), "")},
		{"kinetic energy", Num(last(w.energyHistory), "J")},
		{"joule power", Num(last(w.powerHistory), "W")},
	}
	s.WriteString(Table("state", rows) + "\n\n")
	s.WriteString(PlotSeries("peak speed [m/s]", w.speedHistory) + "\n\n")
	s.WriteString(MetricLabel.Render("joule power") + Sparkline(w.powerHistory, 60) + "\n")
	if tau > 0 && !math.IsInf(tau, 1) {
		s.WriteString(MetricLabel.Render("t / tau") + ProgressBar(min(w.t/(5*tau), 1), 40) + "\n")
	}

	if w.showHelp {
		s.WriteString("\n" + KeyHint.Render("space pause · r reset · +/- scale B · q quit"))
	} else {
		s.WriteString("\n" + KeyHint.Render("? help"))
	}
	return s.String()
}

func last(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Run blocks until the user quits.
func Run(w *Watch) error {
	_, err := tea.NewProgram(w).Run()
	return err
}
