package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and note of one pipeline stage.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects per-stage durations behind --timings.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Stage runs fn as a named phase, recording its duration and the note it
// returns. The error passes through untouched. A nil Timer runs fn without
// recording.
func (t *Timer) Stage(name string, fn func() (string, error)) error {
	if t == nil {
		_, err := fn()
		return err
	}
	start := time.Now()
	note, err := fn()
	t.phases = append(t.phases, Phase{Name: name, Dur: time.Since(start), Note: note})
	return err
}

// Summary renders the recorded phases for stderr.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

// PhaseReport is the serialized form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the timer for serialization.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: float64(phase.Dur) / float64(time.Millisecond),
			Note:       phase.Note,
		}
	}
	report.TotalMS = float64(total) / float64(time.Millisecond)
	return report
}
