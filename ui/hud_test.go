package ui

import "testing"

func TestProbeLines(t *testing.T) {
	lines := ProbeLines(Probe{Row: 3, Col: 7, U: 3, V: 4, Pressure: -1.5})
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[0].Value != "(3, 7)" {
		t.Errorf("cell = %q", lines[0].Value)
	}
	if lines[3].Label != "|u|" || lines[3].Value != "5.000" {
		t.Errorf("speed line = %+v", lines[3])
	}
	if lines[4].Value != "-1.500" {
		t.Errorf("pressure = %q", lines[4].Value)
	}
}

func TestProbeLinesObstacle(t *testing.T) {
	lines := ProbeLines(Probe{Row: 1, Col: 2, Obstacle: true})
	if len(lines) != 2 || lines[1].Value != "solid" {
		t.Errorf("unexpected obstacle probe %+v", lines)
	}
}
