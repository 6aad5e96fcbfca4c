package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForms(t *testing.T) {
	assert.Equal(t, "M135 T1\n", ToolSelect(1))
	assert.Equal(t, "G92 B0\n", ZeroAxis("B"))
	assert.Equal(t, "G1 F250.000000 A3.000000\n", Move(250, "A", 3))
	assert.Equal(t, "G1 F1200.000000 B-16.500000\n", Move(1200, "B", -16.5))
}

func TestPrimeBlock(t *testing.T) {
	got := PrimeBlock(0, "A", 300, 2, 1)
	assert.Equal(t, []string{
		"M135 T0\n",
		"G92 A0\n",
		"G1 F300.000000 A2.000000\n",
		"G92 A0\n",
		"M135 T1\n",
	}, got)
}
