package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		cur, next string
		want      Class
	}{
		{"toolchange", "M135 T1\n", "", Class{Kind: Toolchange, Tool: 1}},
		{"toolchange with comment", "M135 T0 (left)\n", "", Class{Kind: Toolchange, Tool: 0}},
		{"snort single line", "G1 F200 A5.000000 (snort)", "", Class{Kind: Snort, Pos: 5}},
		{"squirt single line", "G1 F200 B5.5 (squirt)\n", "", Class{Kind: Squirt, Pos: 5.5}},
		{"negative position", "G1 F1200 A-14.2 (snort)\n", "", Class{Kind: Snort, Pos: -14.2}},
		{"split move", "G1 F1200\n", "G1 E-3.5\n", Class{Kind: SplitMove, Pos: -3.5}},
		{"split move crlf", "G1 F1200\r\n", "G1 E2\r\n", Class{Kind: SplitMove, Pos: 2}},
		{"feed without position line", "G1 F1200\n", "G1 X10 Y10\n", Class{}},
		{"feed with trailing text", "G1 F1200 ; fast\n", "G1 E3\n", Class{}},
		{"layer slice", "(Slice 12, 1 Extruder)\n", "", Class{Kind: LayerStart}},
		{"layer tag", "(<layer> 0.270 )\n", "", Class{Kind: LayerStart}},
		{"purge lower", "; purge tower\n", "", Class{Kind: PurgeMarker}},
		{"purge mixed case", "(Purge Wall)\n", "", Class{Kind: PurgeMarker}},
		{"malformed number is plain", "G1 F200 A1.2.3 (snort)\n", "", Class{}},
		{"plain move", "G1 X10 Y10 Z0.2 F3000\n", "", Class{}},
		{"blank", "\n", "", Class{}},
		{"empty", "", "", Class{}},
		{"unrelated mcode", "M104 S230 T0\n", "", Class{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cur, tt.next))
		})
	}
}

func TestClassReadings(t *testing.T) {
	split := Class{Kind: SplitMove}
	assert.True(t, split.IsSnort())
	assert.True(t, split.IsSquirt())
	assert.True(t, split.SplitForm())

	snort := Class{Kind: Snort}
	assert.True(t, snort.IsSnort())
	assert.False(t, snort.IsSquirt())
	assert.False(t, snort.SplitForm())

	squirt := Class{Kind: Squirt}
	assert.False(t, squirt.IsSnort())
	assert.True(t, squirt.IsSquirt())
}

func TestToolchangeWinsOverPurge(t *testing.T) {
	c := Classify("M135 T1 (purge)\n", "")
	assert.Equal(t, Toolchange, c.Kind)
	assert.True(t, IsPurge("M135 T1 (purge)\n"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "split-move", SplitMove.String())
	assert.Equal(t, "plain", Kind(99).String())
}
