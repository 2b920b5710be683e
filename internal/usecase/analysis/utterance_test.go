package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

const sampleTranscript = `
[00:00:00] John: Let's discuss the project timeline.
[00:00:15] Sarah: We need to complete the first phase by next Friday.
[00:00:30] John: I'll schedule a follow-up meeting for next Tuesday at 2 PM.
[00:00:45] Mike: I'll prepare the documentation by Thursday.
`

func TestExtractUtterances_StrictLines(t *testing.T) {
	got := ExtractUtterances(sampleTranscript)

	require.Len(t, got, 4)
	assert.Equal(t, entities.Utterance{Timestamp: "00:00:00", Speaker: "John", Content: "Let's discuss the project timeline."}, got[0])
	assert.Equal(t, "Sarah", got[1].Speaker)
	assert.Equal(t, "00:00:30", got[2].Timestamp)
	assert.Equal(t, "I'll prepare the documentation by Thursday.", got[3].Content)
}

func TestExtractUtterances_SplitsOnFirstColonOnly(t *testing.T) {
	got := ExtractUtterances("[01:02:03] Dana: meet at 10:30: bring notes")

	require.Len(t, got, 1)
	assert.Equal(t, "Dana", got[0].Speaker)
	assert.Equal(t, "meet at 10:30: bring notes", got[0].Content)
}

func TestExtractUtterances_TrimsAroundColon(t *testing.T) {
	got := ExtractUtterances("   [00:00:05]    Alex Smith   :    hello there   ")

	require.Len(t, got, 1)
	assert.Equal(t, "Alex Smith", got[0].Speaker)
	assert.Equal(t, "hello there", got[0].Content)
}

func TestExtractUtterances_LenientFallback(t *testing.T) {
	text := "(recording) [00:10:00] Priya: starting now\n" +
		"note [00:11:00]Lee:done\r\n"

	got := ExtractUtterances(text)

	require.Len(t, got, 2)
	assert.Equal(t, entities.Utterance{Timestamp: "00:10:00", Speaker: "Priya", Content: "starting now"}, got[0])
	assert.Equal(t, entities.Utterance{Timestamp: "00:11:00", Speaker: "Lee", Content: "done"}, got[1])
}

func TestExtractUtterances_DropsUnrecognisedLines(t *testing.T) {
	text := "Meeting notes\n" +
		"[00:00:01] John: first\n" +
		"-- break --\n" +
		"[00:00:02] no colon here\n" +
		"[0:00:03] Bad: short timestamp\n" +
		"[00:00:04] Sarah: last"

	got := ExtractUtterances(text)

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "last", got[1].Content)
}

func TestExtractUtterances_Empty(t *testing.T) {
	assert.Empty(t, ExtractUtterances(""))
	assert.Empty(t, ExtractUtterances("\n   \n\t\n"))
	assert.NotNil(t, ExtractUtterances(""))
}

func TestRenderConversation(t *testing.T) {
	got := renderConversation(ExtractUtterances(sampleTranscript))

	assert.Equal(t,
		"John: Let's discuss the project timeline.\n"+
			"Sarah: We need to complete the first phase by next Friday.\n"+
			"John: I'll schedule a follow-up meeting for next Tuesday at 2 PM.\n"+
			"Mike: I'll prepare the documentation by Thursday.",
		got)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name  string
		stamp []string
		want  string
	}{
		{name: "empty", want: "0:00"},
		{name: "single line", stamp: []string{"00:00:10"}, want: "0:00"},
		{name: "forty five seconds", stamp: []string{"00:00:00", "00:00:45"}, want: "0:45"},
		{name: "minutes padded seconds", stamp: []string{"10:00:00", "10:12:05"}, want: "12:05"},
		{name: "over an hour in minutes", stamp: []string{"00:00:00", "01:30:00"}, want: "90:00"},
		{name: "backwards", stamp: []string{"23:59:00", "00:01:00"}, want: "0:00"},
		{name: "unparseable", stamp: []string{"00:00:00", "99:99:99"}, want: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utts := make([]entities.Utterance, 0, len(tt.stamp))
			for _, s := range tt.stamp {
				utts = append(utts, entities.Utterance{Timestamp: s, Speaker: "A", Content: "x"})
			}
			assert.Equal(t, tt.want, Duration(utts))
		})
	}
}

func TestParticipants_DistinctInFirstAppearanceOrder(t *testing.T) {
	got := Participants(ExtractUtterances(sampleTranscript))
	assert.Equal(t, []string{"John", "Sarah", "Mike"}, got)
}
