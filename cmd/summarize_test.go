package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
)

func subjectMsgs(names ...string) []*gmail.Message {
	msgs := make([]*gmail.Message, 0, len(names))
	for i, name := range names {
		msgs = append(msgs, &gmail.Message{
			ID:         string(rune('a' + i)),
			Sender:     name + "@example.com",
			SenderName: name,
			Date:       time.Date(2025, 3, 1+i, 9, 0, 0, 0, time.UTC),
		})
	}
	return msgs
}

func TestGenerateSubject(t *testing.T) {
	tests := []struct {
		name string
		msgs []*gmail.Message
		want string
	}{
		{
			name: "single sender",
			msgs: subjectMsgs("Alice"),
			want: "Summary of Alice for last week",
		},
		{
			name: "two senders",
			msgs: subjectMsgs("Alice", "Bob"),
			want: "Summary of Alice and Bob for last week",
		},
		{
			name: "four senders",
			msgs: subjectMsgs("Alice", "Bob", "Carol", "Dan"),
			want: "Summary of Alice, Bob, Carol, and Dan for last week",
		},
		{
			name: "many senders collapse",
			msgs: subjectMsgs("Alice", "Bob", "Carol", "Dan", "Eve", "Frank"),
			want: "Summary of Alice, Bob, Carol, and 3 others for last week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateSubject(tt.msgs, "last week"))
		})
	}
}

func TestGenerateSubjectDeduplicatesSenders(t *testing.T) {
	msgs := append(subjectMsgs("Alice"), subjectMsgs("Alice")...)
	assert.Equal(t, "Summary of Alice for yesterday", generateSubject(msgs, "yesterday"))
}

func TestGenerateSubjectFallsBackToAddress(t *testing.T) {
	msgs := []*gmail.Message{{ID: "x", Sender: "noreply@example.com"}}
	assert.Equal(t, "Summary of noreply@example.com for last week", generateSubject(msgs, "last week"))
}
