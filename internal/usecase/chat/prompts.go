package chat

import (
	"encoding/json"
	"fmt"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

// Fixed replies
const (
	NeedTranscriptMessage   = "Please upload a transcript first so I can help you better."
	NotesUnavailableMessage = "Notion integration is not configured. Set NOTION_TOKEN and NOTION_DATABASE_ID or NOTION_PAGE_ID to save meeting notes."
	NoResponseMessage       = "Sorry, I couldn't generate a response right now. Please try again in a moment."
	WelcomeMessage          = "👋 Welcome! I'm ready to help you analyze meeting transcripts.\n\n" +
		"I can help you with:\n" +
		"1. 📅 Scheduling follow-up meetings mentioned\n" +
		"2. 📋 Creating Notion pages for tasks and decisions\n" +
		"3. 🔍 Answering questions about specific topics\n" +
		"4. 📊 Providing more details about any discussion point\n\n" +
		"Upload a transcript to get started."
)

const summaryMessageTemplate = "📄 I've analyzed the transcript. Here's a summary:\n\n%s\n\n" +
	"You can ask me about:\n" +
	"- Action items\n" +
	"- Meeting requests\n" +
	"- Key decisions\n" +
	"- Specific topics discussed"

const noSummaryMessage = "I've processed the transcript but couldn't generate a summary. " +
	"You can still ask me questions about the content."

const processingErrorTemplate = "I encountered an error while processing the transcript.\n\n" +
	"Error details: %v\n\n" +
	"Please make sure the transcript follows the format: [HH:MM:SS] Speaker: Message"

func summaryMessage(result entities.AnalysisResult) string {
	if result.Summary.Summary == "" {
		return noSummaryMessage
	}
	return fmt.Sprintf(summaryMessageTemplate, result.Summary.Summary)
}

func buildPrompt(intent Intent, a entities.AnalysisResult, message string) string {
	switch intent {
	case IntentSchedule:
		return fmt.Sprintf(`Based on the meeting transcript where:
Meeting Requests: %s

The user asks: %s

If there are relevant meeting requests, suggest scheduling them and provide details.
Format the response in a friendly, concise way, including:
1. The purpose of the meeting
2. Suggested attendees
3. Proposed time/date
4. Any context from the discussion

If you suggest scheduling, end with: "Would you like me to schedule this meeting?"`,
			toJSON(a.MeetingRequests), message)
	case IntentTasks:
		return fmt.Sprintf(`Based on the meeting transcript where:
Action Items: %s

The user asks: %s

List relevant action items concisely, including:
1. Who is responsible
2. What needs to be done
3. Any deadlines mentioned
4. Related context

If there are tasks to track, end with: "Would you like me to create a Notion page to track these tasks?"`,
			toJSON(a.ActionItems), message)
	case IntentDecisions:
		return fmt.Sprintf(`Based on the meeting transcript where:
Key Decisions: %s

The user asks: %s

Explain the relevant decisions concisely, including:
1. What was decided
2. Who made or approved the decision
3. The rationale behind it
4. Any implementation details discussed

If there are important decisions, end with: "Would you like me to document these decisions in Notion?"`,
			toJSON(a.KeyDecisions), message)
	default:
		return fmt.Sprintf(`Based on the meeting transcript analysis, where:
- Summary: %s
- Action Items: %s
- Meeting Requests: %s
- Key Decisions: %s

User Question: %s

Provide a helpful, concise and structured response using the information from the transcript analysis.
If the user asks about something not covered in the transcript, politely indicate that.
If your response involves actionable items, suggest relevant next steps (like scheduling meetings or creating Notion pages).`,
			toJSON(a.Summary), toJSON(a.ActionItems), toJSON(a.MeetingRequests), toJSON(a.KeyDecisions), message)
	}
}

func toJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
