package analysis

const summaryPrompt = `Analyze the following meeting transcript and provide:
1. A concise summary (2-3 paragraphs)
2. List of main topics discussed
3. Key points highlighted

Format your response as a JSON object with these keys:
{
    "summary": "your summary here",
    "main_topics": ["topic 1", "topic 2"],
    "key_points": ["point 1", "point 2"]
}

Meeting Transcript:
`

const actionItemsPrompt = `Analyze this meeting transcript and identify all action items. For each action item, provide:
1. Who is responsible
2. What needs to be done
3. Any mentioned deadlines

Format your response as a JSON array of objects:
[
    {
        "assignee": "person name",
        "task": "what needs to be done",
        "deadline": "mentioned deadline or null",
        "context": "relevant context"
    }
]

Meeting Transcript:
`

const meetingRequestsPrompt = `Analyze this conversation for any mentions of future meetings or scheduling requests.
For each meeting request, identify:
1. Who requested the meeting
2. Proposed time/date (use YYYY-MM-DD or YYYY-MM-DD HH:MM when the date is clear)
3. Suggested participants
4. Meeting purpose

Format your response as a JSON array of objects:
[
    {
        "requester": "person name",
        "proposed_time": "mentioned time",
        "participants": ["person1", "person2"],
        "purpose": "meeting purpose"
    }
]

Meeting Transcript:
`

const keyDecisionsPrompt = `Analyze this conversation and identify key decisions made during the meeting.
For each decision, provide:
1. What was decided
2. Who made or approved the decision
3. Any context or rationale provided

Format your response as a JSON array of objects:
[
    {
        "decision": "what was decided",
        "decision_maker": "who made the decision",
        "rationale": "context or reasoning"
    }
]

Meeting Transcript:
`
