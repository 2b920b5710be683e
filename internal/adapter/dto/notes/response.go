package notes

// PageResponse references a created page
type PageResponse struct {
	PageID            string `json:"page_id"`
	DecisionsAppended bool   `json:"decisions_appended"`
}

// TaskResponse references a created task row
type TaskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// TasksResponse lists created task rows
type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}
