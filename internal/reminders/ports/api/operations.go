package api

import "net/http"

// Имена операций. Они же служат operationId в OpenAPI и именами MCP-инструментов.
const (
	OpCreateReminder  = "create_reminder"
	OpGetAllReminders = "get_all_reminders"
	OpGetReminder     = "get_reminder"
	OpUpdateReminder  = "update_reminder"
	OpDeleteReminder  = "delete_reminder"
)

// PathParamReminderID - имя параметра пути с идентификатором напоминания.
const PathParamReminderID = "reminder_id"

// Operation описывает одну операцию над напоминаниями.
// Path записывается в форме OpenAPI: /reminders/{reminder_id}.
type Operation struct {
	Name          string
	Method        string
	Path          string
	Summary       string
	Description   string
	SuccessStatus int
	HasBody       bool
	HasPathID     bool
}

// Endpoint возвращает строку вида "GET /reminders/".
func (o Operation) Endpoint() string {
	return o.Method + " " + o.Path
}

// Operations возвращает таблицу операций в порядке объявления.
func Operations() []Operation {
	return []Operation{
		{
			Name:          OpCreateReminder,
			Method:        http.MethodPost,
			Path:          "/reminders/",
			Summary:       "Create a new reminder",
			Description:   "Create a new reminder with the provided title, optional description, and optional due date.",
			SuccessStatus: http.StatusCreated,
			HasBody:       true,
		},
		{
			Name:          OpGetAllReminders,
			Method:        http.MethodGet,
			Path:          "/reminders/",
			Summary:       "Get all reminders",
			Description:   "Retrieve a list of all reminders stored in the database.",
			SuccessStatus: http.StatusOK,
		},
		{
			Name:          OpGetReminder,
			Method:        http.MethodGet,
			Path:          "/reminders/{" + PathParamReminderID + "}",
			Summary:       "Get a specific reminder",
			Description:   "Retrieve a specific reminder by its ID.",
			SuccessStatus: http.StatusOK,
			HasPathID:     true,
		},
		{
			Name:          OpUpdateReminder,
			Method:        http.MethodPut,
			Path:          "/reminders/{" + PathParamReminderID + "}",
			Summary:       "Update a reminder",
			Description:   "Update an existing reminder by its ID. Omitted fields keep their value, null clears description and due_date.",
			SuccessStatus: http.StatusOK,
			HasBody:       true,
			HasPathID:     true,
		},
		{
			Name:          OpDeleteReminder,
			Method:        http.MethodDelete,
			Path:          "/reminders/{" + PathParamReminderID + "}",
			Summary:       "Delete a reminder",
			Description:   "Delete an existing reminder by its ID.",
			SuccessStatus: http.StatusNoContent,
			HasPathID:     true,
		},
	}
}
