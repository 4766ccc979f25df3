package domain

const MailTypeScheduleGenerated = "schedule_generated"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ScheduleRow struct {
	Day       string `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type ScheduleGeneratedMailData struct {
	ManagerName string        `json:"managerName"`
	ScheduleID  string        `json:"scheduleID"`
	GeneratedAt string        `json:"generatedAt"`
	Rows        []ScheduleRow `json:"rows"`
	Warnings    []string      `json:"warnings"`
}
