package models

type Dashboard struct {
	Projects     map[ProjectStatus]int `json:"projects"`
	Tasks        map[TaskStatus]int    `json:"tasks"`
	OverdueTasks int                   `json:"overdue_tasks"` //nolint:tagliatelle
	Customers    int                   `json:"customers"`
}
