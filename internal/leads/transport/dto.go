// Package transport defines request/response DTOs for the leads HTTP surface.
package transport

// CreateLeadRequest is the payload for creating a lead.
type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	State   string `json:"state"`
	Product string `json:"product"`
}

// UpdateStatusRequest moves a lead to a new pipeline status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddActivityRequest logs a touchpoint against a lead.
type AddActivityRequest struct {
	Type        string `json:"type" binding:"required"`
	Disposition string `json:"disposition"`
	Notes       string `json:"notes"`
}

// TagRequest adds a tag to a lead.
type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// AddReminderRequest attaches a dated follow-up to a lead.
type AddReminderRequest struct {
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	Time    string `json:"time" binding:"required,datetime=15:04"`
	Message string `json:"message" binding:"required"`
}
