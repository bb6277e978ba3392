// Package models defines the content records persisted by the server.
package models

import "github.com/dmitrijs2005/carvingsite/internal/timex"

// Event is a show, fair or demonstration listed on the site.
//
// Date is a free-text label for display only; StartDate and EndDate are
// the structured range used for sorting.
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Date        string     `json:"date"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	StartDate   timex.Date `json:"startDate"`
	EndDate     timex.Date `json:"endDate"`
}

// EventPatch is a partial update. Nil or empty fields keep the stored value.
type EventPatch struct {
	Title       *string     `json:"title"`
	Date        *string     `json:"date"`
	Location    *string     `json:"location"`
	Description *string     `json:"description"`
	Image       *string     `json:"image"`
	StartDate   *timex.Date `json:"startDate"`
	EndDate     *timex.Date `json:"endDate"`
}

// Apply merges the non-empty fields of p over e.
func (p EventPatch) Apply(e *Event) {
	mergeString(&e.Title, p.Title)
	mergeString(&e.Date, p.Date)
	mergeString(&e.Location, p.Location)
	mergeString(&e.Description, p.Description)
	mergeString(&e.Image, p.Image)
	mergeDate(&e.StartDate, p.StartDate)
	mergeDate(&e.EndDate, p.EndDate)
}

func mergeString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func mergeDate(dst *timex.Date, v *timex.Date) {
	if v != nil && !v.IsZero() {
		*dst = *v
	}
}
