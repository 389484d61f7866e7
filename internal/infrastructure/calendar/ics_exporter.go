// Package calendar exports meetings as iCalendar documents.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"

	ics "github.com/arran4/golang-ical"
)

// ProductID identifies the exporter in generated calendars
const ProductID = "-//Mentara//Sessions//EN"

// UIDDomain is appended to meeting IDs to form globally unique event IDs
const UIDDomain = "mentara.app"

// ContentType is the media type of exported documents
const ContentType = "text/calendar; charset=utf-8"

type icsExporter struct {
	now func() time.Time
}

// NewICSExporter creates an exporter producing one VEVENT per calendar
func NewICSExporter() meetings.CalendarExporter {
	return &icsExporter{now: time.Now}
}

// Export renders details as a VCALENDAR with all times in UTC
func (e *icsExporter) Export(details *meetings.Details) ([]byte, error) {
	if details == nil || details.Meeting == nil {
		return nil, fmt.Errorf("meeting is required")
	}
	m := details.Meeting

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(fmt.Sprintf("%s@%s", m.ID, UIDDomain))
	event.SetDtStampTime(e.now().UTC())
	event.SetStartAt(m.StartTime.UTC())
	event.SetEndAt(m.EndTime.UTC())
	event.SetSummary(m.Title)
	event.SetDescription(description(details))
	if m.MeetingURL != "" {
		event.SetLocation(m.MeetingURL)
		event.SetURL(m.MeetingURL)
	}
	if m.Status == meetings.StatusCancelled {
		event.SetStatus(ics.ObjectStatusCancelled)
	} else {
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	return []byte(cal.Serialize()), nil
}

func description(details *meetings.Details) string {
	parts := []string{}
	if details.Meeting.Description != "" {
		parts = append(parts, details.Meeting.Description)
	}
	if details.TherapistName != "" {
		parts = append(parts, "Therapist: "+details.TherapistName)
	}
	if details.ClientName != "" {
		parts = append(parts, "Client: "+details.ClientName)
	}
	parts = append(parts, fmt.Sprintf("Duration: %d minutes", details.Meeting.Duration))
	return strings.Join(parts, "\n")
}
