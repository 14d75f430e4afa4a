package model

import (
	"time"

	"github.com/kpereira/painel/pkg/dates"
)

type MemberDTO struct {
	UID               string  `json:"uid"`
	Name              string  `json:"name"`
	WarName           string  `json:"war_name"`
	DisplayName       string  `json:"display_name"`
	Email             string  `json:"email,omitempty"`
	Rank              string  `json:"rank"`
	RankName          string  `json:"rank_name"`
	Specialty         string  `json:"specialty"`
	Status            string  `json:"status"`
	Phone             string  `json:"phone,omitempty"`
	Avatar            string  `json:"avatar,omitempty"`
	EntryDate         string  `json:"entry_date,omitempty"`
	LastPromotionDate *string `json:"last_promotion_date,omitempty"`
	Restricted        bool    `json:"restricted"`
	HasPassword       bool    `json:"has_password"`
}

func (m *Member) DTO(traveling bool) *MemberDTO {
	if m == nil {
		return nil
	}

	d := &MemberDTO{
		UID:         m.UID,
		Name:        m.Name,
		WarName:     m.WarName,
		DisplayName: m.DisplayName(),
		Email:       m.Email,
		Rank:        m.Rank,
		RankName:    RankName(m.Rank),
		Specialty:   m.Specialty,
		Status:      m.Status(traveling),
		Phone:       m.Phone,
		Avatar:      m.Avatar,
		Restricted:  m.Restricted(),
		HasPassword: m.HasPassword(),
	}

	if !m.EntryDate.IsZero() {
		d.EntryDate = dates.FormatCalendarDate(m.EntryDate)
	}

	if m.LastPromotionDate != nil {
		s := dates.FormatCalendarDate(*m.LastPromotionDate)
		d.LastPromotionDate = &s
	}

	return d
}

// ProfileDTO is the login picker entry. It never carries contact data.
type ProfileDTO struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Rank        string `json:"rank"`
	Specialty   string `json:"specialty"`
	Avatar      string `json:"avatar,omitempty"`
	FirstAccess bool   `json:"first_access"`
}

func (m *Member) Profile() *ProfileDTO {
	if m == nil {
		return nil
	}

	return &ProfileDTO{
		UID:         m.UID,
		DisplayName: m.DisplayName(),
		Rank:        m.Rank,
		Specialty:   m.Specialty,
		Avatar:      m.Avatar,
		FirstAccess: !m.HasPassword(),
	}
}

type TaskDTO struct {
	UID              string   `json:"uid"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Specialties      []string `json:"specialties"`
	Periodicity      string   `json:"periodicity"`
	RecurrenceActive bool     `json:"recurrence_active"`
	Status           string   `json:"status"`
	Quantity         int      `json:"quantity"`
	CompletedQty     int      `json:"completed_qty"`
	Deadline         *string  `json:"deadline,omitempty"`
	DaysLeft         *int     `json:"days_left,omitempty"`
	Urgency          string   `json:"urgency,omitempty"`
	StartDate        *string  `json:"start_date,omitempty"`
	Category         string   `json:"category,omitempty"`
	Color            string   `json:"color,omitempty"`
	AssigneeUID      *string  `json:"assignee_uid,omitempty"`
	Assignee         string   `json:"assignee,omitempty"`
	MissionUID       *string  `json:"mission_uid,omitempty"`
}

func (t *Task) DTO(today time.Time) *TaskDTO {
	if t == nil {
		return nil
	}

	d := &TaskDTO{
		UID:              t.UID,
		Title:            t.Title,
		Description:      t.Description,
		Specialties:      t.SpecialtySet().List(),
		Periodicity:      t.Periodicity,
		RecurrenceActive: t.RecurrenceActive,
		Status:           t.Status,
		Quantity:         t.Quantity,
		CompletedQty:     t.CompletedQty,
		AssigneeUID:      t.AssigneeUID,
		MissionUID:       t.MissionUID,
	}

	if t.Deadline != nil {
		s := dates.FormatCalendarDate(*t.Deadline)
		d.Deadline = &s

		if left, ok := t.DaysLeft(today); ok {
			d.DaysLeft = &left
			d.Urgency = Urgency(left)
		}
	}

	if t.StartDate != nil {
		s := dates.FormatCalendarDate(*t.StartDate)
		d.StartDate = &s
	}

	if t.Category != nil {
		d.Category = t.Category.Name
		d.Color = t.Category.Color
	}

	if t.Assignee != nil {
		d.Assignee = t.Assignee.DisplayName()
	}

	return d
}

// Urgency buckets days-to-deadline: past-due, due now (today or tomorrow),
// coming up (2-3 days). Anything further away gets no bucket.
func Urgency(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return "overdue"
	case daysLeft <= 1:
		return "due"
	case daysLeft <= 3:
		return "upcoming"
	default:
		return ""
	}
}

type MissionDTO struct {
	UID         string       `json:"uid"`
	Name        string       `json:"name"`
	Destination string       `json:"destination,omitempty"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	PerDiemType string       `json:"per_diem_type"`
	TravelMode  string       `json:"travel_mode"`
	TeamSize    int          `json:"team_size"`
	FlightAuth  bool         `json:"flight_auth"`
	Notes       string       `json:"notes,omitempty"`
	Duration    float64      `json:"duration"`
	PerDiem     float64      `json:"per_diem"`
	WorkHours   float64      `json:"work_hours"`
	Team        []*MemberDTO `json:"team"`
}

func (m *Mission) DTO() *MissionDTO {
	if m == nil {
		return nil
	}

	d := &MissionDTO{
		UID:         m.UID,
		Name:        m.Name,
		Destination: m.Destination,
		StartDate:   dates.FormatCalendarDate(m.StartDate),
		EndDate:     dates.FormatCalendarDate(m.EndDate),
		PerDiemType: m.PerDiemType,
		TravelMode:  m.TravelMode,
		TeamSize:    m.Headcount(),
		FlightAuth:  m.FlightAuth,
		Notes:       m.Notes,
		Duration:    m.Duration(),
		PerDiem:     m.PerDiem(),
		WorkHours:   m.WorkHours(),
		Team:        make([]*MemberDTO, 0, len(m.Team)),
	}

	for _, mm := range m.Team {
		d.Team = append(d.Team, mm.DTO(false))
	}

	return d
}

type CategoryDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (c *TaskCategory) DTO() *CategoryDTO {
	if c == nil {
		return nil
	}

	return &CategoryDTO{ID: c.ID, Name: c.Name, Color: c.Color}
}
