package model

import (
	"time"

	"github.com/kpereira/painel/pkg/dates"
	"github.com/kpereira/painel/pkg/diaria"
)

const (
	PerDiemGeneral = "Geral"
	PerDiemCapital = "Capital"
	PerDiemSpecial = "Especial"
)

const (
	TravelAir  = "Aéreo"
	TravelLand = "Terrestre"
)

type Mission struct {
	UID         string `gorm:"primaryKey;size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string    `gorm:"not null;size:512"`
	Destination string    `gorm:"size:255"`
	StartDate   time.Time `gorm:"index"`
	EndDate     time.Time `gorm:"index"`
	PerDiemType string    `gorm:"size:16;default:Geral"`
	TravelMode  string    `gorm:"size:16;default:Aéreo"`
	// TeamSize is the planned headcount, used while the roster of names
	// is still open.
	TeamSize int
	// FlightAuth is the FAV flag. Missions without one get a preparatory
	// task created automatically.
	FlightAuth bool
	Notes      string
	Team       []*Member `gorm:"many2many:mission_team;"`
}

// Headcount is the named team when one exists, the planned team size
// otherwise.
func (m *Mission) Headcount() int {
	if m == nil {
		return 0
	}

	if len(m.Team) > 0 {
		return len(m.Team)
	}

	return m.TeamSize
}

// Duration is the mission length in per-diem days.
func (m *Mission) Duration() float64 {
	return diaria.Duration(m.StartDate, m.EndDate)
}

func (m *Mission) PerDiem() float64 {
	return diaria.PerDiem(m.StartDate, m.EndDate, m.Headcount())
}

func (m *Mission) WorkHours() float64 {
	return diaria.WorkHours(m.StartDate, m.EndDate, m.Headcount())
}

// Includes reports whether the given calendar day falls inside the mission
// range, inclusive on both ends.
func (m *Mission) Includes(day time.Time) bool {
	d := dates.Midnight(day)
	start := dates.Midnight(m.StartDate)
	end := dates.Midnight(m.EndDate)

	return !d.Before(start) && !d.After(end)
}

func (m *Mission) HasMember(uid string) bool {
	for _, mm := range m.Team {
		if mm != nil && mm.UID == uid {
			return true
		}
	}

	return false
}
