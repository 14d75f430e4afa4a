package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// PasswordDisabled marks a member who opted out of a password on first
// access.
const PasswordDisabled = "DISABLED"

const (
	SpecialtyBCT = "BCT"
	SpecialtyAIS = "AIS"
)

const (
	StatusActive      = "Ativo"
	StatusTraveling   = "Em Viagem"
	StatusUnavailable = "Indisponível"
)

// rankOrder maps rank abbreviations to seniority, officers first. Unknown
// ranks sort last.
var rankOrder = map[string]int{
	"MAJ":  1,
	"CAP":  2,
	"1TEN": 3,
	"2TEN": 4,
	"SO":   5,
	"1SGT": 6,
	"2SGT": 7,
	"3SGT": 8,
	"CIV":  9,
}

var rankNames = map[string]string{
	"MAJ":  "Major",
	"CAP":  "Capitão",
	"1TEN": "1º Tenente",
	"2TEN": "2º Tenente",
	"SO":   "Suboficial",
	"1SGT": "1º Sargento",
	"2SGT": "2º Sargento",
	"3SGT": "3º Sargento",
	"CIV":  "Civil",
}

func RankValue(rank string) int {
	if v, ok := rankOrder[rank]; ok {
		return v
	}

	return 99
}

func RankName(rank string) string {
	if n, ok := rankNames[rank]; ok {
		return n
	}

	return rank
}

type Member struct {
	UID               string `gorm:"primaryKey;size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Name              string `gorm:"not null;size:255"`
	WarName           string `gorm:"size:255"`
	Email             string `gorm:"size:255"`
	Rank              string `gorm:"index;size:16"`
	Specialty         string `gorm:"index;size:8"`
	EntryDate         time.Time
	LastPromotionDate *time.Time
	Phone             string `gorm:"size:64"`
	Avatar            string `gorm:"size:512"`
	Unavailable       bool
	PasswordHash      *string `gorm:"size:255"`
	RequiresPassword  bool
}

func (m *Member) RankValue() int {
	if m == nil {
		return 99
	}

	return RankValue(m.Rank)
}

// IsOfficer covers Major through 2º Tenente.
func (m *Member) IsOfficer() bool {
	return m.RankValue() <= 4
}

// Restricted members (sergeants and civilians) are locked to their own
// specialty on the dashboard and cannot delete tasks.
func (m *Member) Restricted() bool {
	return m.RankValue() > 5
}

func (m *Member) CanDeleteTasks() bool {
	return m.RankValue() <= 5
}

// PerDiemEligible marks the ranks that take part in the per-diem ranking:
// enlisted (Suboficial and sergeants), not officers or civilians.
func (m *Member) PerDiemEligible() bool {
	v := m.RankValue()

	return v >= 5 && v <= 8
}

// Status derives the operational status. Traveling wins over the stored
// availability flag.
func (m *Member) Status(traveling bool) string {
	switch {
	case traveling:
		return StatusTraveling
	case m.Unavailable:
		return StatusUnavailable
	default:
		return StatusActive
	}
}

// DisplayName is "abbrev war-name", falling back to the first given name.
func (m *Member) DisplayName() string {
	name := m.WarName

	if name == "" {
		name = m.Name
		for i, r := range name {
			if r == ' ' {
				name = name[:i]
				break
			}
		}
	}

	if m.Rank == "" {
		return name
	}

	return m.Rank + " " + name
}

// HasPassword reports whether the member finished first-access setup.
func (m *Member) HasPassword() bool {
	return m.PasswordHash != nil
}

func (m *Member) CheckPassword(password string) bool {
	if m == nil || m.PasswordHash == nil {
		return false
	}

	if !m.RequiresPassword || *m.PasswordHash == PasswordDisabled {
		return true
	}

	return bcrypt.CompareHashAndPassword([]byte(*m.PasswordHash), []byte(password)) == nil
}

func (m *Member) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	s := string(b)
	m.PasswordHash = &s
	m.RequiresPassword = true

	return nil
}

// DisablePassword records the "do not use a password" first-access choice.
func (m *Member) DisablePassword() {
	s := PasswordDisabled
	m.PasswordHash = &s
	m.RequiresPassword = false
}
