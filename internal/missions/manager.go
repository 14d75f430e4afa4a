package missions

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kpereira/painel/internal/cache"
	"github.com/kpereira/painel/internal/database"
	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/dates"
	"github.com/kpereira/painel/pkg/diaria"
)

var (
	ErrNotFound   = errors.New("mission not found")
	ErrBadRange   = errors.New("mission ends before it starts")
	ErrBadMember  = errors.New("unknown team member")
	ErrIncomplete = errors.New("mission needs a name and a destination")
)

// travelTTL bounds how stale the traveling flag on roster listings can
// get after a mission change.
const travelTTL = time.Minute

type Manager struct {
	logger *slog.Logger
	dbm    *database.DatabaseManager
	travel *cache.Cache[bool]
}

func New(dbm *database.DatabaseManager) *Manager {
	m := &Manager{
		logger: slog.With("logger", "missions"),
		dbm:    dbm,
	}

	m.travel = cache.NewWithTTL[bool](travelTTL, m.loadTraveling)

	return m
}

func (m *Manager) Get(uid string) *model.Mission {
	if m == nil || m.dbm == nil {
		return nil
	}

	return m.dbm.MissionQuery().UID(uid).Full().One()
}

func (m *Manager) Year(year int) []*model.Mission {
	if m == nil || m.dbm == nil {
		return nil
	}

	return m.dbm.MissionQuery().Year(year).Full().Get()
}

func (m *Manager) validate(mission *model.Mission, teamUIDs []string) ([]*model.Member, error) {
	if mission.Name == "" || mission.Destination == "" {
		return nil, ErrIncomplete
	}

	if mission.EndDate.Before(mission.StartDate) {
		return nil, ErrBadRange
	}

	if mission.PerDiemType == "" {
		mission.PerDiemType = model.PerDiemGeneral
	}

	if mission.TravelMode == "" {
		mission.TravelMode = model.TravelAir
	}

	team := make([]*model.Member, 0, len(teamUIDs))

	for _, uid := range teamUIDs {
		mm := m.dbm.MemberQuery().UID(uid).One()
		if mm == nil {
			return nil, fmt.Errorf("%w: %s", ErrBadMember, uid)
		}

		team = append(team, mm)
	}

	return team, nil
}

// Create stores the mission with its team. Missions without a flight
// authorization get a linked preparatory task due at mission start.
func (m *Manager) Create(mission *model.Mission, teamUIDs []string) error {
	team, err := m.validate(mission, teamUIDs)
	if err != nil {
		return err
	}

	if mission.UID == "" {
		mission.UID = uuid.NewString()
	}

	mission.Team = team

	if err := m.dbm.Create(mission); err != nil {
		return err
	}

	if !mission.FlightAuth {
		if err := m.createFavTask(mission); err != nil {
			m.logger.Error("error creating FAV task", slog.Any("error", err))
		}
	}

	m.dropTravelCache(mission)

	return nil
}

func (m *Manager) createFavTask(mission *model.Mission) error {
	start := mission.StartDate

	return m.dbm.Create(&model.Task{
		UID:         uuid.NewString(),
		Title:       "Confeccionar FAV - " + mission.Name,
		Description: "Missão " + mission.Name + " (" + mission.Destination + ") sem FAV emitida",
		Specialties: model.SpecialtyBCT + ";" + model.SpecialtyAIS,
		Periodicity: model.PeriodPunctual,
		Status:      model.TaskPending,
		Quantity:    1,
		Deadline:    &start,
		MissionUID:  &mission.UID,
	})
}

// Update edits the mission and keeps the FAV task consistent: gaining the
// authorization removes the pending preparatory task, losing it recreates
// one.
func (m *Manager) Update(uid string, upd *model.Mission, teamUIDs []string) error {
	old := m.Get(uid)
	if old == nil {
		return ErrNotFound
	}

	team, err := m.validate(upd, teamUIDs)
	if err != nil {
		return err
	}

	if err := m.dbm.MissionQuery().UID(uid).Update(map[string]any{
		"name":          upd.Name,
		"destination":   upd.Destination,
		"start_date":    upd.StartDate,
		"end_date":      upd.EndDate,
		"per_diem_type": upd.PerDiemType,
		"travel_mode":   upd.TravelMode,
		"team_size":     upd.TeamSize,
		"flight_auth":   upd.FlightAuth,
		"notes":         upd.Notes,
	}); err != nil {
		return err
	}

	if err := m.dbm.SetTeam(old, team); err != nil {
		return err
	}

	m.dropTravelCache(old)
	upd.Team = team
	m.dropTravelCache(upd)

	switch {
	case upd.FlightAuth && !old.FlightAuth:
		for _, t := range m.dbm.TaskQuery().Mission(uid).Status(model.TaskPending).Get() {
			if err := m.dbm.TaskQuery().Delete(t.UID); err != nil {
				return err
			}
		}
	case !upd.FlightAuth && old.FlightAuth:
		if m.dbm.TaskQuery().Mission(uid).Count() == 0 {
			upd.UID = uid
			if err := m.createFavTask(upd); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *Manager) Delete(uid string) error {
	mi := m.Get(uid)
	if mi == nil {
		return ErrNotFound
	}

	if err := m.dbm.MissionQuery().Delete(uid); err != nil {
		return err
	}

	m.dropTravelCache(mi)

	return nil
}

type YearSummary struct {
	Year             int     `json:"year"`
	TotalMissions    int     `json:"total_missions"`
	PreviousMissions int     `json:"previous_year_missions"`
	TotalDays        float64 `json:"total_days"`
	TotalPerDiem     float64 `json:"total_diarias"`
	WorkHours        float64 `json:"work_hours"`
}

func (m *Manager) Summary(year int) *YearSummary {
	s := &YearSummary{Year: year}

	var days, perDiem, hours float64

	for _, mi := range m.Year(year) {
		s.TotalMissions++
		days += mi.Duration()
		perDiem += mi.PerDiem()
		hours += mi.WorkHours()
	}

	s.PreviousMissions = int(m.dbm.MissionQuery().Year(year - 1).Count())
	s.TotalDays = diaria.Round1(days)
	s.TotalPerDiem = diaria.Round1(perDiem)
	s.WorkHours = diaria.Round1(hours)

	return s
}

type MemberTotal struct {
	UID         string  `json:"uid"`
	DisplayName string  `json:"display_name"`
	Rank        string  `json:"rank"`
	Missions    int     `json:"missions"`
	Days        float64 `json:"days"`
}

// Ranking credits each team member the full mission duration. Only
// enlisted ranks take part.
func (m *Manager) Ranking(year int) []*MemberTotal {
	totals := make(map[string]*MemberTotal)
	order := make([]string, 0)

	for _, mi := range m.Year(year) {
		d := mi.Duration()

		for _, mm := range mi.Team {
			if mm == nil || !mm.PerDiemEligible() {
				continue
			}

			t, ok := totals[mm.UID]
			if !ok {
				t = &MemberTotal{UID: mm.UID, DisplayName: mm.DisplayName(), Rank: mm.Rank}
				totals[mm.UID] = t
				order = append(order, mm.UID)
			}

			t.Missions++
			t.Days += d
		}
	}

	res := make([]*MemberTotal, 0, len(order))
	for _, uid := range order {
		t := totals[uid]
		t.Days = diaria.Round1(t.Days)
		res = append(res, t)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Days > res[j].Days
	})

	return res
}

// MemberYearTotal is the per-diem-limit check used in planning.
func (m *Manager) MemberYearTotal(uid string, year int) float64 {
	var days float64

	for _, mi := range m.dbm.MissionQuery().Year(year).Member(uid).Get() {
		days += mi.Duration()
	}

	return diaria.Round1(days)
}

// Traveling reports whether the member is on a mission on the given day.
// Roster listings hit this once per member, so the answer is cached for a
// minute and dropped on mission changes.
func (m *Manager) Traveling(uid string, day time.Time) bool {
	return m.travel.Load(uid + "|" + dates.FormatCalendarDate(day))
}

func (m *Manager) loadTraveling(key string) bool {
	uid, ds, ok := strings.Cut(key, "|")
	if !ok {
		return false
	}

	d, err := dates.ParseCalendarDate(ds)
	if err != nil {
		return false
	}

	return m.dbm.MissionQuery().Member(uid).After(d).Before(d).Count() > 0
}

func (m *Manager) dropTravelCache(mission *model.Mission) {
	if mission == nil {
		return
	}

	day := dates.Midnight(mission.StartDate)
	end := dates.Midnight(mission.EndDate)

	for !day.After(end) {
		ds := dates.FormatCalendarDate(day)

		for _, mm := range mission.Team {
			if mm != nil {
				m.travel.Invalidate(mm.UID + "|" + ds)
			}
		}

		day = day.AddDate(0, 0, 1)
	}
}
