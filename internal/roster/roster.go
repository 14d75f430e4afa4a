package roster

import (
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/kpereira/painel/internal/database"
	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/dates"
)

// SeedEntry is one line of the roster seed file.
type SeedEntry struct {
	UID       string `yaml:"uid"`
	Name      string `yaml:"name"`
	WarName   string `yaml:"war_name"`
	Email     string `yaml:"email,omitempty"`
	Rank      string `yaml:"rank"`
	Specialty string `yaml:"specialty"`
	EntryDate string `yaml:"entry_date,omitempty"`
	Phone     string `yaml:"phone,omitempty"`
	Avatar    string `yaml:"avatar,omitempty"`
}

// FileRoster keeps the member table in sync with a yaml seed file. The
// file is watched and re-applied on every write, so the unit admin can
// manage the roster with a text editor. Entries never overwrite password
// hashes set through the app.
type FileRoster struct {
	file   string
	logger *slog.Logger
	dbm    *database.DatabaseManager

	watcher *fsnotify.Watcher

	mx sync.Mutex
}

func New(dbm *database.DatabaseManager, file string) *FileRoster {
	return &FileRoster{
		file:   file,
		logger: slog.With("logger", "roster"),
		dbm:    dbm,
	}
}

func (r *FileRoster) Load() error {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, err := os.Lstat(r.file); os.IsNotExist(err) {
		// create empty file so the watcher has something to attach to
		f, err := os.Create(r.file)
		if err != nil {
			return err
		}
		f.Close()
		return nil
	}

	dat, err := os.ReadFile(r.file)
	if err != nil {
		return err
	}

	entries := make([]*SeedEntry, 0)

	if err := yaml.Unmarshal(dat, &entries); err != nil {
		return err
	}

	for _, e := range entries {
		if e.UID == "" || e.Name == "" {
			continue
		}

		r.apply(e)
	}

	return nil
}

func (r *FileRoster) apply(e *SeedEntry) {
	m := r.dbm.MemberQuery().UID(e.UID).One()

	if m == nil {
		m = &model.Member{UID: e.UID}
	}

	m.Name = e.Name
	m.WarName = e.WarName
	m.Email = e.Email
	m.Rank = e.Rank
	m.Specialty = e.Specialty
	m.Phone = e.Phone
	m.Avatar = e.Avatar

	if e.EntryDate != "" {
		if d, err := dates.ParseCalendarDate(e.EntryDate); err == nil {
			m.EntryDate = d
		} else {
			r.logger.Warn("bad entry_date for "+e.UID, slog.Any("error", err))
		}
	}

	if err := r.dbm.Save(m); err != nil {
		r.logger.Error("error saving member "+e.UID, slog.Any("error", err))
	}
}

func (r *FileRoster) Start() error {
	var err error
	r.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := r.watcher.Add(r.file); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-r.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) && event.Name == r.file {
					r.logger.Info("roster file is modified, reloading")
					if err := r.Load(); err != nil {
						r.logger.Error("reload error", slog.Any("error", err))
					}
				}
			case err, ok := <-r.watcher.Errors:
				if !ok {
					return
				}
				r.logger.Error("watcher error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (r *FileRoster) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}
