package backup

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var ErrBackupNotFound = errors.New("backup not found")

// Manager snapshots the SQLite database file into timestamped zip archives
// and restores from them.
type Manager struct {
	dbPath string
	dir    string
}

func NewManager(dbPath, dir string) *Manager {
	return &Manager{dbPath: dbPath, dir: dir}
}

type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Create writes a new backup archive and returns its metadata.
func (m *Manager) Create() (*Info, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, err
	}

	src, err := os.Open(m.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("backup-%s-%s.zip",
		time.Now().Format("20060102-150405"),
		strings.Split(uuid.NewString(), "-")[0])
	path := filepath.Join(m.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	entry, err := zw.Create(filepath.Base(m.dbPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(entry, src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &Info{Name: name, Size: stat.Size(), CreatedAt: stat.ModTime()}, nil
}

// List returns the available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, err
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: e.Name(), Size: fi.Size(), CreatedAt: fi.ModTime()})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Restore overwrites the live database file with the contents of the named
// backup. The caller is responsible for reopening connections afterwards.
func (m *Manager) Restore(name string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name %q", name)
	}

	path := filepath.Join(m.dir, name)
	zr, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return err
	}
	defer zr.Close()

	want := filepath.Base(m.dbPath)
	for _, f := range zr.File {
		if f.Name != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		out, err := os.Create(m.dbPath)
		if err != nil {
			return err
		}
		defer out.Close()

		_, err = io.Copy(out, rc)
		return err
	}
	return fmt.Errorf("archive %s does not contain %s", name, want)
}

// Schedule starts a background cron running Create on the given spec.
func (m *Manager) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		info, err := m.Create()
		if err != nil {
			log.Printf("scheduled backup failed: %v", err)
			return
		}
		log.Printf("scheduled backup written: %s (%d bytes)", info.Name, info.Size)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
