package cardvault

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Registry is the full in-memory state of one card registry: the vault, the
// archive, the activity ledger and the timeline, loaded from the flat files
// named by its config. All mutations happen in memory; nothing touches disk
// until one of the Save methods runs at the end of the session.
type Registry struct {
	Vault    *Collection
	Archive  *Collection
	Activity *Activity
	Timeline *Timeline

	cfg *Config
	dir string

	vaultSchema    *Schema
	archiveSchema  *Schema
	activitySchema *Schema
	timelineSchema *Schema
}

// OpenRegistry loads a registry from its config file. A missing config falls
// back to the defaults with a warning, and a missing activity or timeline
// file yields an empty table; a missing vault or archive does too, so a
// fresh registry folder works out of the box.
func OpenRegistry(configPath string) (*Registry, error) {
	cfg, err := LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %q does not exist, using the default config", configPath)
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return openRegistry(cfg, filepath.Dir(configPath))
}

func openRegistry(cfg *Config, dir string) (*Registry, error) {
	r := &Registry{cfg: cfg, dir: dir}

	var err error
	if r.vaultSchema, err = cfg.VaultSchema(); err != nil {
		return nil, fmt.Errorf("vault columns: %w", err)
	}
	if r.archiveSchema, err = cfg.ArchiveSchema(); err != nil {
		return nil, fmt.Errorf("archive columns: %w", err)
	}
	if r.activitySchema, err = cfg.ActivitySchema(); err != nil {
		return nil, fmt.Errorf("activity columns: %w", err)
	}
	if r.timelineSchema, err = cfg.TimelineSchema(); err != nil {
		return nil, fmt.Errorf("timeline columns: %w", err)
	}

	if r.Vault, err = r.loadCards(cfg.VaultFile, r.vaultSchema); err != nil {
		return nil, err
	}
	if r.Archive, err = r.loadCards(cfg.ArchiveFile, r.archiveSchema); err != nil {
		return nil, err
	}

	if r.Activity, err = r.loadActivity(); err != nil {
		return nil, err
	}
	if r.Timeline, err = r.loadTimeline(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) loadCards(name string, schema *Schema) (*Collection, error) {
	f, err := os.Open(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %q does not exist, starting with an empty table", name)
		return NewCollection(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := DecodeCards(f, schema, r.cfg.CSV)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", name, err)
	}
	return c, nil
}

func (r *Registry) loadActivity() (*Activity, error) {
	f, err := os.Open(filepath.Join(r.dir, r.cfg.ActivityFile))
	if errors.Is(err, fs.ErrNotExist) {
		return NewActivity(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := DecodeEvents(f, r.activitySchema, r.cfg.CSV)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", r.cfg.ActivityFile, err)
	}
	return a, nil
}

func (r *Registry) loadTimeline() (*Timeline, error) {
	f, err := os.Open(filepath.Join(r.dir, r.cfg.TimelineFile))
	if errors.Is(err, fs.ErrNotExist) {
		return NewTimeline(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := DecodeTimeline(f, r.timelineSchema, r.cfg.CSV)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", r.cfg.TimelineFile, err)
	}
	return t, nil
}

// Config returns the registry's configuration.
func (r *Registry) Config() *Config { return r.cfg }

// VaultSchema returns the vault's schema.
func (r *Registry) VaultSchema() *Schema { return r.vaultSchema }

// ArchiveSchema returns the archive's schema.
func (r *Registry) ArchiveSchema() *Schema { return r.archiveSchema }

// Path returns the absolute path of one of the registry's files.
func (r *Registry) Path(name string) string { return filepath.Join(r.dir, name) }

// NewEventID mints the next event id against the current ledger.
func (r *Registry) NewEventID() string { return NextID(r.Activity.IDs(), "e") }

// AllPIDs returns every registered pid across vault and archive. New pids
// must be minted against this union to stay unique.
func (r *Registry) AllPIDs() []string {
	var pids []string
	for _, pid := range r.Vault.PIDs() {
		if pid != "" {
			pids = append(pids, pid)
		}
	}
	for _, pid := range r.Archive.PIDs() {
		if pid != "" {
			pids = append(pids, pid)
		}
	}
	return pids
}

// SaveCollections writes the vault and archive files.
func (r *Registry) SaveCollections() error {
	if err := r.saveCards(r.cfg.VaultFile, r.Vault, r.vaultSchema); err != nil {
		return err
	}
	return r.saveCards(r.cfg.ArchiveFile, r.Archive, r.archiveSchema)
}

func (r *Registry) saveCards(name string, c *Collection, schema *Schema) error {
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeCards(f, c, schema, r.cfg.CSV); err != nil {
		return fmt.Errorf("saving %q: %w", name, err)
	}
	return nil
}

// SaveActivity writes the activity ledger file.
func (r *Registry) SaveActivity() error {
	f, err := os.Create(filepath.Join(r.dir, r.cfg.ActivityFile))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeEvents(f, r.Activity, r.activitySchema, r.cfg.CSV); err != nil {
		return fmt.Errorf("saving %q: %w", r.cfg.ActivityFile, err)
	}
	return nil
}

// SaveTimeline writes the timeline file.
func (r *Registry) SaveTimeline() error {
	f, err := os.Create(filepath.Join(r.dir, r.cfg.TimelineFile))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeTimeline(f, r.Timeline, r.timelineSchema, r.cfg.CSV); err != nil {
		return fmt.Errorf("saving %q: %w", r.cfg.TimelineFile, err)
	}
	return nil
}

// Save writes every table of the registry.
func (r *Registry) Save() error {
	if err := r.SaveCollections(); err != nil {
		return err
	}
	if err := r.SaveActivity(); err != nil {
		return err
	}
	return r.SaveTimeline()
}
