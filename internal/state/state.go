// Package state holds the in-memory unified config behind a read-write lock
// and exposes the command surface the CLI is built on. Presentation concerns
// stay out: every method returns data or a typed error, never formatted text.
package state

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/ccswitch/ccswitch/internal/backup"
	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/ccswitch/ccswitch/internal/config/store"
	"github.com/ccswitch/ccswitch/internal/config/transaction"
	"github.com/ccswitch/ccswitch/internal/livefile"
	"github.com/ccswitch/ccswitch/internal/plugin"
	"github.com/ccswitch/ccswitch/internal/settings"
	"github.com/ccswitch/ccswitch/internal/syncer"
)

// AppState owns the loaded unified config. All mutation goes through its
// write lock; reads take the shared lock. Persistence is delegated to the
// store, projection to the sync engine.
type AppState struct {
	mu  sync.RWMutex
	cfg *config.Config

	store   *store.Store
	files   *livefile.Adapter
	engine  *syncer.Engine
	plugin  *plugin.Integration
	backups *backup.Manager
	prefs   *settings.File
	logger  *slog.Logger
}

// New loads the unified config and wires the collaborators over one home
// directory.
func New(home string) (*AppState, error) {
	st := store.New(store.DefaultPathIn(home))
	files := livefile.New(home)
	prefs := settings.New(settings.PathIn(home))

	cfg, err := st.Load()
	if err != nil {
		return nil, err
	}

	return &AppState{
		cfg:     cfg,
		store:   st,
		files:   files,
		engine:  syncer.New(st, files),
		plugin:  plugin.New(files, prefs),
		backups: backup.New(st),
		prefs:   prefs,
		logger:  slog.Default().WithGroup("state"),
	}, nil
}

// NewDefault wires AppState over the current user's home directory.
func NewDefault() (*AppState, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving home directory: %w", errz.ErrIO, err)
	}
	return New(home)
}

// ConfigPath returns the unified config file location.
func (a *AppState) ConfigPath() string {
	return a.store.Path()
}

// BackupDir returns the snapshot directory.
func (a *AppState) BackupDir() string {
	return a.backups.Dir()
}

// ConfigBytes returns the current config serialized the way the store writes
// it.
func (a *AppState) ConfigBytes() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.Bytes()
}

// TreeString renders the current config as a display tree.
func (a *AppState) TreeString() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.String()
}

// Validate checks the current in-memory config.
func (a *AppState) Validate() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.Validate()
}

// ListServers returns copies of all registry entries sorted by id.
func (a *AppState) ListServers() []config.McpServer {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]config.McpServer, 0, len(a.cfg.Mcp.Servers))
	for _, id := range a.cfg.Mcp.ServerIDs() {
		out = append(out, *a.cfg.Mcp.Servers[id])
	}
	return out
}

// AddServer inserts a new registry entry, persists, and projects it into the
// live files of every application it is enabled for.
func (a *AppState) AddServer(srv *config.McpServer) error {
	if err := srv.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.cfg.Mcp.Servers[srv.Name]; exists {
		return fmt.Errorf("%w: MCP server '%s'", errz.ErrDuplicateID, srv.Name)
	}
	a.cfg.Mcp.Servers[srv.Name] = srv

	if err := a.store.Save(a.cfg); err != nil {
		return err
	}
	for _, app := range srv.Apps.EnabledApps() {
		if err := a.engine.SyncApp(a.cfg, app); err != nil {
			return err
		}
	}
	return nil
}

// ToggleApp flips one server's flag for one application and re-syncs that
// application's live file.
func (a *AppState) ToggleApp(serverID string, app config.AppType, enabled bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.ToggleApp(a.cfg, serverID, app, enabled)
}

// DeleteServer removes a registry entry and reports whether it existed.
func (a *AppState) DeleteServer(serverID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.DeleteServer(a.cfg, serverID)
}

// SyncAllEnabled re-projects the registry into every live file.
func (a *AppState) SyncAllEnabled() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine.SyncAllEnabled(a.cfg)
}

// ImportFromApp pulls unknown MCP entries out of one application's live file.
func (a *AppState) ImportFromApp(app config.AppType) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.ImportFrom(a.cfg, app)
}

// ExportTo writes the current config to an arbitrary path.
func (a *AppState) ExportTo(path string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	data, err := a.cfg.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", errz.ErrIO, path, err)
	}
	return nil
}

// ImportFromPath validates the document at path, backs up the current store,
// replaces it, and re-projects the live files. Returns the backup path. This
// is the shared primitive behind both import and restore.
func (a *AppState) ImportFromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", errz.ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: reading %s: %w", errz.ErrIO, path, err)
	}
	candidate, err := config.FromBytes(data)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := transaction.New(transaction.SourceFile, path, candidate,
		a.backups, a.store, slog.Default().Handler())
	if err != nil {
		return "", err
	}
	if err := tx.RunValidation(); err != nil {
		return "", err
	}
	if !tx.IsValid.Load() {
		return "", fmt.Errorf("%w: %s", errz.ErrValidation, path)
	}
	if err := tx.Execute(); err != nil {
		return "", err
	}

	a.cfg = candidate
	if err := a.engine.SyncAllEnabled(a.cfg); err != nil {
		return tx.BackupPath(), err
	}

	a.logger.Info("replaced unified config", "source", path, "backup", tx.BackupPath())
	return tx.BackupPath(), nil
}

// CreateBackup snapshots the current config file.
func (a *AppState) CreateBackup() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.backups.CreateBackup()
}

// ListBackups enumerates snapshots, newest first.
func (a *AppState) ListBackups() ([]backup.Entry, error) {
	return a.backups.List()
}

// PruneBackups removes the oldest snapshots beyond keep.
func (a *AppState) PruneBackups(keep int) (int, error) {
	return a.backups.Prune(keep)
}

// Reset backs up the current config, replaces it with the default document,
// and clears every projected live section. Returns the backup path.
func (a *AppState) Reset() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	backupPath, err := a.backups.CreateBackup()
	if err != nil {
		return "", err
	}

	a.cfg = config.Default()
	if err := a.store.Save(a.cfg); err != nil {
		return backupPath, err
	}
	if err := a.engine.SyncAllEnabled(a.cfg); err != nil {
		return backupPath, err
	}

	a.logger.Info("reset unified config", "backup", backupPath)
	return backupPath, nil
}

// ListProviders returns copies of one application's providers sorted by id,
// plus the id of the active one (empty when unset).
func (a *AppState) ListProviders(app config.AppType) ([]config.Provider, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ac, ok := a.cfg.Apps[app]
	if !ok {
		return nil, ""
	}

	ids := make([]string, 0, len(ac.Providers))
	for id := range ac.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]config.Provider, 0, len(ids))
	for _, id := range ids {
		out = append(out, *ac.Providers[id])
	}
	return out, ac.CurrentProviderID
}

// AddProvider registers a provider for one application.
func (a *AppState) AddProvider(app config.AppType, p *config.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ac := a.cfg.App(app)
	if _, exists := ac.Providers[p.ID]; exists {
		return fmt.Errorf("%w: provider '%s' for %s", errz.ErrDuplicateID, p.ID, app)
	}
	ac.Providers[p.ID] = p
	return a.store.Save(a.cfg)
}

// DeleteProvider removes a provider. The active provider cannot be deleted;
// switch away first.
func (a *AppState) DeleteProvider(app config.AppType, providerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ac, ok := a.cfg.Apps[app]
	if !ok {
		return fmt.Errorf("%w: provider '%s' for %s", errz.ErrProviderNotFound, providerID, app)
	}
	if _, exists := ac.Providers[providerID]; !exists {
		return fmt.Errorf("%w: provider '%s' for %s", errz.ErrProviderNotFound, providerID, app)
	}
	if ac.CurrentProviderID == providerID {
		return fmt.Errorf("%w: provider '%s' is active for %s", errz.ErrValidation, providerID, app)
	}

	delete(ac.Providers, providerID)
	return a.store.Save(a.cfg)
}

// SwitchProvider makes a provider current for one application, persists, and
// lets the plugin integration react to the switch.
func (a *AppState) SwitchProvider(app config.AppType, providerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ac := a.cfg.App(app)
	p, ok := ac.Providers[providerID]
	if !ok {
		return fmt.Errorf("%w: provider '%s' for %s", errz.ErrProviderNotFound, providerID, app)
	}

	ac.CurrentProviderID = providerID
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if err := a.store.Save(a.cfg); err != nil {
		return err
	}

	if err := a.plugin.SyncOnProviderSwitch(app, p); err != nil {
		return err
	}

	a.logger.Info("switched provider", "app", app, "provider", providerID)
	return nil
}

// SetIntegration persists the plugin integration preference and applies it.
func (a *AppState) SetIntegration(enabled bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plugin.SetEnabled(enabled)
}

// IntegrationEnabled reports the persisted preference.
func (a *AppState) IntegrationEnabled() (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.plugin.Enabled()
}

// Settings returns the persisted preferences.
func (a *AppState) Settings() (settings.Settings, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.prefs.Load()
}

// SaveSettings persists the preferences.
func (a *AppState) SaveSettings(s settings.Settings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prefs.Save(s)
}
