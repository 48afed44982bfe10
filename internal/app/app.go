package app

import (
	"fmt"
	"os"
	"time"

	"hrops/internal/config"
	"hrops/internal/encryption"
	"hrops/internal/hr"
	"hrops/internal/httpapi"
	"hrops/internal/store"
)

// App is the application layer between the CLI and the repositories.
// It constructs all dependencies from config and exposes the wired
// repositories for commands that bypass the HTTP layer (seeding).
// The caller must call Close when done.
type App struct {
	cfg *config.Config

	Employees *hr.Employees
	WorkLogs  *hr.WorkLogs
	Leaves    *hr.LeaveRequests
	Feedback  *hr.FeedbackEntries
	Audit     *hr.AuditLog
	Settings  *hr.SettingsStore
	Policy    *hr.Policy

	server  *httpapi.Server
	logFile *os.File
	logger  hr.Logger
}

// NewApp creates a fully wired App from the given config. If encryption
// is configured, passphrase unlocks the private key; it is ignored
// otherwise.
func NewApp(cfg *config.Config, passphrase string) (*App, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	var crypter store.Crypter
	if enc != nil {
		if !enc.IsConfigured() {
			return nil, fmt.Errorf("encryption is enabled but keys are missing: run `hrops init` first")
		}
		session, err := enc.Unlock(passphrase)
		if err != nil {
			return nil, fmt.Errorf("unlocking encryption key: %w", err)
		}
		crypter = session
	}

	st, err := store.NewStoreFromConfig(cfg.Storage, cfg.DataDir, crypter)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	logger, logFile, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	clock := hr.RealClock{}
	ids := hr.UUIDGenerator{}

	employees := hr.NewEmployees(st, clock, ids)
	workLogs := hr.NewWorkLogs(st, clock, ids)
	leaves := hr.NewLeaveRequests(st, employees, clock, ids)
	settings := hr.NewSettingsStore(st, clock)
	feedback := hr.NewFeedbackEntries(st, workLogs, clock, ids)
	audit := hr.NewAuditLog(st, clock, ids, log)
	policy := hr.NewPolicy(employees, settings, clock)

	server := httpapi.NewServer(httpapi.Deps{
		Employees: employees,
		WorkLogs:  workLogs,
		Leaves:    leaves,
		Feedback:  feedback,
		Audit:     audit,
		Settings:  settings,
		Policy:    policy,
		Clock:     clock,
		Logger:    log,
		JWTSecret: cfg.HTTP.JWTSecret,
		TokenTTL:  time.Duration(cfg.HTTP.TokenTTLMinutes) * time.Minute,
	})

	return &App{
		cfg:       cfg,
		Employees: employees,
		WorkLogs:  workLogs,
		Leaves:    leaves,
		Feedback:  feedback,
		Audit:     audit,
		Settings:  settings,
		Policy:    policy,
		server:    server,
		logFile:   logFile,
		logger:    log,
	}, nil
}

// Serve runs the HTTP API until the listener fails or Shutdown is
// called.
func (a *App) Serve() error {
	if a.cfg.HTTP.JWTSecret == "" {
		return fmt.Errorf("http.jwt_secret must be set in the config to serve the API")
	}
	return a.server.Listen(a.cfg.HTTP.ListenAddr)
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown() error { return a.server.Shutdown() }

// Logger returns the application logger.
func (a *App) Logger() hr.Logger { return a.logger }

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
