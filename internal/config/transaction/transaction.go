// Package transaction frames a config restore as a small saga: validate the
// candidate, snapshot the current file, then replace it. Every step is tracked
// by a state machine and logged into a replayable collector so a failed
// restore can explain itself after the fact.
package transaction

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/transaction/finitestate"
	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
)

// Source describes where the candidate config came from.
type Source string

const (
	// SourceFile indicates a candidate read from an arbitrary file
	SourceFile Source = "file"
	// SourceBackup indicates a candidate read from a backup snapshot
	SourceBackup Source = "backup"
	// SourceTest indicates a candidate constructed by a test
	SourceTest Source = "test"
)

// Backupper snapshots the current config file before it is replaced.
type Backupper interface {
	CreateBackup() (string, error)
}

// Saver persists a config as the new live store content.
type Saver interface {
	Save(*config.Config) error
}

// RestoreTransaction represents one validate-backup-replace cycle.
type RestoreTransaction struct {
	// ID is the unique identifier for this transaction
	ID uuid.UUID

	// Source metadata
	Source       Source
	SourceDetail string
	CreatedAt    time.Time

	// State management
	fsm finitestate.Machine

	// Logging with history tracking
	logger       *slog.Logger
	logCollector *loglater.LogCollector

	// Candidate configuration and collaborators
	candidate *config.Config
	backups   Backupper
	store     Saver

	// Validation state
	validationErrors []error
	IsValid          atomic.Bool

	backupPath string
}

// New creates a RestoreTransaction around a candidate config.
func New(
	source Source,
	sourceDetail string,
	candidate *config.Config,
	backups Backupper,
	store Saver,
	handler slog.Handler,
) (*RestoreTransaction, error) {
	txID := uuid.Must(uuid.NewV6())

	sm, err := finitestate.New(handler)
	if err != nil {
		return nil, fmt.Errorf("%s failed to create state machine: %w", txID, err)
	}

	logCollector := loglater.NewLogCollector(handler)
	logger := slog.New(logCollector).With(
		"id", txID,
		"source", source,
		"sourceDetail", sourceDetail)

	tx := &RestoreTransaction{
		ID:               txID,
		Source:           source,
		SourceDetail:     sourceDetail,
		CreatedAt:        time.Now(),
		fsm:              sm,
		logger:           logger,
		logCollector:     logCollector,
		candidate:        candidate,
		backups:          backups,
		store:            store,
		validationErrors: []error{},
	}

	tx.logger.Info("Restore transaction created")
	return tx, nil
}

// GetState returns the current state of the transaction.
func (tx *RestoreTransaction) GetState() string {
	return tx.fsm.GetState()
}

// RunValidation checks the candidate config. A nil or invalid candidate moves
// the transaction to its terminal invalid state without returning an error;
// the verdict is read from IsValid and GetErrors.
func (tx *RestoreTransaction) RunValidation() error {
	if tx.candidate == nil {
		if err := tx.fsm.Transition(finitestate.StateValidating); err != nil {
			return err
		}
		return tx.setStateInvalid([]error{ErrNilConfig})
	}

	if err := tx.fsm.Transition(finitestate.StateValidating); err != nil {
		tx.logger.Error("Failed to transition to state",
			"error", err,
			"targetState", finitestate.StateValidating,
			"currentState", tx.GetState())
		return err
	}
	tx.logger.Debug("Validation started", "state", finitestate.StateValidating)

	if err := tx.candidate.Validate(); err != nil {
		return tx.setStateInvalid([]error{err})
	}
	return tx.setStateValid()
}

func (tx *RestoreTransaction) setStateValid() error {
	if err := tx.fsm.Transition(finitestate.StateValidated); err != nil {
		tx.logger.Error("Failed to transition to state",
			"error", err,
			"targetState", finitestate.StateValidated,
			"currentState", tx.GetState())
		return err
	}

	tx.IsValid.Store(true)
	tx.logger.Debug("Validation successful", "state", finitestate.StateValidated)
	return nil
}

func (tx *RestoreTransaction) setStateInvalid(errs []error) error {
	if err := tx.fsm.Transition(finitestate.StateInvalid); err != nil {
		tx.logger.Error("Failed to transition to state",
			"error", err,
			"targetState", finitestate.StateInvalid,
			"currentState", tx.GetState())
		return err
	}

	tx.IsValid.Store(false)
	tx.validationErrors = errs
	tx.logger.Warn("Validation failed",
		"errors", errs,
		"errorCount", len(errs),
		"state", finitestate.StateInvalid)
	return nil
}

// Execute snapshots the current config and replaces it with the candidate.
// The transaction must have passed validation first. On any failure the store
// is left as the backup recorded it and the transaction ends in failed.
func (tx *RestoreTransaction) Execute() error {
	if !tx.IsValid.Load() {
		if tx.GetState() == finitestate.StateInvalid {
			return ErrInvalidTransaction
		}
		return ErrNotValidated
	}

	if err := tx.fsm.Transition(finitestate.StateBackingUp); err != nil {
		return err
	}
	backupPath, err := tx.backups.CreateBackup()
	if err != nil {
		return tx.markFailed(fmt.Errorf("backup before restore: %w", err))
	}
	tx.backupPath = backupPath
	if err := tx.fsm.Transition(finitestate.StateBackedUp); err != nil {
		return err
	}
	tx.logger.Info("Current config backed up", "path", backupPath)

	if err := tx.fsm.Transition(finitestate.StateReplacing); err != nil {
		return err
	}
	if err := tx.store.Save(tx.candidate); err != nil {
		return tx.markFailed(fmt.Errorf("replacing config: %w", err))
	}
	if err := tx.fsm.Transition(finitestate.StateReplaced); err != nil {
		return err
	}

	if err := tx.fsm.Transition(finitestate.StateCompleted); err != nil {
		return err
	}
	tx.logger.Info("Restore completed",
		"state", finitestate.StateCompleted,
		"duration", time.Since(tx.CreatedAt))
	return nil
}

func (tx *RestoreTransaction) markFailed(err error) error {
	if transErr := tx.fsm.Transition(finitestate.StateFailed); transErr != nil {
		tx.logger.Error("Failed to transition to failed state",
			"error", transErr,
			"originalError", err)
		return transErr
	}

	tx.validationErrors = append(tx.validationErrors, err)
	tx.logger.Error("Restore failed", "state", finitestate.StateFailed, "error", err)
	return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
}

// GetErrors returns the errors collected by this transaction.
func (tx *RestoreTransaction) GetErrors() []error {
	return tx.validationErrors
}

// GetConfig returns the candidate configuration.
func (tx *RestoreTransaction) GetConfig() *config.Config {
	return tx.candidate
}

// BackupPath returns the snapshot taken before the replace, if any.
func (tx *RestoreTransaction) BackupPath() string {
	return tx.backupPath
}

// PlaybackLogs plays back the transaction logs to the given handler.
func (tx *RestoreTransaction) PlaybackLogs(handler slog.Handler) error {
	return tx.logCollector.PlayLogs(handler)
}
