// Package journal keeps a queryable SQL copy of every committed ledger event.
package journal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"medfund_ledger/contract/ledger"
)

// Entry is one journaled event row
type Entry struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement"`
	UUID      string `gorm:"uniqueIndex;size:36"`
	Kind      string `gorm:"index;size:8"`
	Subject   string `gorm:"index"`
	Actor     string `gorm:"index"`
	Amount    string `gorm:"size:20"`
	Line      string
	Timestamp uint64 `gorm:"index"`
}

func (Entry) TableName() string {
	return "journal_entry"
}

// Event converts the row back into the ledger form.
func (e Entry) Event() ledger.Event {
	return ledger.Event{
		Kind:      e.Kind,
		Subject:   e.Subject,
		Actor:     e.Actor,
		Amount:    e.Uint64Amount(),
		Line:      e.Line,
		Timestamp: e.Timestamp,
	}
}

// Uint64Amount parses the stored amount. sqlite integers are signed, so amounts
// are kept as decimal text.
func (e Entry) Uint64Amount() uint64 {
	v, err := strconv.ParseUint(e.Amount, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Journal is a sqlite event sink. An empty dataDir keeps it in memory.
type Journal struct {
	db      *gorm.DB
	logger  *slog.Logger
	dataDir string
}

// New opens the journal and creates its table
func New(dataDir string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var dsn string
	if dataDir == "" {
		// every in-memory journal gets its own named database
		dsn = fmt.Sprintf("file:journal-%s?mode=memory&cache=shared", uuid.NewString())
	} else {
		if _, err := os.Stat(dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read journal dir: %w", err)
			}
			if err := os.MkdirAll(dataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create journal dir: %w", err)
			}
		}
		dsn = fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
			filepath.Join(dataDir, "journal.sqlite"),
		)
	}
	db, err := gorm.Open(
		sqlite.Open(dsn),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}
	j := &Journal{db: db, logger: logger, dataDir: dataDir}
	j.logger.Debug(fmt.Sprintf("creating table: %#v", &Entry{}), "component", "journal")
	if err := db.AutoMigrate(&Entry{}); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

// Publish stores one operation's events in a single transaction.
func (j *Journal) Publish(events []ledger.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]Entry, 0, len(events))
	for _, ev := range events {
		rows = append(rows, Entry{
			UUID:      uuid.NewString(),
			Kind:      ev.Kind,
			Subject:   ev.Subject,
			Actor:     ev.Actor,
			Amount:    strconv.FormatUint(ev.Amount, 10),
			Line:      ev.Line,
			Timestamp: ev.Timestamp,
		})
	}
	err := j.db.Transaction(func(txn *gorm.DB) error {
		return txn.Create(&rows).Error
	})
	if err != nil {
		j.logger.Error(
			"failed to journal events",
			"component", "journal",
			"error", err,
		)
		return fmt.Errorf("journal publish: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	var ret []Entry
	q := j.db.Order("seq DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if result := q.Find(&ret); result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// BySubject returns every entry about one entity in commit order.
func (j *Journal) BySubject(subject string) ([]Entry, error) {
	var ret []Entry
	result := j.db.Where("subject = ?", subject).Order("seq ASC").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// KindTotals sums event amounts per kind, e.g. dn for donations. A total too
// large for uint64 is clamped.
func (j *Journal) KindTotals() (map[string]uint64, error) {
	var rows []Entry
	result := j.db.Model(&Entry{}).Select("kind", "amount").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	ret := make(map[string]uint64)
	for _, r := range rows {
		ret[r.Kind] = ledger.SaturatingAdd(ret[r.Kind], r.Uint64Amount())
	}
	return ret, nil
}

// Count returns the number of journaled entries
func (j *Journal) Count() (int64, error) {
	var n int64
	if result := j.db.Model(&Entry{}).Count(&n); result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

func (j *Journal) Close() error {
	db, err := j.db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	return db.Close()
}
