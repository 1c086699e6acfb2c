// Package store is an embedded, transactional, schema-validated
// collection store. Entities live in memory for synchronous reads and
// are persisted as JSON documents in an embedded sqlite database; the
// on-disk layout is an internal detail, not a compatibility surface.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"terralot/internal/identity"
	"terralot/internal/schema"
)

// Entity is a schema-validated record keyed by its primary key field.
type Entity = map[string]any

// WriteMode selects the semantics of Create.
type WriteMode int

const (
	// ModeInsert fails with DuplicateKeyError when the key exists.
	ModeInsert WriteMode = iota
	// ModeUpsert merges the supplied fields into an existing row,
	// leaving fields absent from the payload untouched.
	ModeUpsert
)

// Action identifies what a committed write did to an entity.
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
)

// Event describes one committed mutation. Events are delivered
// synchronously, on the writing goroutine, after the transaction
// commits.
type Event struct {
	Type   string
	Action Action
	Entity Entity
}

// record is the persisted shape of an entity: one JSON document per row.
type record struct {
	EntityType string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:64"`
	Seq        int64  `gorm:"index"`
	Data       datatypes.JSON
	UpdatedAt  time.Time
}

func (record) TableName() string { return "records" }

type metaRow struct {
	Key   string `gorm:"primaryKey;size:32"`
	Value string
}

func (metaRow) TableName() string { return "store_meta" }

const versionKey = "schema_version"

// Store is the local object store. Construct it once at application
// start with Open, pass it by reference to every component that needs
// it, and Close it at shutdown.
type Store struct {
	db       *gorm.DB
	registry *schema.Registry
	log      *zap.Logger
	who      identity.Provider
	clock    func() time.Time

	mu          sync.Mutex
	data        map[string]map[string]Entity
	order       map[string][]string
	seq         int64
	subscribers map[string][]func(Event)
	active      *txn
}

type txn struct {
	tx     *gorm.DB
	staged []stagedOp
}

type stagedOp struct {
	action   Action
	typeName string
	id       string
	entity   Entity
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithIdentity sets the provider used to stamp createdBy, ownerId and
// organizationId on new entities that declare those fields.
func WithIdentity(p identity.Provider) Option {
	return func(s *Store) { s.who = p }
}

// WithClock overrides the time source. Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// Open opens (or creates) the store at path and loads every persisted
// entity into memory. It fails with OpenError when the persisted schema
// version does not match the requested one; no migration is attempted.
func Open(path string, registry *schema.Registry, schemaVersion int, opts ...Option) (*Store, error) {
	s := &Store{
		registry:    registry,
		log:         zap.NewNop(),
		clock:       time.Now,
		data:        make(map[string]map[string]Entity),
		order:       make(map[string][]string),
		subscribers: make(map[string][]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &OpenError{Path: path, Reason: "cannot open database", Err: err}
	}
	if err := db.AutoMigrate(&record{}, &metaRow{}); err != nil {
		return nil, &OpenError{Path: path, Reason: "cannot migrate tables", Err: err}
	}

	if err := s.checkVersion(db, path, schemaVersion); err != nil {
		return nil, err
	}

	var rows []record
	if err := db.Order("seq").Find(&rows).Error; err != nil {
		return nil, &OpenError{Path: path, Reason: "cannot load records", Err: err}
	}
	for _, row := range rows {
		var e Entity
		if err := json.Unmarshal(row.Data, &e); err != nil {
			return nil, &OpenError{Path: path,
				Reason: fmt.Sprintf("corrupt record %s/%s", row.EntityType, row.ID), Err: err}
		}
		s.insertLocked(row.EntityType, row.ID, e)
		if row.Seq > s.seq {
			s.seq = row.Seq
		}
	}

	s.db = db
	s.log.Info("store opened",
		zap.String("path", path),
		zap.Int("schema_version", schemaVersion),
		zap.Int("records", len(rows)))
	return s, nil
}

func (s *Store) checkVersion(db *gorm.DB, path string, want int) error {
	var row metaRow
	err := db.Where("key = ?", versionKey).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = metaRow{Key: versionKey, Value: fmt.Sprintf("%d", want)}
		if err := db.Create(&row).Error; err != nil {
			return &OpenError{Path: path, Reason: "cannot record schema version", Err: err}
		}
		return nil
	case err != nil:
		return &OpenError{Path: path, Reason: "cannot read schema version", Err: err}
	}
	if row.Value != fmt.Sprintf("%d", want) {
		return &OpenError{Path: path,
			Reason: fmt.Sprintf("incompatible schema version %s (want %d)", row.Value, want)}
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Registry returns the schema registry the store validates against.
func (s *Store) Registry() *schema.Registry { return s.registry }

// Subscribe registers a handler for committed writes on one entity
// type. Handlers run synchronously after commit, in subscription order.
func (s *Store) Subscribe(typeName string, fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[typeName] = append(s.subscribers[typeName], fn)
}

// Write executes fn inside a single atomic transaction: every create,
// update and delete fn performs either all commit or all roll back, so
// a reader never observes a partially constructed entity. Nested calls
// fail with TransactionError.
func (s *Store) Write(fn func() error) error {
	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return &TransactionError{Reason: "nested write is not allowed"}
	}
	tx := s.db.Begin()
	if tx.Error != nil {
		s.mu.Unlock()
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	s.active = &txn{tx: tx}
	s.mu.Unlock()

	err := fn()

	s.mu.Lock()
	t := s.active
	s.active = nil
	if err != nil {
		s.mu.Unlock()
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		s.mu.Unlock()
		return fmt.Errorf("commit transaction: %w", err)
	}
	for _, op := range t.staged {
		switch op.action {
		case ActionDelete:
			s.removeLocked(op.typeName, op.id)
		case ActionCreate:
			s.insertLocked(op.typeName, op.id, op.entity)
		case ActionUpdate:
			s.data[op.typeName][op.id] = op.entity
		}
	}
	subs := s.subscribers
	s.mu.Unlock()

	for _, op := range t.staged {
		for _, fn := range subs[op.typeName] {
			fn(Event{Type: op.typeName, Action: op.action, Entity: copyEntity(op.entity)})
		}
	}
	return nil
}

// Create validates data against the schema for typeName and stages it
// in the current write transaction. In upsert mode an existing row is
// merged field-by-field; fields absent from data are left untouched.
// Outside a Write call it runs in its own single-operation transaction.
func (s *Store) Create(typeName string, data Entity, mode WriteMode) (Entity, error) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if active == nil {
		var out Entity
		err := s.Write(func() error {
			var err error
			out, err = s.Create(typeName, data, mode)
			return err
		})
		return out, err
	}

	def, ok := s.registry.Lookup(typeName)
	if !ok {
		return nil, &schema.ViolationError{Entity: typeName, Reason: "undeclared entity type"}
	}
	pk, _ := def.PrimaryKey()

	id, _ := data[pk.Name].(string)
	if id == "" {
		if mode != ModeInsert {
			return nil, &schema.ViolationError{Entity: typeName, Field: pk.Name,
				Reason: "primary key is missing"}
		}
		id = uuid.NewString()
	}

	existing := s.current(active, typeName, id)
	if existing != nil && mode == ModeInsert {
		return nil, &DuplicateKeyError{Type: typeName, ID: id}
	}

	var merged Entity
	action := ActionCreate
	if existing != nil {
		action = ActionUpdate
		merged = copyEntity(existing)
		for k, v := range data {
			merged[k] = v
		}
	} else {
		merged = copyEntity(data)
	}
	merged[pk.Name] = id
	s.stamp(def, merged, existing == nil)

	if err := s.registry.Validate(typeName, merged); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", typeName, id, err)
	}
	s.seq++
	row := record{
		EntityType: typeName,
		ID:         id,
		Seq:        s.seq,
		Data:       payload,
		UpdatedAt:  s.clock(),
	}
	if action == ActionCreate {
		err = active.tx.Create(&row).Error
	} else {
		err = active.tx.Save(&row).Error
	}
	if err != nil {
		return nil, fmt.Errorf("persist %s %s: %w", typeName, id, err)
	}

	active.staged = append(active.staged, stagedOp{
		action: action, typeName: typeName, id: id, entity: merged,
	})
	return copyEntity(merged), nil
}

// Delete removes the row. Deleting an absent row is a no-op: deletion
// is idempotent by design. Outside a Write call it runs in its own
// transaction.
func (s *Store) Delete(typeName, id string) error {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if active == nil {
		return s.Write(func() error { return s.Delete(typeName, id) })
	}

	if _, ok := s.registry.Lookup(typeName); !ok {
		return &schema.ViolationError{Entity: typeName, Reason: "undeclared entity type"}
	}
	existing := s.current(active, typeName, id)
	if existing == nil {
		return nil
	}
	if err := active.tx.
		Where("entity_type = ? AND id = ?", typeName, id).
		Delete(&record{}).Error; err != nil {
		return fmt.Errorf("delete %s %s: %w", typeName, id, err)
	}
	active.staged = append(active.staged, stagedOp{
		action: ActionDelete, typeName: typeName, id: id, entity: copyEntity(existing),
	})
	return nil
}

// ObjectForPrimaryKey returns the entity with the given id, or nil when
// no such row exists.
func (s *Store) ObjectForPrimaryKey(typeName, id string) (Entity, error) {
	if _, ok := s.registry.Lookup(typeName); !ok {
		return nil, &schema.ViolationError{Entity: typeName, Reason: "undeclared entity type"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[typeName][id]
	if !ok {
		return nil, nil
	}
	return copyEntity(e), nil
}

// Objects returns a live collection handle for one entity type. The
// handle reflects later store mutations without being re-issued.
func (s *Store) Objects(typeName string) (*LiveCollection, error) {
	if _, ok := s.registry.Lookup(typeName); !ok {
		return nil, &schema.ViolationError{Entity: typeName, Reason: "undeclared entity type"}
	}
	return &LiveCollection{store: s, typeName: typeName}, nil
}

// current resolves the latest visible version of an entity inside a
// transaction: staged writes shadow committed state.
func (s *Store) current(t *txn, typeName, id string) Entity {
	for i := len(t.staged) - 1; i >= 0; i-- {
		op := t.staged[i]
		if op.typeName != typeName || op.id != id {
			continue
		}
		if op.action == ActionDelete {
			return nil
		}
		return op.entity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[typeName][id]
}

// stamp fills audit fields the caller omitted: timestamps from the
// clock, ownership from the identity provider. Supplied values are
// never overwritten.
func (s *Store) stamp(def *schema.EntityDef, e Entity, fresh bool) {
	now := s.clock()
	if _, ok := def.FieldNamed("createdAt"); ok && fresh && e["createdAt"] == nil {
		e["createdAt"] = now
	}
	if _, ok := def.FieldNamed("updatedAt"); ok && e["updatedAt"] == nil {
		e["updatedAt"] = now
	}
	if s.who == nil {
		return
	}
	ctx, err := s.who.Current()
	if err != nil {
		s.log.Warn("identity unavailable, skipping ownership stamp", zap.Error(err))
		return
	}
	for field, value := range map[string]string{
		"createdBy":      ctx.UserID,
		"ownerId":        ctx.UserID,
		"organizationId": ctx.OrganizationID,
	} {
		if _, ok := def.FieldNamed(field); ok && e[field] == nil && value != "" {
			e[field] = value
		}
	}
}

func (s *Store) insertLocked(typeName, id string, e Entity) {
	if s.data[typeName] == nil {
		s.data[typeName] = make(map[string]Entity)
	}
	if _, exists := s.data[typeName][id]; !exists {
		s.order[typeName] = append(s.order[typeName], id)
	}
	s.data[typeName][id] = e
}

func (s *Store) removeLocked(typeName, id string) {
	delete(s.data[typeName], id)
	ids := s.order[typeName]
	for i, existing := range ids {
		if existing == id {
			s.order[typeName] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

func copyEntity(e Entity) Entity {
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
