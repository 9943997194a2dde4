package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntityType identifies one of the syncable business collections. The set is
// closed: anything outside it is rejected at the boundary instead of being
// looked up in a stringly-typed table at apply time.
type EntityType string

const (
	EntityCustomers EntityType = "customers"
	EntityOrders    EntityType = "orders"
	EntityPayments  EntityType = "payments"
	EntityProjects  EntityType = "projects"
)

// EntityTypes returns all supported entity types in a stable order.
func EntityTypes() []EntityType {
	return []EntityType{EntityCustomers, EntityOrders, EntityPayments, EntityProjects}
}

// ParseEntityType validates an entity-type name coming off the wire.
func ParseEntityType(s string) (EntityType, error) {
	switch et := EntityType(s); et {
	case EntityCustomers, EntityOrders, EntityPayments, EntityProjects:
		return et, nil
	default:
		return "", fmt.Errorf("unknown entity type %q", s)
	}
}

// SyncStatus marks whether a record's mutations have been acknowledged by the
// remote store. Local-only on the client; the server stamps SYNCED on apply.
type SyncStatus string

const (
	SyncStatusSynced   SyncStatus = "SYNCED"
	SyncStatusUnsynced SyncStatus = "UNSYNCED"

	// SyncStatusTombstone is reserved for delete propagation. Nothing sets or
	// syncs it yet; deletion stays a domain operation outside the sync core.
	SyncStatusTombstone SyncStatus = "TOMBSTONE"
)

// Record is a syncable business record. LogicalID is the merge key: stable,
// globally unique per entity type, assigned at creation on whichever side
// created the record. ID is the server's storage identity and carries no
// meaning across stores. Payload holds the entity's domain fields as a JSON
// object and stays opaque to the sync core.
type Record struct {
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	LastSyncedAt *time.Time      `json:"last_synced_at,omitempty"`
	LogicalID    string          `json:"logical_id"`
	EntityType   EntityType      `json:"entity_type"`
	CreatedBy    string          `json:"created_by,omitempty"`
	SyncStatus   SyncStatus      `json:"sync_status"`
	Payload      json.RawMessage `json:"payload"`
	ID           int64           `json:"id,omitempty"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	clone := *r
	clone.Payload = make(json.RawMessage, len(r.Payload))
	copy(clone.Payload, r.Payload)
	if r.LastSyncedAt != nil {
		ts := *r.LastSyncedAt
		clone.LastSyncedAt = &ts
	}
	return &clone
}

// ChangeSet groups records per entity type, ordered by updated_at ascending
// within each bucket.
type ChangeSet map[EntityType][]*Record

// Add appends a record to its entity-type bucket.
func (cs ChangeSet) Add(et EntityType, r *Record) {
	cs[et] = append(cs[et], r)
}

// Total returns the number of records across all buckets.
func (cs ChangeSet) Total() int {
	n := 0
	for _, records := range cs {
		n += len(records)
	}
	return n
}
