package shared

// Entity is the base interface for all records managed by the backend.
type Entity interface {
	GetID() int64
}

// BaseEntity provides the server-assigned identity and audit timestamps.
// The client never sets ID; it is zero until the backend returns the record.
type BaseEntity struct {
	ID        int64          `json:"id,omitempty"`
	CreatedAt *LocalDateTime `json:"createdAt,omitempty"`
	UpdatedAt *LocalDateTime `json:"updatedAt,omitempty"`
}

// GetID returns the entity ID
func (e BaseEntity) GetID() int64 {
	return e.ID
}

// Ref is a foreign-key reference as it travels on the wire: { "id": 3 }.
// Responses may carry the referenced record's display name as well.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// NewRef returns a reference to id, or nil when id is not positive.
func NewRef(id int64) *Ref {
	if id <= 0 {
		return nil
	}
	return &Ref{ID: id}
}

// RefID returns the referenced id, or 0 for a nil reference.
func RefID(r *Ref) int64 {
	if r == nil {
		return 0
	}
	return r.ID
}
