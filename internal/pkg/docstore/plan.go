package docstore

import "time"

// OpKind identifies a write inside a Plan.
type OpKind int

const (
	// OpSet replaces the whole document, creating it when missing. Fields
	// named in Keep are carried over from the stored document when present.
	OpSet OpKind = iota + 1
	// OpMerge shallow-merges fields, creating the document when missing.
	OpMerge
	// OpUpdate shallow-merges fields into an existing document.
	OpUpdate
	// OpIncrement adds Delta to a numeric field of an existing document.
	OpIncrement
	// OpAppend appends Value to an array field of an existing document.
	OpAppend
	// OpDelete removes the document; deleting a missing document is a no-op.
	OpDelete
	// OpExtend sets a timestamp field to Value unless it already holds a later
	// time, creating the document when missing.
	OpExtend
)

func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpMerge:
		return "merge"
	case OpUpdate:
		return "update"
	case OpIncrement:
		return "increment"
	case OpAppend:
		return "append"
	case OpDelete:
		return "delete"
	case OpExtend:
		return "extend"
	}
	return "unknown"
}

// bumpsRevision reports whether the op changes collection membership or
// content in a way that invalidates an operator's working set.
func (k OpKind) bumpsRevision() bool {
	switch k {
	case OpSet, OpMerge, OpUpdate, OpDelete:
		return true
	}
	return false
}

// Op is one write of a Plan.
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Fields     Fields
	Field      string
	Delta      int64
	Value      any
	Keep       []string
}

// Guard requires a collection to still be at Revision when the plan commits.
type Guard struct {
	Collection string
	Revision   int64
}

// OutboxEvent is an event persisted in the same commit as the plan's writes.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	PayloadJSON string
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

const (
	OutboxStatusPending   = "pending"
	OutboxStatusProcessed = "processed"
)

// Plan collects writes that a Committer applies atomically.
type Plan struct {
	ops    []Op
	guards []Guard
	events []OutboxEvent
}

func NewPlan() *Plan {
	return &Plan{
		ops: make([]Op, 0),
	}
}

// Add appends a prepared op. Zero ops are ignored.
func (p *Plan) Add(op Op) {
	if op.Kind == 0 {
		return
	}
	p.ops = append(p.ops, op)
}

func (p *Plan) Set(collection, id string, f Fields) {
	p.ops = append(p.ops, Op{Kind: OpSet, Collection: collection, ID: id, Fields: f})
}

// SetKeeping replaces the document like Set but keeps the stored values of
// the keep fields, read inside the commit.
func (p *Plan) SetKeeping(collection, id string, f Fields, keep ...string) {
	p.ops = append(p.ops, Op{Kind: OpSet, Collection: collection, ID: id, Fields: f, Keep: keep})
}

func (p *Plan) Merge(collection, id string, f Fields) {
	p.ops = append(p.ops, Op{Kind: OpMerge, Collection: collection, ID: id, Fields: f})
}

func (p *Plan) Update(collection, id string, f Fields) {
	p.ops = append(p.ops, Op{Kind: OpUpdate, Collection: collection, ID: id, Fields: f})
}

func (p *Plan) Increment(collection, id, field string, delta int64) {
	p.ops = append(p.ops, Op{Kind: OpIncrement, Collection: collection, ID: id, Field: field, Delta: delta})
}

func (p *Plan) Append(collection, id, field string, value any) {
	p.ops = append(p.ops, Op{Kind: OpAppend, Collection: collection, ID: id, Field: field, Value: value})
}

// Extend moves a timestamp field forward to t, never backward.
func (p *Plan) Extend(collection, id, field string, t time.Time) {
	p.ops = append(p.ops, Op{Kind: OpExtend, Collection: collection, ID: id, Field: field, Value: t.UTC()})
}

func (p *Plan) Delete(collection, id string) {
	p.ops = append(p.ops, Op{Kind: OpDelete, Collection: collection, ID: id})
}

// ExpectRevision guards the plan on the current revision of collection.
func (p *Plan) ExpectRevision(collection string, revision int64) {
	p.guards = append(p.guards, Guard{Collection: collection, Revision: revision})
}

func (p *Plan) AddEvent(e OutboxEvent) {
	if e.Status == "" {
		e.Status = OutboxStatusPending
	}
	p.events = append(p.events, e)
}

func (p *Plan) IsEmpty() bool {
	return p == nil || (len(p.ops) == 0 && len(p.guards) == 0 && len(p.events) == 0)
}

func (p *Plan) Ops() []Op {
	return p.ops
}

func (p *Plan) Guards() []Guard {
	return p.guards
}

func (p *Plan) Events() []OutboxEvent {
	return p.events
}

// RevisionCollections lists, in first-seen order, the collections whose
// revision the commit bumps.
func (p *Plan) RevisionCollections() []string {
	seen := map[string]bool{}
	var out []string
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, g := range p.guards {
		add(g.Collection)
	}
	for _, op := range p.ops {
		if op.Kind.bumpsRevision() {
			add(op.Collection)
		}
	}
	return out
}
