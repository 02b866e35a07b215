package docstore

import (
	"fmt"
	"time"
)

// DocKey addresses one document.
type DocKey struct {
	Collection string
	ID         string
}

// stagedDoc is the state of a document after the plan's ops ran against it.
type stagedDoc struct {
	fields Fields
	exists bool
}

type loadFunc func(k DocKey) (Fields, bool, error)

// resolvePlan replays the plan's ops over the current documents and returns
// the final state of every touched document, in first-touched order. load is
// called at most once per document.
func resolvePlan(plan *Plan, load loadFunc) (map[DocKey]*stagedDoc, []DocKey, error) {
	staged := map[DocKey]*stagedDoc{}
	var order []DocKey

	current := func(k DocKey) (*stagedDoc, error) {
		if st, ok := staged[k]; ok {
			return st, nil
		}
		f, exists, err := load(k)
		if err != nil {
			return nil, err
		}
		if f == nil {
			f = Fields{}
		}
		st := &stagedDoc{fields: f, exists: exists}
		staged[k] = st
		order = append(order, k)
		return st, nil
	}

	for _, op := range plan.Ops() {
		if op.Collection == "" || op.ID == "" {
			return nil, nil, fmt.Errorf("docstore: %s op requires collection and id", op.Kind)
		}
		k := DocKey{Collection: op.Collection, ID: op.ID}

		switch op.Kind {
		case OpSet:
			if path, bad := findUndefined(op.Fields, ""); bad {
				return nil, nil, fmt.Errorf("%w: %s/%s field %q", ErrUndefinedField, k.Collection, k.ID, path)
			}
			f, err := normalize(op.Fields)
			if err != nil {
				return nil, nil, fmt.Errorf("docstore: encode %s/%s: %w", k.Collection, k.ID, err)
			}
			if len(op.Keep) > 0 {
				st, err := current(k)
				if err != nil {
					return nil, nil, err
				}
				if st.exists {
					for _, name := range op.Keep {
						if v, ok := st.fields[name]; ok {
							f[name] = v
						}
					}
				}
			} else if _, ok := staged[k]; !ok {
				order = append(order, k)
			}
			staged[k] = &stagedDoc{fields: f, exists: true}

		case OpMerge, OpUpdate:
			if path, bad := findUndefined(op.Fields, ""); bad {
				return nil, nil, fmt.Errorf("%w: %s/%s field %q", ErrUndefinedField, k.Collection, k.ID, path)
			}
			st, err := current(k)
			if err != nil {
				return nil, nil, err
			}
			if op.Kind == OpUpdate && !st.exists {
				return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, k.Collection, k.ID)
			}
			patch, err := normalize(op.Fields)
			if err != nil {
				return nil, nil, fmt.Errorf("docstore: encode %s/%s: %w", k.Collection, k.ID, err)
			}
			merged := st.fields.Clone()
			for name, v := range patch {
				merged[name] = v
			}
			st.fields = merged
			st.exists = true

		case OpIncrement:
			st, err := current(k)
			if err != nil {
				return nil, nil, err
			}
			if !st.exists {
				return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, k.Collection, k.ID)
			}
			var base int64
			if raw, ok := st.fields[op.Field]; ok && raw != nil {
				n, ok := toInt64(raw)
				if !ok {
					return nil, nil, fmt.Errorf("%w: %s/%s field %q", ErrNotNumeric, k.Collection, k.ID, op.Field)
				}
				base = n
			}
			st.fields[op.Field] = float64(base + op.Delta)

		case OpAppend:
			st, err := current(k)
			if err != nil {
				return nil, nil, err
			}
			if !st.exists {
				return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, k.Collection, k.ID)
			}
			var list []any
			if raw, ok := st.fields[op.Field]; ok && raw != nil {
				existing, ok := raw.([]any)
				if !ok {
					return nil, nil, fmt.Errorf("%w: %s/%s field %q", ErrNotArray, k.Collection, k.ID, op.Field)
				}
				list = existing
			}
			wrapped, err := normalize(Fields{"v": op.Value})
			if err != nil {
				return nil, nil, fmt.Errorf("docstore: encode %s/%s: %w", k.Collection, k.ID, err)
			}
			st.fields[op.Field] = append(append([]any(nil), list...), wrapped["v"])

		case OpExtend:
			t, ok := op.Value.(time.Time)
			if !ok || op.Field == "" {
				return nil, nil, fmt.Errorf("docstore: extend %s/%s needs a field and a time", k.Collection, k.ID)
			}
			st, err := current(k)
			if err != nil {
				return nil, nil, err
			}
			if cur, ok := st.fields.Time(op.Field); ok && !cur.Before(t) {
				st.exists = true
				continue
			}
			st.fields[op.Field] = t.UTC().Format(time.RFC3339Nano)
			st.exists = true

		case OpDelete:
			if _, ok := staged[k]; !ok {
				order = append(order, k)
			}
			staged[k] = &stagedDoc{fields: Fields{}, exists: false}

		default:
			return nil, nil, fmt.Errorf("docstore: unknown op kind %d", op.Kind)
		}
	}

	return staged, order, nil
}

// checkGuards compares the plan's guards with the current revisions.
func checkGuards(plan *Plan, revisions map[string]int64) error {
	for _, g := range plan.Guards() {
		if got := revisions[g.Collection]; got != g.Revision {
			return fmt.Errorf("%w: %s expected %d, found %d", ErrRevisionMismatch, g.Collection, g.Revision, got)
		}
	}
	return nil
}
