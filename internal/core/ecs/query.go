package ecs

// Row1 is one result of Query1.
type Row1[A any] struct {
	Entity Entity
	A      *A
}

// Row2 is one result of Query2.
type Row2[A, B any] struct {
	Entity Entity
	A      *A
	B      *B
}

// Row3 is one result of Query3.
type Row3[A, B, C any] struct {
	Entity Entity
	A      *A
	B      *B
	C      *C
}

// Query1 snapshots every entity holding an A.
func Query1[A any](r *Registry) []Row1[A] {
	sa := StoreOf[A](r)
	if sa == nil {
		return nil
	}
	rows := make([]Row1[A], 0, sa.Len())
	for _, e := range sa.ids {
		rows = append(rows, Row1[A]{Entity: e, A: sa.data[e]})
	}
	return rows
}

// Query2 snapshots every entity holding both A and B. The snapshot is taken
// before the caller sees any row, so destroying entities while ranging over
// the result is safe; destroyed rows keep pointing at detached values.
func Query2[A, B any](r *Registry) []Row2[A, B] {
	var rows []Row2[A, B]
	Each2(r, func(e Entity, a *A, b *B) {
		rows = append(rows, Row2[A, B]{Entity: e, A: a, B: b})
	})
	return rows
}

// Query3 snapshots every entity holding A, B, and C.
func Query3[A, B, C any](r *Registry) []Row3[A, B, C] {
	var rows []Row3[A, B, C]
	Each3(r, func(e Entity, a *A, b *B, c *C) {
		rows = append(rows, Row3[A, B, C]{Entity: e, A: a, B: b, C: c})
	})
	return rows
}

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
// fn must not add or remove components of type A or B.
func Each2[A, B any](r *Registry, fn func(Entity, *A, *B)) {
	sa, sb := StoreOf[A](r), StoreOf[B](r)
	if sa == nil || sb == nil {
		return
	}
	if sa.Len() <= sb.Len() {
		for _, e := range sa.ids {
			if b, ok := sb.data[e]; ok {
				fn(e, sa.data[e], b)
			}
		}
	} else {
		for _, e := range sb.ids {
			if a, ok := sa.data[e]; ok {
				fn(e, a, sb.data[e])
			}
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](r *Registry, fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := StoreOf[A](r), StoreOf[B](r), StoreOf[C](r)
	if sa == nil || sb == nil || sc == nil {
		return
	}

	// Iterate the smallest store
	ids := sa.ids
	if sb.Len() < len(ids) {
		ids = sb.ids
	}
	if sc.Len() < len(ids) {
		ids = sc.ids
	}

	for _, e := range ids {
		a, ok := sa.data[e]
		if !ok {
			continue
		}
		b, ok := sb.data[e]
		if !ok {
			continue
		}
		c, ok := sc.data[e]
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
