package signal

// UseState returns a read-only state and its setter.
func UseState[T any](initial T) (*ReadOnly[T], func(T)) {
	m := NewMutable(initial)
	return m.ReadOnly(), m.Set
}

// UseStateReducer returns a read-only state and a dispatch function that
// folds actions into it with reducer.
func UseStateReducer[S, A any](initial S, reducer func(S, A) S) (*ReadOnly[S], func(A)) {
	m := NewMutable(initial)
	dispatch := func(action A) {
		m.Update(func(s S) S { return reducer(s, action) })
	}
	return m.ReadOnly(), dispatch
}
