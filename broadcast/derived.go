package broadcast

// Changes strips the transaction brackets off a stream of updates.
func Changes[C any](src Source[Update[C]]) Source[C] {
	return SourceFunc[C](func(sink Sink[C]) *Subscription {
		return src.Connect(func(u Update[C]) {
			if u.Kind == Change {
				sink(u.Change)
			}
		})
	})
}

// MapSource delivers f(v) for every v src delivers.
func MapSource[T, U any](src Source[T], f func(T) U) Source[U] {
	return SourceFunc[U](func(sink Sink[U]) *Subscription {
		return src.Connect(func(v T) {
			sink(f(v))
		})
	})
}
