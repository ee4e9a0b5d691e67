package pod

//go:generate go run ../cmd/codegen -count 8

func Combine1[T0, O any](
	d0 *Definition[T0],
	fn func(T0) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0), nil
	}, opts...)
}

func Combine2[T0, T1, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	fn func(T0, T1) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1), nil
	}, opts...)
}

func Combine3[T0, T1, T2, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	d2 *Definition[T2],
	fn func(T0, T1, T2) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		v2, err := d2.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1, v2), nil
	}, opts...)
}

func Combine4[T0, T1, T2, T3, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	d2 *Definition[T2],
	d3 *Definition[T3],
	fn func(T0, T1, T2, T3) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		v2, err := d2.Watch(r)
		if err != nil {
			return zero, err
		}
		v3, err := d3.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1, v2, v3), nil
	}, opts...)
}

func Combine5[T0, T1, T2, T3, T4, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	d2 *Definition[T2],
	d3 *Definition[T3],
	d4 *Definition[T4],
	fn func(T0, T1, T2, T3, T4) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		v2, err := d2.Watch(r)
		if err != nil {
			return zero, err
		}
		v3, err := d3.Watch(r)
		if err != nil {
			return zero, err
		}
		v4, err := d4.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1, v2, v3, v4), nil
	}, opts...)
}

func Combine6[T0, T1, T2, T3, T4, T5, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	d2 *Definition[T2],
	d3 *Definition[T3],
	d4 *Definition[T4],
	d5 *Definition[T5],
	fn func(T0, T1, T2, T3, T4, T5) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		v2, err := d2.Watch(r)
		if err != nil {
			return zero, err
		}
		v3, err := d3.Watch(r)
		if err != nil {
			return zero, err
		}
		v4, err := d4.Watch(r)
		if err != nil {
			return zero, err
		}
		v5, err := d5.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1, v2, v3, v4, v5), nil
	}, opts...)
}

func Combine7[T0, T1, T2, T3, T4, T5, T6, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	d2 *Definition[T2],
	d3 *Definition[T3],
	d4 *Definition[T4],
	d5 *Definition[T5],
	d6 *Definition[T6],
	fn func(T0, T1, T2, T3, T4, T5, T6) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		v2, err := d2.Watch(r)
		if err != nil {
			return zero, err
		}
		v3, err := d3.Watch(r)
		if err != nil {
			return zero, err
		}
		v4, err := d4.Watch(r)
		if err != nil {
			return zero, err
		}
		v5, err := d5.Watch(r)
		if err != nil {
			return zero, err
		}
		v6, err := d6.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1, v2, v3, v4, v5, v6), nil
	}, opts...)
}

func Combine8[T0, T1, T2, T3, T4, T5, T6, T7, O any](
	d0 *Definition[T0],
	d1 *Definition[T1],
	d2 *Definition[T2],
	d3 *Definition[T3],
	d4 *Definition[T4],
	d5 *Definition[T5],
	d6 *Definition[T6],
	d7 *Definition[T7],
	fn func(T0, T1, T2, T3, T4, T5, T6, T7) O,
	opts ...ProviderOption,
) *Definition[O] {
	return New(func(r *Ref) (O, error) {
		var zero O
		v0, err := d0.Watch(r)
		if err != nil {
			return zero, err
		}
		v1, err := d1.Watch(r)
		if err != nil {
			return zero, err
		}
		v2, err := d2.Watch(r)
		if err != nil {
			return zero, err
		}
		v3, err := d3.Watch(r)
		if err != nil {
			return zero, err
		}
		v4, err := d4.Watch(r)
		if err != nil {
			return zero, err
		}
		v5, err := d5.Watch(r)
		if err != nil {
			return zero, err
		}
		v6, err := d6.Watch(r)
		if err != nil {
			return zero, err
		}
		v7, err := d7.Watch(r)
		if err != nil {
			return zero, err
		}
		return fn(v0, v1, v2, v3, v4, v5, v6, v7), nil
	}, opts...)
}
