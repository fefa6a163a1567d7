package schema

// Options carries the conversion settings that can be layered: library
// defaults, per-type, per-call and per-member. Fields are pointers so that
// "unset" is distinguishable from an explicit value; Merge computes the
// effective set without mutating either input.
type Options struct {
	// PreserveNull emits explicit nulls for nil values instead of
	// omitting them.
	PreserveNull *bool

	// MapShape is the default wire shape for map descriptors that do not
	// declare one.
	MapShape *MapShape
}

// Merge returns a new Options with over's set fields taking precedence
// over o's.
func (o *Options) Merge(over *Options) *Options {
	res := &Options{}
	if o != nil {
		res.PreserveNull = o.PreserveNull
		res.MapShape = o.MapShape
	}
	if over != nil {
		if over.PreserveNull != nil {
			res.PreserveNull = over.PreserveNull
		}
		if over.MapShape != nil {
			res.MapShape = over.MapShape
		}
	}
	return res
}

// GetPreserveNull returns the effective preserve-null setting; the
// default is false.
func (o *Options) GetPreserveNull() bool {
	if o == nil || o.PreserveNull == nil {
		return false
	}
	return *o.PreserveNull
}

func Bool(v bool) *bool { return &v }

func Shape(s MapShape) *MapShape { return &s }
