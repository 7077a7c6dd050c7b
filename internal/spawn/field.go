package spawn

// Field holds the active falling objects in spawn order.
type Field struct {
	objects []Object
	bound   float64
}

// NewField creates an empty field; objects whose Y exceeds bound are missed.
func NewField(bound float64) *Field {
	return &Field{objects: make([]Object, 0, 16), bound: bound}
}

// Add places a new object on the field.
func (f *Field) Add(o Object) {
	f.objects = append(f.objects, o)
}

// Remove takes the object with the given id off the field.
func (f *Field) Remove(id uint64) (Object, bool) {
	for i, o := range f.objects {
		if o.ID == id {
			f.objects = append(f.objects[:i], f.objects[i+1:]...)
			return o, true
		}
	}
	return Object{}, false
}

// Step moves every object down by its speed and removes the ones that left
// the field. Returns the missed objects.
func (f *Field) Step() []Object {
	var missed []Object
	kept := f.objects[:0]
	for _, o := range f.objects {
		o.Y += o.Speed
		if o.Y > f.bound {
			missed = append(missed, o)
			continue
		}
		kept = append(kept, o)
	}
	f.objects = kept
	return missed
}

// Clear removes every object.
func (f *Field) Clear() {
	f.objects = f.objects[:0]
}

// Len returns the number of active objects.
func (f *Field) Len() int {
	return len(f.objects)
}

// Objects returns a copy of the active objects.
func (f *Field) Objects() []Object {
	out := make([]Object, len(f.objects))
	copy(out, f.objects)
	return out
}
