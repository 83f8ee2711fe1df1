package object

// Intrinsic prototypes. Constructors link new objects to these; they carry
// no properties of their own and are shared by every object graph in the
// process, so callers should treat them as read-only.
var (
	ObjectPrototype            = NewObject(nil)
	ArrayPrototype             = NewObject(ObjectPrototype)
	FunctionPrototype          = NewObject(ObjectPrototype)
	GeneratorFunctionPrototype = NewObject(FunctionPrototype)
	DatePrototype              = NewObject(ObjectPrototype)
	RegExpPrototype            = NewObject(ObjectPrototype)
	MapPrototype               = NewObject(ObjectPrototype)
	SetPrototype               = NewObject(ObjectPrototype)
	WeakMapPrototype           = NewObject(ObjectPrototype)
	WeakSetPrototype           = NewObject(ObjectPrototype)
	BooleanPrototype           = NewObject(ObjectPrototype)
	NumberPrototype            = NewObject(ObjectPrototype)
	ErrorPrototype             = NewObject(ObjectPrototype)
	TypeErrorPrototype         = NewObject(ErrorPrototype)
	RangeErrorPrototype        = NewObject(ErrorPrototype)
	SyntaxErrorPrototype       = NewObject(ErrorPrototype)
	TypedArrayPrototype        = NewObject(ObjectPrototype)
)

var typedArrayPrototypes = func() map[Kind]*Object {
	m := make(map[Kind]*Object)
	for _, k := range Kinds() {
		if k.IsTypedArray() {
			m[k] = NewObject(TypedArrayPrototype)
		}
	}
	return m
}()

// PrototypeFor returns the intrinsic prototype new objects of kind k
// inherit from.
func PrototypeFor(k Kind) *Object {
	switch k {
	case KindArray:
		return ArrayPrototype
	case KindFunction:
		return FunctionPrototype
	case KindGeneratorFunction:
		return GeneratorFunctionPrototype
	case KindDate:
		return DatePrototype
	case KindRegExp:
		return RegExpPrototype
	case KindMap:
		return MapPrototype
	case KindSet:
		return SetPrototype
	case KindWeakMap:
		return WeakMapPrototype
	case KindWeakSet:
		return WeakSetPrototype
	case KindBoolean:
		return BooleanPrototype
	case KindNumber:
		return NumberPrototype
	case KindError:
		return ErrorPrototype
	}
	if p, ok := typedArrayPrototypes[k]; ok {
		return p
	}
	return ObjectPrototype
}
