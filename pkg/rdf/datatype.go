package rdf

import (
	"fmt"
	"reflect"
)

// DatatypeID tags a literal with its datatype. IDs are chosen by the
// application and only mean something relative to one Datatypes registry.
type DatatypeID uint64

// Scalar is the set of Go types the literal codec can encode
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~string
}

// XSD datatype IRIs
const (
	XSDString             = "http://www.w3.org/2001/XMLSchema#string"
	XSDBoolean            = "http://www.w3.org/2001/XMLSchema#boolean"
	XSDInteger            = "http://www.w3.org/2001/XMLSchema#integer"
	XSDLong               = "http://www.w3.org/2001/XMLSchema#long"
	XSDInt                = "http://www.w3.org/2001/XMLSchema#int"
	XSDShort              = "http://www.w3.org/2001/XMLSchema#short"
	XSDByte               = "http://www.w3.org/2001/XMLSchema#byte"
	XSDNonNegativeInteger = "http://www.w3.org/2001/XMLSchema#nonNegativeInteger"
	XSDUnsignedLong       = "http://www.w3.org/2001/XMLSchema#unsignedLong"
	XSDUnsignedInt        = "http://www.w3.org/2001/XMLSchema#unsignedInt"
	XSDUnsignedShort      = "http://www.w3.org/2001/XMLSchema#unsignedShort"
	XSDUnsignedByte       = "http://www.w3.org/2001/XMLSchema#unsignedByte"
	XSDFloat              = "http://www.w3.org/2001/XMLSchema#float"
	XSDDouble             = "http://www.w3.org/2001/XMLSchema#double"
)

// IDs used by DefaultDatatypes
const (
	DatatypeString DatatypeID = iota + 1
	DatatypeBoolean
	DatatypeInteger
	DatatypeLong
	DatatypeInt
	DatatypeShort
	DatatypeByte
	DatatypeNonNegativeInteger
	DatatypeUnsignedLong
	DatatypeUnsignedInt
	DatatypeUnsignedShort
	DatatypeUnsignedByte
	DatatypeFloat
	DatatypeDouble
)

type datatype struct {
	id  DatatypeID
	iri string
	typ reflect.Type
}

// Datatypes maps Go types to datatype IDs and IRIs.
// Build it once at startup and pass it to every codec call.
type Datatypes struct {
	byType map[reflect.Type]*datatype
	byID   map[DatatypeID]*datatype
	byIRI  map[string]*datatype
}

// NewDatatypes creates an empty registry
func NewDatatypes() *Datatypes {
	return &Datatypes{
		byType: make(map[reflect.Type]*datatype),
		byID:   make(map[DatatypeID]*datatype),
		byIRI:  make(map[string]*datatype),
	}
}

// DefaultDatatypes returns a registry with every Scalar builtin bound to its XSD datatype
func DefaultDatatypes() *Datatypes {
	d := NewDatatypes()
	for _, dt := range []datatype{
		{DatatypeString, XSDString, reflect.TypeFor[string]()},
		{DatatypeBoolean, XSDBoolean, reflect.TypeFor[bool]()},
		{DatatypeInteger, XSDInteger, reflect.TypeFor[int]()},
		{DatatypeLong, XSDLong, reflect.TypeFor[int64]()},
		{DatatypeInt, XSDInt, reflect.TypeFor[int32]()},
		{DatatypeShort, XSDShort, reflect.TypeFor[int16]()},
		{DatatypeByte, XSDByte, reflect.TypeFor[int8]()},
		{DatatypeNonNegativeInteger, XSDNonNegativeInteger, reflect.TypeFor[uint]()},
		{DatatypeUnsignedLong, XSDUnsignedLong, reflect.TypeFor[uint64]()},
		{DatatypeUnsignedInt, XSDUnsignedInt, reflect.TypeFor[uint32]()},
		{DatatypeUnsignedShort, XSDUnsignedShort, reflect.TypeFor[uint16]()},
		{DatatypeUnsignedByte, XSDUnsignedByte, reflect.TypeFor[uint8]()},
		{DatatypeFloat, XSDFloat, reflect.TypeFor[float32]()},
		{DatatypeDouble, XSDDouble, reflect.TypeFor[float64]()},
	} {
		d.add(dt)
	}
	return d
}

// Register binds T to id and iri. iri may be empty for application-private types.
// Registering the same binding twice is a no-op; any other overlap fails with
// ErrDatatypeConflict.
func Register[T Scalar](d *Datatypes, id DatatypeID, iri string) error {
	return d.register(datatype{id: id, iri: iri, typ: reflect.TypeFor[T]()})
}

// IDOf returns the datatype ID registered for T
func IDOf[T Scalar](d *Datatypes) (DatatypeID, bool) {
	dt, ok := d.byType[reflect.TypeFor[T]()]
	if !ok {
		return 0, false
	}
	return dt.id, true
}

func (d *Datatypes) register(dt datatype) error {
	if existing, ok := d.byType[dt.typ]; ok {
		if existing.id == dt.id && existing.iri == dt.iri {
			return nil
		}
		return fmt.Errorf("%w: type %s already registered as %d", ErrDatatypeConflict, dt.typ, existing.id)
	}
	if existing, ok := d.byID[dt.id]; ok {
		return fmt.Errorf("%w: id %d already bound to %s", ErrDatatypeConflict, dt.id, existing.typ)
	}
	if dt.iri != "" {
		if existing, ok := d.byIRI[dt.iri]; ok {
			return fmt.Errorf("%w: iri %s already bound to %s", ErrDatatypeConflict, dt.iri, existing.typ)
		}
	}
	d.add(dt)
	return nil
}

func (d *Datatypes) add(dt datatype) {
	entry := &dt
	d.byType[dt.typ] = entry
	d.byID[dt.id] = entry
	if dt.iri != "" {
		d.byIRI[dt.iri] = entry
	}
}

// IRI returns the datatype IRI registered for id
func (d *Datatypes) IRI(id DatatypeID) (string, bool) {
	dt, ok := d.byID[id]
	if !ok || dt.iri == "" {
		return "", false
	}
	return dt.iri, true
}

// Lookup returns the datatype ID registered for iri
func (d *Datatypes) Lookup(iri string) (DatatypeID, bool) {
	dt, ok := d.byIRI[iri]
	if !ok {
		return 0, false
	}
	return dt.id, true
}

// Len returns the number of registered datatypes
func (d *Datatypes) Len() int {
	return len(d.byID)
}
