package rdf

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Literal encoding
//
// Fixed-width values are stored as their raw bit pattern, exactly as wide as
// the Go type, always little-endian regardless of host byte order. Strings are
// stored as their raw bytes with no length prefix and no terminator. Booleans
// take one byte, 0 or 1.

// Serialize encodes v as a literal tagged with T's registered datatype ID
func Serialize[T Scalar](d *Datatypes, v T) (LiteralTerm, error) {
	id, ok := IDOf[T](d)
	if !ok {
		return LiteralTerm{}, fmt.Errorf("%w: %s", ErrUnregisteredDatatype, reflect.TypeFor[T]())
	}
	return LiteralTerm{
		Bytes:    encodeValue(reflect.ValueOf(&v).Elem()),
		Datatype: id,
	}, nil
}

// Deserialize decodes a literal into T. It fails with
// ErrInvalidDeserializationRequest when the literal's datatype is not T's and
// with ErrInvalidLiteral when the byte length is wrong for T.
func Deserialize[T Scalar](d *Datatypes, term LiteralTerm) (T, error) {
	var out T
	id, ok := IDOf[T](d)
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrUnregisteredDatatype, reflect.TypeFor[T]())
	}
	if term.Datatype != id {
		return out, fmt.Errorf("%w: literal datatype %d, %s is %d",
			ErrInvalidDeserializationRequest, term.Datatype, reflect.TypeFor[T](), id)
	}
	if err := decodeValue(reflect.ValueOf(&out).Elem(), term.Bytes); err != nil {
		return out, err
	}
	return out, nil
}

// encodeValue encodes an addressable scalar value
func encodeValue(v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.String:
		return []byte(v.String())
	case reflect.Bool:
		if v.Bool() {
			return []byte{1}
		}
		return []byte{0}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return putUint(uint64(v.Int()), int(v.Type().Size())) // #nosec G115 - intentional bit-pattern conversion for binary encoding
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return putUint(v.Uint(), int(v.Type().Size()))
	case reflect.Float32:
		// Read the bits directly; widening to float64 would quiet signaling NaNs.
		return binary.LittleEndian.AppendUint32(nil, *(*uint32)(v.Addr().UnsafePointer())) // #nosec G103 - float32 bit pattern
	case reflect.Float64:
		return binary.LittleEndian.AppendUint64(nil, *(*uint64)(v.Addr().UnsafePointer())) // #nosec G103 - float64 bit pattern
	default:
		return nil
	}
}

// decodeValue decodes b into the addressable scalar value v
func decodeValue(v reflect.Value, b []byte) error {
	kind := v.Kind()
	if kind == reflect.String {
		if len(b) == 0 {
			return fmt.Errorf("%w: empty %s literal", ErrInvalidLiteral, v.Type())
		}
		v.SetString(string(b))
		return nil
	}

	width := int(v.Type().Size())
	if len(b) != width {
		return fmt.Errorf("%w: %s literal must be %d bytes, got %d", ErrInvalidLiteral, v.Type(), width, len(b))
	}

	switch kind {
	case reflect.Bool:
		if b[0] > 1 {
			return fmt.Errorf("%w: bool literal byte must be 0 or 1, got %d", ErrInvalidLiteral, b[0])
		}
		v.SetBool(b[0] == 1)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(signExtend(getUint(b), width))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(getUint(b))
	case reflect.Float32:
		*(*uint32)(v.Addr().UnsafePointer()) = binary.LittleEndian.Uint32(b) // #nosec G103 - float32 bit pattern
	case reflect.Float64:
		*(*uint64)(v.Addr().UnsafePointer()) = binary.LittleEndian.Uint64(b) // #nosec G103 - float64 bit pattern
	default:
		return fmt.Errorf("%w: unsupported kind %s", ErrInvalidLiteral, kind)
	}
	return nil
}

func putUint(u uint64, width int) []byte {
	switch width {
	case 1:
		return []byte{byte(u)}
	case 2:
		return binary.LittleEndian.AppendUint16(nil, uint16(u))
	case 4:
		return binary.LittleEndian.AppendUint32(nil, uint32(u))
	default:
		return binary.LittleEndian.AppendUint64(nil, u)
	}
}

func getUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func signExtend(u uint64, width int) int64 {
	switch width {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u) // #nosec G115 - intentional bit-pattern conversion for binary decoding
	}
}

// ParseLexical builds a literal from the lexical form of a registered datatype IRI
func (d *Datatypes) ParseLexical(iri, lexical string) (LiteralTerm, error) {
	dt, ok := d.byIRI[iri]
	if !ok {
		return LiteralTerm{}, fmt.Errorf("%w: %s", ErrUnregisteredDatatype, iri)
	}

	v := reflect.New(dt.typ).Elem()
	bits := int(dt.typ.Size()) * 8

	switch v.Kind() {
	case reflect.String:
		if lexical == "" {
			return LiteralTerm{}, fmt.Errorf("%w: empty string literal", ErrInvalidLiteral)
		}
		v.SetString(lexical)
	case reflect.Bool:
		b, err := strconv.ParseBool(lexical)
		if err != nil {
			return LiteralTerm{}, fmt.Errorf("invalid boolean literal: %w", err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(lexical, 10, bits)
		if err != nil {
			return LiteralTerm{}, fmt.Errorf("invalid integer literal: %w", err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(lexical, 10, bits)
		if err != nil {
			return LiteralTerm{}, fmt.Errorf("invalid unsigned integer literal: %w", err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(lexical, bits)
		if err != nil {
			return LiteralTerm{}, fmt.Errorf("invalid floating point literal: %w", err)
		}
		v.SetFloat(f)
	}

	return LiteralTerm{Bytes: encodeValue(v), Datatype: dt.id}, nil
}

// FormatLexical renders a literal as its datatype IRI and lexical form
func (d *Datatypes) FormatLexical(term LiteralTerm) (string, string, error) {
	dt, ok := d.byID[term.Datatype]
	if !ok {
		return "", "", fmt.Errorf("%w: id %d", ErrUnregisteredDatatype, term.Datatype)
	}

	v := reflect.New(dt.typ).Elem()
	if err := decodeValue(v, term.Bytes); err != nil {
		return "", "", err
	}

	var lexical string
	switch v.Kind() {
	case reflect.String:
		lexical = v.String()
	case reflect.Bool:
		lexical = strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		lexical = strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		lexical = strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		lexical = formatFloat(v.Float(), int(dt.typ.Size())*8)
	}
	return dt.iri, lexical, nil
}

// formatFloat uses the XSD spellings for special values
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	default:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
}
