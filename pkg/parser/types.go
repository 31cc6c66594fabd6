package parser

import (
	"fmt"
	"strings"
)

// PDFObject represents any operand that can appear in a content stream
type PDFObject interface {
	Type() string
}

// PDFNull represents a null object
type PDFNull struct{}

func (PDFNull) Type() string { return "null" }

// PDFBool represents a boolean object
type PDFBool bool

func (PDFBool) Type() string { return "bool" }

// PDFInt represents an integer object
type PDFInt int64

func (PDFInt) Type() string { return "int" }

// PDFFloat represents a floating-point object
type PDFFloat float64

func (PDFFloat) Type() string { return "float" }

// PDFString represents a literal string object, escapes already resolved
type PDFString []byte

func (PDFString) Type() string { return "string" }

// PDFHexString represents a hexadecimal string object, already decoded to bytes
type PDFHexString []byte

func (PDFHexString) Type() string { return "hexstring" }

// PDFName represents a name object without the leading slash
type PDFName string

func (PDFName) Type() string { return "name" }

// PDFArray represents an array object
type PDFArray []PDFObject

func (PDFArray) Type() string { return "array" }

// PDFDict represents a dictionary object
type PDFDict map[PDFName]PDFObject

func (PDFDict) Type() string { return "dict" }

// Get retrieves a value from the dictionary
func (d PDFDict) Get(key PDFName) PDFObject {
	return d[key]
}

// GetName retrieves a name value from the dictionary
func (d PDFDict) GetName(key PDFName) (PDFName, bool) {
	if obj, ok := d[key]; ok {
		if name, ok := obj.(PDFName); ok {
			return name, true
		}
	}
	return "", false
}

// GetNumber retrieves a numeric value from the dictionary
func (d PDFDict) GetNumber(key PDFName) (float64, bool) {
	if obj, ok := d[key]; ok {
		return Number(obj)
	}
	return 0, false
}

// GetString retrieves the bytes of a literal or hex string value
func (d PDFDict) GetString(key PDFName) ([]byte, bool) {
	if obj, ok := d[key]; ok {
		return Bytes(obj)
	}
	return nil, false
}

// GetArray retrieves an array value from the dictionary
func (d PDFDict) GetArray(key PDFName) (PDFArray, bool) {
	if obj, ok := d[key]; ok {
		if arr, ok := obj.(PDFArray); ok {
			return arr, true
		}
	}
	return nil, false
}

// GetDict retrieves a dictionary value from the dictionary
func (d PDFDict) GetDict(key PDFName) (PDFDict, bool) {
	if obj, ok := d[key]; ok {
		if dict, ok := obj.(PDFDict); ok {
			return dict, true
		}
	}
	return nil, false
}

// InlineImage is the dictionary and raw sample data of a BI ... ID ... EI sequence
type InlineImage struct {
	Dict PDFDict
	Data []byte
}

func (InlineImage) Type() string { return "inlineimage" }

// Number converts an integer or float operand to float64
func Number(obj PDFObject) (float64, bool) {
	switch v := obj.(type) {
	case PDFInt:
		return float64(v), true
	case PDFFloat:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bytes returns the raw bytes of a literal or hex string operand
func Bytes(obj PDFObject) ([]byte, bool) {
	switch v := obj.(type) {
	case PDFString:
		return []byte(v), true
	case PDFHexString:
		return []byte(v), true
	default:
		return nil, false
	}
}

// Operation is an operator together with the operands that preceded it
type Operation struct {
	Operator string
	Operands []PDFObject
}

func (op Operation) String() string {
	parts := make([]string, 0, len(op.Operands)+1)
	for _, o := range op.Operands {
		parts = append(parts, FormatObject(o))
	}
	parts = append(parts, op.Operator)
	return strings.Join(parts, " ")
}

// FormatObject renders an operand in content-stream syntax, mainly for logging
func FormatObject(obj PDFObject) string {
	switch v := obj.(type) {
	case nil, PDFNull:
		return "null"
	case PDFBool:
		return fmt.Sprintf("%t", bool(v))
	case PDFInt:
		return fmt.Sprintf("%d", int64(v))
	case PDFFloat:
		return fmt.Sprintf("%g", float64(v))
	case PDFString:
		return fmt.Sprintf("(%s)", string(v))
	case PDFHexString:
		return fmt.Sprintf("<%X>", []byte(v))
	case PDFName:
		return "/" + string(v)
	case PDFArray:
		parts := make([]string, len(v))
		for i, o := range v {
			parts[i] = FormatObject(o)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case PDFDict:
		var sb strings.Builder
		sb.WriteString("<<")
		for k, o := range v {
			sb.WriteString(" /" + string(k) + " " + FormatObject(o))
		}
		sb.WriteString(" >>")
		return sb.String()
	case InlineImage:
		return fmt.Sprintf("BI(%d bytes)", len(v.Data))
	default:
		return fmt.Sprintf("%v", v)
	}
}
