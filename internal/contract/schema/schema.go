// Package schema validates decoded JSON payloads against declarative object schemas.
package schema

import (
	"sort"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Type names the primitive kind a property must hold.
type Type string

const (
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	// TypeEnum is a string restricted to Enum when values are declared.
	TypeEnum Type = "enum"
)

// Property describes a single field of an object schema.
type Property struct {
	Type Type
	// Enum lists permitted values for TypeEnum. Empty means any string.
	Enum []string
	// Items describes array elements for TypeArray.
	Items *Property
	// Object describes nested fields for TypeObject. Nil accepts any object.
	Object *Schema
}

// Schema describes the shape of a JSON object.
type Schema struct {
	Name                 string
	Properties           map[string]Property
	Required             []string
	AdditionalProperties bool

	once     sync.Once
	compiled *openapi3.Schema
}

// Prop is shorthand for a primitive property.
func Prop(t Type) Property {
	return Property{Type: t}
}

// Enum returns an enum property limited to values.
func Enum(values ...string) Property {
	return Property{Type: TypeEnum, Enum: values}
}

// ArrayOf returns an array property whose elements match item.
func ArrayOf(item Property) Property {
	return Property{Type: TypeArray, Items: &item}
}

// ObjectOf returns a nested object property.
func ObjectOf(s *Schema) Property {
	return Property{Type: TypeObject, Object: s}
}

// PropertyNames returns the declared property names in sorted order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Schema) openAPI() *openapi3.Schema {
	s.once.Do(func() {
		s.compiled = s.compile()
	})
	return s.compiled
}

func (s *Schema) compile() *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = s.Name
	out.Properties = make(openapi3.Schemas, len(s.Properties))
	for name, prop := range s.Properties {
		out.Properties[name] = openapi3.NewSchemaRef("", prop.compile())
	}
	if len(s.Required) > 0 {
		out.Required = append([]string{}, s.Required...)
	}
	if !s.AdditionalProperties {
		forbid := false
		out.AdditionalProperties = openapi3.AdditionalProperties{Has: &forbid}
	}
	return out
}

func (p Property) compile() *openapi3.Schema {
	switch p.Type {
	case TypeInteger:
		return openapi3.NewIntegerSchema()
	case TypeNumber:
		return openapi3.NewFloat64Schema()
	case TypeBoolean:
		return openapi3.NewBoolSchema()
	case TypeEnum:
		out := openapi3.NewStringSchema()
		if len(p.Enum) > 0 {
			values := make([]any, 0, len(p.Enum))
			for _, v := range p.Enum {
				values = append(values, v)
			}
			out.Enum = values
		}
		return out
	case TypeArray:
		out := openapi3.NewArraySchema()
		if p.Items != nil {
			out.Items = openapi3.NewSchemaRef("", p.Items.compile())
		}
		return out
	case TypeObject:
		if p.Object != nil {
			return p.Object.compile()
		}
		return openapi3.NewObjectSchema()
	default:
		return openapi3.NewStringSchema()
	}
}
