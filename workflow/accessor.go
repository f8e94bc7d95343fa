package workflow

import (
	"fmt"
	"reflect"
)

// funcAccessor binds state to an entity through a getter/setter pair.
type funcAccessor[T any, S comparable] struct {
	get func(entity *T) S
	set func(entity *T, state S)
}

// FieldAccessor creates an accessor from a getter and setter, checked at compile time.
//
// Example:
//
//	workflow.FieldAccessor(
//	    func(p *Post) Status { return p.Status },
//	    func(p *Post, s Status) { p.Status = s },
//	)
func FieldAccessor[T any, S comparable](get func(entity *T) S, set func(entity *T, state S)) Accessor[T, S] {
	return &funcAccessor[T, S]{
		get: get,
		set: set,
	}
}

func (a *funcAccessor[T, S]) Get(entity *T) S {
	return a.get(entity)
}

func (a *funcAccessor[T, S]) Set(entity *T, state S) {
	a.set(entity, state)
}

func (a *funcAccessor[T, S]) validate() error {
	if a.get == nil || a.set == nil {
		return fmt.Errorf("%w: field accessor requires both a getter and a setter", ErrInvalidConfig)
	}

	return nil
}

// propertyAccessor binds state to a struct field found by name.
type propertyAccessor[T any, S comparable] struct {
	index     []int
	fieldType reflect.Type
	stateType reflect.Type
}

// PropertyAccessor creates an accessor for the exported field of T named
// property. The field must exist on T (directly or promoted through embedded
// structs, not embedded pointers) and have the same kind as S, converting to
// and from S. Any violation is reported as ErrInvalidConfig.
func PropertyAccessor[T any, S comparable](property string) (Accessor[T, S], error) {
	if property == "" {
		return nil, fmt.Errorf("%w: state property is required", ErrInvalidConfig)
	}

	entityType := reflect.TypeFor[T]()
	if entityType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: entity type %s is not a struct", ErrInvalidConfig, entityType)
	}

	field, ok := entityType.FieldByName(property)
	if !ok || !field.IsExported() {
		return nil, fmt.Errorf("%w: property '%s' does not exist in the provided entity", ErrInvalidConfig, property)
	}

	// FieldByIndex panics when walking through a nil embedded pointer.
	walk := entityType
	for _, i := range field.Index[:len(field.Index)-1] {
		embedded := walk.Field(i)
		if embedded.Type.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: property '%s' is promoted through embedded pointer %s",
				ErrInvalidConfig, property, embedded.Name)
		}

		walk = embedded.Type
	}

	stateType := reflect.TypeFor[S]()
	if field.Type.Kind() != stateType.Kind() ||
		!field.Type.ConvertibleTo(stateType) ||
		!stateType.ConvertibleTo(field.Type) {
		return nil, fmt.Errorf("%w: property '%s' has type %s which is not compatible with state type %s",
			ErrInvalidConfig, property, field.Type, stateType)
	}

	return &propertyAccessor[T, S]{
		index:     field.Index,
		fieldType: field.Type,
		stateType: stateType,
	}, nil
}

func (a *propertyAccessor[T, S]) Get(entity *T) S {
	value := reflect.ValueOf(entity).Elem().FieldByIndex(a.index)

	state, _ := value.Convert(a.stateType).Interface().(S)

	return state
}

func (a *propertyAccessor[T, S]) Set(entity *T, state S) {
	value := reflect.ValueOf(entity).Elem().FieldByIndex(a.index)

	value.Set(reflect.ValueOf(&state).Elem().Convert(a.fieldType))
}
