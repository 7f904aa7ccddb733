package vm

import (
	"fmt"
	"strings"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/event"
	"github.com/0xsoniclabs/contractsim/value"
)

// EventDecl declares an event type of a contract. The first Indexed
// parameters are indexed, the rest is carried as data.
type EventDecl struct {
	Name    string
	Params  []Param
	Indexed int
}

// Signature returns the event signature, e.g. "Transfer(Address,Address,int)".
func (d *EventDecl) Signature(c *value.Converter) (string, error) {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		t, err := c.TypeFor(p.Type)
		if err != nil {
			return "", fmt.Errorf("%w: event %s: %w", ErrInvalidDefinition, d.Name, err)
		}
		names[i] = t.Kind.String()
	}
	return d.Name + "(" + strings.Join(names, ",") + ")", nil
}

// Emit emits an instance of the event from the running contract.
func (d *EventDecl) Emit(ctx Context, args ...any) error {
	indexed, data, err := d.split(ctx.Converter(), args, false)
	if err != nil {
		return err
	}
	return ctx.Emit(indexed, data)
}

// Event creates the event emitted by contract for the given arguments.
func (d *EventDecl) Event(c *value.Converter, contract *common.Address, args ...any) (*event.Event, error) {
	indexed, data, err := d.split(c, args, false)
	if err != nil {
		return nil, err
	}
	return event.New(contract, indexed, data)
}

// Pattern is like Event, but nil and omitted trailing arguments match any
// value when used with event.Event.Match.
func (d *EventDecl) Pattern(c *value.Converter, contract *common.Address, args ...any) (*event.Event, error) {
	indexed, data, err := d.split(c, args, true)
	if err != nil {
		return nil, err
	}
	return event.New(contract, indexed, data)
}

func (d *EventDecl) split(c *value.Converter, args []any, partial bool) ([]any, []any, error) {
	if d.Indexed < 0 || d.Indexed > len(d.Params) {
		return nil, nil, fmt.Errorf("%w: event %s has %d indexed of %d parameters", ErrInvalidDefinition, d.Name, d.Indexed, len(d.Params))
	}
	if len(args) > len(d.Params) || (!partial && len(args) != len(d.Params)) {
		return nil, nil, argumentError(ErrInvalidParameter, "event %s takes %d arguments, got %d", d.Name, len(d.Params), len(args))
	}
	sig, err := d.Signature(c)
	if err != nil {
		return nil, nil, err
	}
	values := make([]any, len(args))
	if partial {
		values = make([]any, len(d.Params))
	}
	for i, arg := range args {
		if arg == nil {
			continue
		}
		if values[i], err = c.Normalize(arg); err != nil {
			return nil, nil, fmt.Errorf("%w: %w: argument %d of event %s: %w", ErrIllegalArgument, ErrInvalidParameter, i, d.Name, err)
		}
	}
	indexed := append([]any{sig}, values[:min(d.Indexed, len(values))]...)
	var data []any
	if len(values) > d.Indexed {
		data = values[d.Indexed:]
	}
	return indexed, data, nil
}
